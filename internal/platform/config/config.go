package config

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// DefaultAddr is the public listener address when neither server.addr nor PORT is set.
const DefaultAddr = ":3000"

// Lookup backends.
const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// schemePattern follows the RFC 3986 scheme grammar.
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*$`)

// EnvPrefix namespaces environment overrides, e.g. GLIBLIO_DEEPLINK_SCHEME.
const EnvPrefix = "GLIBLIO"

// Server captures HTTP listener configuration.
type Server struct {
	Addr        string `mapstructure:"addr"`
	Environment string `mapstructure:"environment"`
}

// Admin captures the metrics and health listener. An empty Addr disables it.
type Admin struct {
	Addr string `mapstructure:"addr"`
}

// DeepLink captures every response policy choice.
type DeepLink struct {
	Scheme          string `mapstructure:"scheme"`
	WebFallbackURL  string `mapstructure:"web_fallback_url"`
	RedirectStatus  int    `mapstructure:"redirect_status"`
	AppLinkStrategy string `mapstructure:"app_link_strategy"`
	BrowserStrategy string `mapstructure:"browser_strategy"`
	HomeStrategy    string `mapstructure:"home_strategy"`
	UnmatchedRoute  string `mapstructure:"unmatched_route"`
	FallbackDelayMS int    `mapstructure:"fallback_delay_ms"`
	ReservedMatch   string `mapstructure:"reserved_match"`
}

// FallbackDelay returns the browser fallback delay as a duration.
func (d DeepLink) FallbackDelay() time.Duration {
	return time.Duration(d.FallbackDelayMS) * time.Millisecond
}

// Classifier extends the built-in client classification tokens.
type Classifier struct {
	VerifierTokens      []string `mapstructure:"verifier_tokens"`
	NativeTokens        []string `mapstructure:"native_tokens"`
	VerificationHeaders []string `mapstructure:"verification_headers"`
}

// Lookup selects and bounds the profile store.
type Lookup struct {
	Backend      string        `mapstructure:"backend"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Table        string        `mapstructure:"table"`
	HandleColumn string        `mapstructure:"handle_column"`
	IDColumn     string        `mapstructure:"id_column"`
}

// REST locates a PostgREST endpoint. APIKey is the bearer credential.
type REST struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type Postgres struct {
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Memory seeds the in-process store, handle → identity ID.
type Memory struct {
	Profiles map[string]string `mapstructure:"profiles"`
}

type Static struct {
	AssetLinksPath string `mapstructure:"assetlinks_path"`
	LandingTitle   string `mapstructure:"landing_title"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the full service configuration.
type Config struct {
	Server     Server      `mapstructure:"server"`
	Admin      Admin       `mapstructure:"admin"`
	DeepLink   DeepLink    `mapstructure:"deeplink"`
	Classifier Classifier  `mapstructure:"classifier"`
	Lookup     Lookup      `mapstructure:"lookup"`
	REST       REST        `mapstructure:"rest"`
	Postgres   Postgres    `mapstructure:"postgres"`
	Redis      RedisConfig `mapstructure:"redis"`
	Memory     Memory      `mapstructure:"memory"`
	Static     Static      `mapstructure:"static"`
	Logging    Logging     `mapstructure:"logging"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.environment", EnvDev)
	v.SetDefault("admin.addr", ":9090")

	v.SetDefault("deeplink.scheme", "gliblio")
	v.SetDefault("deeplink.web_fallback_url", "https://gliblio.com")
	v.SetDefault("deeplink.redirect_status", http.StatusFound)
	v.SetDefault("deeplink.app_link_strategy", "ack")
	v.SetDefault("deeplink.browser_strategy", "fallback_page")
	v.SetDefault("deeplink.home_strategy", "redirect")
	v.SetDefault("deeplink.unmatched_route", "ok")
	v.SetDefault("deeplink.fallback_delay_ms", 2000)
	v.SetDefault("deeplink.reserved_match", "contains")

	v.SetDefault("classifier.verifier_tokens", []string{})
	v.SetDefault("classifier.native_tokens", []string{})
	v.SetDefault("classifier.verification_headers", []string{})

	v.SetDefault("lookup.backend", BackendREST)
	v.SetDefault("lookup.timeout", 3*time.Second)
	v.SetDefault("lookup.table", "profiles")
	v.SetDefault("lookup.handle_column", "username")
	v.SetDefault("lookup.id_column", "id")

	v.SetDefault("rest.url", "")
	v.SetDefault("rest.api_key", "")

	v.SetDefault("postgres.url", "")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.key_prefix", "profile:handle:")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("static.assetlinks_path", ".well-known/assetlinks.json")
	v.SetDefault("static.landing_title", "Gliblio")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Load reads defaults, an optional config file and GLIBLIO_* environment
// variables, then validates the result. configFile may be empty, in which
// case config.yaml is searched for in ./config and the working directory.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is the conventional platform variable for the listening port.
	_ = v.BindEnv("port", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// PORT only replaces the default listen address.
	if port := v.GetString("port"); port != "" && cfg.Server.Addr == DefaultAddr {
		cfg.Server.Addr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	return validation.Errors{
		"server":   c.Server.validate(),
		"admin":    c.Admin.validate(),
		"deeplink": c.DeepLink.validate(),
		"lookup":   c.validateLookup(),
		"logging":  c.Logging.validate(),
	}.Filter()
}

func (s Server) validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Environment, validation.Required, validation.In(EnvDev, EnvProd)),
		validation.Field(&s.Addr, validation.Required, validation.By(validateHostPort)),
	)
}

func (a Admin) validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Addr, validation.By(validateHostPort)),
	)
}

func (d DeepLink) validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Scheme, validation.Required, validation.Match(schemePattern)),
		validation.Field(&d.WebFallbackURL, validation.Required, is.URL),
		validation.Field(&d.RedirectStatus, validation.In(http.StatusMovedPermanently, http.StatusFound)),
		validation.Field(&d.AppLinkStrategy, validation.In("ack", "redirect")),
		validation.Field(&d.BrowserStrategy, validation.In("redirect", "fallback_page")),
		validation.Field(&d.HomeStrategy, validation.In("redirect", "page")),
		validation.Field(&d.UnmatchedRoute, validation.In("ok", "not_found")),
		validation.Field(&d.FallbackDelayMS, validation.Required, validation.Min(1), validation.Max(60000)),
		validation.Field(&d.ReservedMatch, validation.In("contains", "exact")),
	)
}

func (c *Config) validateLookup() error {
	l := c.Lookup
	err := validation.ValidateStruct(&l,
		validation.Field(&l.Backend, validation.Required,
			validation.In(BackendREST, BackendPostgres, BackendRedis, BackendMemory)),
		validation.Field(&l.Timeout, validation.Required, validation.Min(time.Millisecond)),
	)
	if err != nil {
		return err
	}
	switch l.Backend {
	case BackendREST:
		return validation.Validate(c.REST.URL, validation.Required.Error("rest.url is required for the rest backend"), is.URL)
	case BackendPostgres:
		return validation.Validate(c.Postgres.URL, validation.Required.Error("postgres.url is required for the postgres backend"))
	case BackendRedis:
		return validation.Validate(c.Redis.URL, validation.Required.Error("redis.url is required for the redis backend"))
	}
	return nil
}

func (l Logging) validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("text", "json")),
	)
}

func validateHostPort(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(s); err != nil {
		return validation.NewError("validation_invalid_address", "must be host:port")
	}
	return nil
}
