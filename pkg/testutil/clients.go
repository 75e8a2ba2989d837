package testutil

// User agents for the three client classes, taken from real traffic.
const (
	UserAgentChromeDesktop  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	UserAgentSafariIPhone   = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	UserAgentAndroidApp     = "okhttp/4.12.0"
	UserAgentIOSApp         = "Gliblio/1.4 CFNetwork/1490.0.4 Darwin/23.2.0"
	UserAgentAndroidWebView = "Mozilla/5.0 (Linux; Android 14; Pixel 8; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/120.0.0.0 Mobile Safari/537.36"
	UserAgentAssetLinks     = "Google-Digital-Asset-Links"
)
