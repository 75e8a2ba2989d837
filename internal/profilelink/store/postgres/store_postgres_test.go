package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"gliblio/pkg/platform/sentinel"
)

type PostgresStoreSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	store *PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.mock = mock
	s.store = NewPostgres(db, Table{})
}

func (s *PostgresStoreSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

const expectedQuery = `SELECT "id"::text FROM "profiles" WHERE "username" = $1 LIMIT 2`

func (s *PostgresStoreSuite) TestFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta(expectedQuery)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("id-123"))

	p, err := s.store.FindByHandle(context.Background(), "alice")
	s.Require().NoError(err)
	s.Equal("id-123", p.IdentityID)
	s.Equal("alice", p.Handle)
}

func (s *PostgresStoreSuite) TestNotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta(expectedQuery)).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.store.FindByHandle(context.Background(), "bob")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestAmbiguous() {
	s.mock.ExpectQuery(regexp.QuoteMeta(expectedQuery)).
		WithArgs("twins").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("id-1").AddRow("id-2"))

	_, err := s.store.FindByHandle(context.Background(), "twins")
	s.ErrorIs(err, sentinel.ErrConflict)
	s.NotErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestQueryError() {
	boom := errors.New("connection reset")
	s.mock.ExpectQuery(regexp.QuoteMeta(expectedQuery)).
		WithArgs("alice").
		WillReturnError(boom)

	_, err := s.store.FindByHandle(context.Background(), "alice")
	s.ErrorIs(err, boom)
}

func TestBuildQueryQuotesIdentifiers(t *testing.T) {
	q := buildQuery(Table{Name: "public.user_profiles", HandleColumn: "handle", IDColumn: "user_id"})
	want := `SELECT "user_id"::text FROM "public"."user_profiles" WHERE "handle" = $1 LIMIT 2`
	if q != want {
		t.Fatalf("expected %q, got %q", want, q)
	}
}
