package database

import (
	"context"
	"errors"
	"io/fs"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestRunMigrations_OrderAndFiltering(t *testing.T) {
	db, mock := setupTestDB(t)
	fsys := fstest.MapFS{
		"0002_second.up.sql":  {Data: []byte("CREATE INDEX idx ON question_sets (updated_at);\n")},
		"0001_first.up.sql":   {Data: []byte("CREATE TABLE t (id NUMBER)")},
		"0001_first.down.sql": {Data: []byte("DROP TABLE t")},
		"README.md":           {Data: []byte("notes")},
	}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE t (id NUMBER)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX idx ON question_sets (updated_at)") + "$").WillReturnResult(sqlmock.NewResult(0, 0))

	err := RunMigrations(context.Background(), db, fsys, zap.NewNop())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_StopsOnFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	fsys := fstest.MapFS{
		"0001_a.up.sql": {Data: []byte("BAD SQL")},
		"0002_b.up.sql": {Data: []byte("CREATE TABLE b (id NUMBER)")},
	}
	mock.ExpectExec("BAD SQL").WillReturnError(errors.New("ORA-00900"))

	err := RunMigrations(context.Background(), db, fsys, zap.NewNop())
	assert.ErrorContains(t, err, "0001_a.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_Bundled(t *testing.T) {
	data, err := fs.ReadFile(Migrations(), "0001_create_question_sets.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "CREATE TABLE question_sets")
}
