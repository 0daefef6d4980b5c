package admin

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futureagent/pkg/retry"
)

func newCountsRepo(t *testing.T) (*CountsRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCountsRepo(db, sq.StatementBuilder.PlaceholderFormat(sq.Question)), mock
}

func quietOpts() retry.Options {
	return retry.Options{
		Logger: log.New(io.Discard, "", 0),
		Sleep:  func(ctx context.Context, d time.Duration) error { return nil },
	}
}

func TestCountWhitelistedTable(t *testing.T) {
	repo, mock := newCountsRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tools`).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := repo.Count(context.Background(), "tools", "published", "1")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountRejectsUnknownTable(t *testing.T) {
	repo, _ := newCountsRepo(t)

	_, err := repo.Count(context.Background(), "users; DROP TABLE tools", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not countable")
}

func TestCountRejectsUnknownFilter(t *testing.T) {
	repo, _ := newCountsRepo(t)

	_, err := repo.Count(context.Background(), "categories", "slug", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestFetchCountFallsBackToZero(t *testing.T) {
	repo, mock := newCountsRepo(t)

	for i := 0; i < 4; i++ {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM subscribers`).
			WillReturnError(errors.New("db down"))
	}

	n, err := repo.FetchCount(context.Background(), "subscribers", "", nil, quietOpts())
	require.NoError(t, err, "persistence failure degrades to the fallback")
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchCountWhitelistErrorImmediate(t *testing.T) {
	repo, mock := newCountsRepo(t)

	_, err := repo.FetchCount(context.Background(), "secrets", "", nil, quietOpts())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query is even attempted")
}
