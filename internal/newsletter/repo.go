package newsletter

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"futureagent/pkg/models"
)

type Repo struct {
	DB *sql.DB
	SB sq.StatementBuilderType
}

func NewRepo(db *sql.DB, sb sq.StatementBuilderType) *Repo {
	return &Repo{DB: db, SB: sb}
}

// Subscribe upserts by email so repeat signups stay idempotent.
func (r *Repo) Subscribe(ctx context.Context, s models.Subscriber) error {
	query, args, err := r.SB.
		Insert("subscribers").
		Columns("id", "email", "source").
		Values(s.ID, s.Email, s.Source).
		Suffix(`ON CONFLICT(email) DO UPDATE SET source = excluded.source`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build subscribe: %w", err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}
