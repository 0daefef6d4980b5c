package admin

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"futureagent/pkg/retry"
)

// countableTables whitelists what the dashboard may count; requests naming
// anything else are rejected before touching SQL.
var countableTables = map[string]map[string]bool{
	"tools":            {"published": true, "featured": true, "category": true},
	"posts":            {"published": true, "category": true},
	"categories":       {},
	"subscribers":      {"source": true},
	"affiliate_clicks": {"tool_id": true, "slug": true},
}

type CountsRepo struct {
	DB *sql.DB
	SB sq.StatementBuilderType
}

func NewCountsRepo(db *sql.DB, sb sq.StatementBuilderType) *CountsRepo {
	return &CountsRepo{DB: db, SB: sb}
}

// Count returns COUNT(*) for a whitelisted table with an optional single
// equality filter.
func (r *CountsRepo) Count(ctx context.Context, table, filterCol string, filterVal any) (int, error) {
	cols, ok := countableTables[table]
	if !ok {
		return 0, fmt.Errorf("table %q not countable", table)
	}
	if filterCol != "" && !cols[filterCol] {
		return 0, fmt.Errorf("filter %q not allowed on %q", filterCol, table)
	}

	b := r.SB.Select("COUNT(*)").From(table)
	if filterCol != "" {
		b = b.Where(sq.Eq{filterCol: filterVal})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", table, err)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

// FetchCount is the fallback-bearing variant; a persistence failure after
// retries reads as zero on the dashboard. Whitelist violations surface as
// errors immediately, they are caller bugs, not transient failures.
func (r *CountsRepo) FetchCount(ctx context.Context, table, filterCol string, filterVal any, opts retry.Options) (int, error) {
	cols, ok := countableTables[table]
	if !ok {
		return 0, fmt.Errorf("table %q not countable", table)
	}
	if filterCol != "" && !cols[filterCol] {
		return 0, fmt.Errorf("filter %q not allowed on %q", filterCol, table)
	}

	n := retry.Fetch(ctx, "fetch count "+table, func(ctx context.Context) (int, error) {
		return r.Count(ctx, table, filterCol, filterVal)
	}, 0, opts)
	return n, nil
}
