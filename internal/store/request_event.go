package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var requestEventColumns = []string{
	"id", "timestamp", "endpoint", "method", "user_id",
	"status_code", "latency_ms", "success", "error_message",
}

// eventRepo implements EventRepo backed by the request_events table. Row ids
// come from AUTOINCREMENT, so they never repeat and order events by arrival,
// even after pruning.
type eventRepo struct {
	drv *entsql.Driver
}

func (r *eventRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	query, args := builder().
		Insert("request_events").
		Columns(requestEventColumns[1:]...).
		Values(
			time.Now().UnixMilli(),
			data.Endpoint,
			data.Method,
			data.UserID,
			data.StatusCode,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error) {
	sel := builder().
		Select(requestEventColumns...).
		From(entsql.Table("request_events"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	defer rows.Close()

	var out []RequestEventRecord
	for rows.Next() {
		var (
			rec RequestEventRecord
			ts  int64
		)
		if err := rows.Scan(
			&rec.ID, &ts, &rec.Endpoint, &rec.Method, &rec.UserID,
			&rec.StatusCode, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan request event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) PruneRequests(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	// Find the id of the newest event past the keep window.
	query, args := builder().
		Select("id").
		From(entsql.Table("request_events")).
		OrderBy(entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("query request events for prune: %w", err)
	}
	var cutoff int64
	found := rows.Next()
	if found {
		if err := rows.Scan(&cutoff); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan prune cutoff: %w", err)
		}
	}
	rows.Close()
	if !found {
		return 0, nil // fewer than keep events exist
	}

	query, args = builder().
		Delete("request_events").
		Where(entsql.LTE("id", cutoff)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("prune request events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune request events: %w", err)
	}
	return int(n), nil
}

// applyQueryOpts adds the common filters and newest-first ordering.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("id", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("id", opts.Before))
	}
	if opts.UserID != "" {
		sel.Where(entsql.EQ("user_id", opts.UserID))
	}
	sel.OrderBy(entsql.Desc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
