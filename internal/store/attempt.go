package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/dsaintel/dsaiq/internal/quiz"
)

var attemptColumns = []string{
	"id", "timestamp", "session_id", "user_id",
	"question_count", "total_questions", "accuracy", "responses",
}

// attemptRepo implements AttemptRepo backed by the attempts table.
type attemptRepo struct {
	drv *entsql.Driver
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, data AttemptData) error {
	responses, err := json.Marshal(data.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	var total, accuracy any
	if data.TotalQuestions != nil {
		total = *data.TotalQuestions
	}
	if data.Accuracy != nil {
		accuracy = *data.Accuracy
	}

	query, args := builder().
		Insert("attempts").
		Columns(attemptColumns[1:]...).
		Values(
			time.Now().UnixMilli(),
			data.SessionID,
			data.UserID,
			len(data.Responses),
			total,
			accuracy,
			string(responses),
		).
		OnConflict(
			entsql.ConflictColumns("session_id"),
			entsql.DoNothing(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	sel := builder().
		Select(attemptColumns...).
		From(entsql.Table("attempts"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var (
			rec       AttemptRecord
			ts        int64
			count     int
			total     sql.NullInt64
			accuracy  sql.NullFloat64
			responses string
		)
		if err := rows.Scan(
			&rec.ID, &ts, &rec.SessionID, &rec.UserID,
			&count, &total, &accuracy, &responses,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		if total.Valid {
			n := int(total.Int64)
			rec.TotalQuestions = &n
		}
		if accuracy.Valid {
			a := accuracy.Float64
			rec.Accuracy = &a
		}
		rec.Responses = make([]quiz.AnswerRecord, 0, count)
		if err := json.Unmarshal([]byte(responses), &rec.Responses); err != nil {
			return nil, fmt.Errorf("unmarshal responses for attempt %d: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
