package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Events are append-only: insert and read, never update or delete
	InsertEvent(ctx context.Context, event *Event) error
	ListRecentEvents(ctx context.Context, userID int64, limit int) ([]*Event, error)
	CountEventsSince(ctx context.Context, userID int64, since time.Time) (int, error)
	ListActiveUserIDs(ctx context.Context, since time.Time) ([]int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) InsertEvent(ctx context.Context, event *Event) error {
	query := `
        INSERT INTO feedback_events (
            id, user_id, suggestion_id, suggestion_type, category, intensity,
            label, outcome, notes, partner_notes, time_of_day, day_of_week
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING created_at
    `

	err := r.db.QueryRowxContext(
		ctx, query,
		event.ID, event.UserID, event.SuggestionID, event.SuggestionType,
		event.Category, event.Intensity, event.Label, event.Outcome,
		event.Notes, event.PartnerNotes, event.TimeOfDay, event.DayOfWeek,
	).Scan(&event.CreatedAt)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return nil
}

func (r *postgresRepository) ListRecentEvents(ctx context.Context, userID int64, limit int) ([]*Event, error) {
	var events []*Event
	query := `
        SELECT id, user_id, suggestion_id, suggestion_type, category, intensity,
               label, outcome, notes, partner_notes, time_of_day, day_of_week, created_at
        FROM feedback_events
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `

	if err := r.db.SelectContext(ctx, &events, query, userID, limit); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return events, nil
}

func (r *postgresRepository) CountEventsSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	var count int
	query := `
        SELECT COUNT(*) FROM feedback_events
        WHERE user_id = $1 AND created_at >= $2
    `

	if err := r.db.GetContext(ctx, &count, query, userID, since); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return count, nil
}

func (r *postgresRepository) ListActiveUserIDs(ctx context.Context, since time.Time) ([]int64, error) {
	var userIDs []int64
	query := `
        SELECT DISTINCT user_id FROM feedback_events
        WHERE created_at >= $1
    `

	if err := r.db.SelectContext(ctx, &userIDs, query, since); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return userIDs, nil
}
