package journey

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateMilestone(ctx context.Context, milestone *Milestone) error
	GetMilestone(ctx context.Context, id int64) (*Milestone, error)
	ListMilestones(ctx context.Context, userID int64) ([]*Milestone, error)
	HasMilestoneType(ctx context.Context, userID int64, milestoneType string) (bool, error)
	CountMilestonesSince(ctx context.Context, userID int64, since time.Time) (int, error)
	SetCelebrated(ctx context.Context, id int64, notes *string) error
	GetJoinDate(ctx context.Context, userID int64) (time.Time, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateMilestone(ctx context.Context, milestone *Milestone) error {
	contextJSON, err := json.Marshal(milestone.Context)
	if err != nil {
		return fmt.Errorf("failed to encode milestone context: %w", err)
	}

	query := `
        INSERT INTO milestones (
            user_id, type, title, description, significance, context, achieved_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		milestone.UserID, milestone.Type, milestone.Title, milestone.Description,
		milestone.Significance, contextJSON, milestone.AchievedAt,
	).Scan(&milestone.ID, &milestone.CreatedAt)
}

func (r *postgresRepository) GetMilestone(ctx context.Context, id int64) (*Milestone, error) {
	var milestone Milestone
	query := `
        SELECT id, user_id, type, title, description, significance, context,
               celebrated, celebration_notes, achieved_at, created_at
        FROM milestones
        WHERE id = $1
    `

	err := r.db.QueryRowxContext(ctx, query, id).StructScan(&milestone)
	if err == sql.ErrNoRows {
		return nil, ErrMilestoneNotFound
	}
	if err != nil {
		return nil, err
	}

	decodeMilestoneContext(&milestone)
	return &milestone, nil
}

func (r *postgresRepository) ListMilestones(ctx context.Context, userID int64) ([]*Milestone, error) {
	var milestones []*Milestone
	query := `
        SELECT id, user_id, type, title, description, significance, context,
               celebrated, celebration_notes, achieved_at, created_at
        FROM milestones
        WHERE user_id = $1
        ORDER BY achieved_at DESC
    `

	if err := r.db.SelectContext(ctx, &milestones, query, userID); err != nil {
		return nil, err
	}

	for _, milestone := range milestones {
		decodeMilestoneContext(milestone)
	}

	return milestones, nil
}

func (r *postgresRepository) HasMilestoneType(ctx context.Context, userID int64, milestoneType string) (bool, error) {
	var exists bool
	query := `
        SELECT EXISTS(
            SELECT 1 FROM milestones
            WHERE user_id = $1 AND type = $2
        )
    `

	err := r.db.GetContext(ctx, &exists, query, userID, milestoneType)
	return exists, err
}

func (r *postgresRepository) CountMilestonesSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM milestones WHERE user_id = $1 AND achieved_at >= $2`
	err := r.db.GetContext(ctx, &count, query, userID, since)
	return count, err
}

func (r *postgresRepository) SetCelebrated(ctx context.Context, id int64, notes *string) error {
	query := `
        UPDATE milestones
        SET celebrated = TRUE, celebration_notes = $2
        WHERE id = $1
    `

	result, err := r.db.ExecContext(ctx, query, id, notes)
	if err != nil {
		return err
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrMilestoneNotFound
	}

	return nil
}

// GetJoinDate resolves when the couple joined. Users created by the
// hosted auth service land in the users table; if the row is missing
// the earliest feedback event stands in, and a brand-new account with
// no history counts as joining now.
func (r *postgresRepository) GetJoinDate(ctx context.Context, userID int64) (time.Time, error) {
	var joined time.Time
	query := `
        SELECT COALESCE(
            (SELECT created_at FROM users WHERE id = $1),
            (SELECT MIN(created_at) FROM feedback_events WHERE user_id = $1),
            NOW()
        )
    `

	err := r.db.GetContext(ctx, &joined, query, userID)
	return joined, err
}

func decodeMilestoneContext(milestone *Milestone) {
	if len(milestone.RawContext) == 0 {
		return
	}
	// Malformed stored context degrades to empty, never an error
	_ = json.Unmarshal(milestone.RawContext, &milestone.Context)
}
