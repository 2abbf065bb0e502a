package archetype

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotAssigned = errors.New("archetype not assigned")

type Repository interface {
	Get(ctx context.Context, userID int64) (*Assignment, error)
	Upsert(ctx context.Context, assignment *Assignment) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Get(ctx context.Context, userID int64) (*Assignment, error) {
	var a Assignment
	query := `
        SELECT user_id, primary_archetype, secondary_archetype, scores, completed_at, updated_at
        FROM archetype_assignments
        WHERE user_id = $1
    `

	err := r.db.QueryRowxContext(ctx, query, userID).StructScan(&a)
	if err == sql.ErrNoRows {
		return nil, ErrNotAssigned
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load archetype assignment: %w", err)
	}

	if len(a.RawScores) > 0 {
		if err := json.Unmarshal(a.RawScores, &a.Scores); err != nil {
			// A malformed scores document degrades to no scores, not an error
			a.Scores = nil
		}
	}

	return &a, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, assignment *Assignment) error {
	scoresJSON, err := json.Marshal(assignment.Scores)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}

	query := `
        INSERT INTO archetype_assignments (
            user_id, primary_archetype, secondary_archetype, scores, completed_at
        ) VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
        ON CONFLICT (user_id)
        DO UPDATE SET
            primary_archetype = $2,
            secondary_archetype = $3,
            scores = $4,
            updated_at = CURRENT_TIMESTAMP
        RETURNING completed_at, updated_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		assignment.UserID, assignment.Primary, assignment.Secondary, scoresJSON,
	).Scan(&assignment.CompletedAt, &assignment.UpdatedAt)
}
