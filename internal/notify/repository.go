package notify

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrContactNotFound = errors.New("user contact not found")

// Contact is the delivery address book entry for one user.
type Contact struct {
	UserID      int64   `db:"id"`
	DisplayName string  `db:"display_name"`
	Email       *string `db:"email"`
	Phone       *string `db:"phone"`
}

type Repository interface {
	GetContact(ctx context.Context, userID int64) (*Contact, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetContact(ctx context.Context, userID int64) (*Contact, error) {
	var contact Contact
	query := `SELECT id, display_name, email, phone FROM users WHERE id = $1`

	err := r.db.QueryRowxContext(ctx, query, userID).StructScan(&contact)
	if err == sql.ErrNoRows {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}

	return &contact, nil
}
