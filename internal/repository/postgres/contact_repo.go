package postgres

import (
	"context"
	"fmt"
	"time"

	"go-portfolio-forms/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const insertContactMessage = `INSERT INTO contact_messages (id, name, message, created_at)
              VALUES ($1, $2, $3, $4)`

// execer is the part of *pgxpool.Pool the repository needs.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type contactRepo struct {
	db  execer
	now func() time.Time
}

func NewContactRepository(db execer) domain.ContactRepository {
	return &contactRepo{db: db, now: time.Now}
}

// InsertContactMessage appends one row. User text only travels as bind
// parameters.
func (r *contactRepo) InsertContactMessage(ctx context.Context, name, message string) error {
	tag, err := r.db.Exec(ctx, insertContactMessage, uuid.NewString(), name, message, r.now().UTC())
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("insert contact message: %d rows affected", tag.RowsAffected())
	}
	return nil
}
