package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-portfolio-forms/internal/domain"

	"github.com/google/uuid"
)

type contactSQLRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewContactSQLRepository stores contact messages through database/sql,
// used with the lib/pq driver.
func NewContactSQLRepository(db *sql.DB) domain.ContactRepository {
	return &contactSQLRepo{db: db, now: time.Now}
}

func (r *contactSQLRepo) InsertContactMessage(ctx context.Context, name, message string) error {
	res, err := r.db.ExecContext(ctx, insertContactMessage, uuid.NewString(), name, message, r.now().UTC())
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return fmt.Errorf("insert contact message: %d rows affected", n)
	}
	return nil
}
