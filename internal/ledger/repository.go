// AngelaMos | 2026
// repository.go

package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/monsterapp/backend/internal/core"
)

type Repository interface {
	// Record appends an event unconditionally (unlimited plans).
	Record(ctx context.Context, event *UsageEvent) error

	// RecordIfUnder counts the user's events for the capability since the
	// window start and appends the event only when the count is below the
	// ceiling. It returns the pre-append count and whether the event was
	// recorded.
	RecordIfUnder(
		ctx context.Context,
		event *UsageEvent,
		since time.Time,
		ceiling int,
	) (int, bool, error)

	CountSince(
		ctx context.Context,
		userID string,
		capability Capability,
		since time.Time,
	) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context, event *UsageEvent) error {
	query := `
		INSERT INTO usage_events (id, user_id, capability, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.Capability,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record usage event: %w", err)
	}

	return nil
}

// RecordIfUnder takes a row lock on the owning user for the duration of the
// count-and-append so that concurrent attempts from the same user serialize
// across processes, not just within one.
func (r *repository) RecordIfUnder(
	ctx context.Context,
	event *UsageEvent,
	since time.Time,
	ceiling int,
) (int, bool, error) {
	var used int
	var admitted bool

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var lockedID string
		err := tx.GetContext(ctx, &lockedID,
			`SELECT id FROM users WHERE id = $1 FOR UPDATE`,
			event.UserID,
		)
		if err != nil {
			return fmt.Errorf("lock user row: %w", err)
		}

		err = tx.GetContext(ctx, &used, `
			SELECT COUNT(*)
			FROM usage_events
			WHERE user_id = $1 AND capability = $2 AND created_at >= $3`,
			event.UserID,
			event.Capability,
			since,
		)
		if err != nil {
			return fmt.Errorf("count usage events: %w", err)
		}

		if used >= ceiling {
			return nil
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO usage_events (id, user_id, capability, created_at)
			VALUES ($1, $2, $3, $4)`,
			event.ID,
			event.UserID,
			event.Capability,
			event.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("record usage event: %w", err)
		}

		admitted = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}

	return used, admitted, nil
}

func (r *repository) CountSince(
	ctx context.Context,
	userID string,
	capability Capability,
	since time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM usage_events
		WHERE user_id = $1 AND capability = $2 AND created_at >= $3`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID, capability, since)
	if err != nil {
		return 0, fmt.Errorf("count usage events: %w", err)
	}

	return count, nil
}
