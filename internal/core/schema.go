// AngelaMos | 2026
// schema.go

package core

import (
	"context"
	"fmt"
)

// Statements are idempotent so the binary can run them on every boot
// without a separate migration step.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		provider_subject TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		plan TEXT NOT NULL DEFAULT 'free',
		role TEXT NOT NULL DEFAULT 'user',
		stripe_customer_id TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS usage_events (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		capability TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_usage_events_window
		ON usage_events (user_id, capability, created_at)`,
}

func (d *Database) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := d.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return nil
}
