// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/monsterapp/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByProviderSubject(ctx context.Context, subject string) (*User, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*User, error)
	UpdatePlan(ctx context.Context, id, plan string) error
	SetStripeCustomerID(ctx context.Context, id, customerID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, provider_subject, email, plan, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.ProviderSubject,
		user.Email,
		user.Plan,
		user.Role,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, provider_subject, email, plan, role, stripe_customer_id,
		       created_at, updated_at
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `
		SELECT id, provider_subject, email, plan, role, stripe_customer_id,
		       created_at, updated_at
		FROM users
		WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByProviderSubject(
	ctx context.Context,
	subject string,
) (*User, error) {
	query := `
		SELECT id, provider_subject, email, plan, role, stripe_customer_id,
		       created_at, updated_at
		FROM users
		WHERE provider_subject = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, subject)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by subject: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by subject: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByStripeCustomerID(
	ctx context.Context,
	customerID string,
) (*User, error) {
	query := `
		SELECT id, provider_subject, email, plan, role, stripe_customer_id,
		       created_at, updated_at
		FROM users
		WHERE stripe_customer_id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by customer id: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by customer id: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdatePlan(ctx context.Context, id, plan string) error {
	query := `
		UPDATE users
		SET plan = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, plan)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update plan: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetStripeCustomerID(
	ctx context.Context,
	id, customerID string,
) error {
	query := `
		UPDATE users
		SET stripe_customer_id = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, customerID)
	if err != nil {
		return fmt.Errorf("set stripe customer id: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set stripe customer id: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set stripe customer id: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
