// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/monsterapp/backend/internal/auth"
	"github.com/monsterapp/backend/internal/core"
	"github.com/monsterapp/backend/internal/ledger"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// LookupOrCreate resolves an external identity-provider subject to a User,
// registering a FREE-plan user on first login. A concurrent first login for
// the same subject loses the insert race on the unique constraint and falls
// back to reading the winner's row.
func (s *Service) LookupOrCreate(
	ctx context.Context,
	subject, email string,
) (*auth.UserInfo, error) {
	existing, err := s.repo.GetByProviderSubject(ctx, subject)
	if err == nil {
		return toUserInfo(existing), nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	created := &User{
		ID:              uuid.New().String(),
		ProviderSubject: subject,
		Email:           strings.ToLower(email),
		Plan:            PlanFree,
		Role:            RoleUser,
	}

	if err := s.repo.Create(ctx, created); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			existing, err = s.repo.GetByProviderSubject(ctx, subject)
			if err != nil {
				return nil, err
			}
			return toUserInfo(existing), nil
		}
		return nil, err
	}

	return toUserInfo(created), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetUserByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

// ResolveSubject returns the ledger's view of a user with the plan read
// from storage, not from any session claim.
func (s *Service) ResolveSubject(
	ctx context.Context,
	userID string,
) (ledger.Subject, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return ledger.Subject{}, err
	}

	return ledger.Subject{ID: user.ID, Plan: user.Plan}, nil
}

func (s *Service) UpdateUserPlan(
	ctx context.Context,
	id, plan string,
) (*User, error) {
	if !ValidPlan(plan) {
		return nil, fmt.Errorf(
			"update plan: invalid plan %q: %w",
			plan,
			core.ErrInvalidInput,
		)
	}

	if err := s.repo.UpdatePlan(ctx, id, plan); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) AttachStripeCustomer(
	ctx context.Context,
	id, customerID string,
) error {
	return s.repo.SetStripeCustomerID(ctx, id, customerID)
}

func (s *Service) GetByStripeCustomerID(
	ctx context.Context,
	customerID string,
) (*User, error) {
	return s.repo.GetByStripeCustomerID(ctx, customerID)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:    u.ID,
		Email: u.Email,
		Plan:  u.Plan,
		Role:  u.Role,
	}
}

var _ auth.UserProvider = (*Service)(nil)
