// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/monsterapp/backend/internal/middleware"
)

// UserInfo is the account projection the auth service needs to mint a
// session token. The user package satisfies UserProvider with it.
type UserInfo struct {
	ID    string
	Email string
	Plan  string
	Role  string
}

// UserProvider resolves provider identities to local accounts.
type UserProvider interface {
	LookupOrCreate(ctx context.Context, subject, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
}

type Service struct {
	users      UserProvider
	jwtManager *JWTManager
	verifiers  map[string]ProviderVerifier
	logger     *slog.Logger
}

func NewService(
	users UserProvider,
	jwtManager *JWTManager,
	logger *slog.Logger,
	verifiers ...ProviderVerifier,
) *Service {
	vm := make(map[string]ProviderVerifier, len(verifiers))
	for _, v := range verifiers {
		vm[v.Name()] = v
	}

	return &Service{
		users:      users,
		jwtManager: jwtManager,
		verifiers:  vm,
		logger:     logger,
	}
}

// ExchangeProviderToken trades a provider-issued access token for a
// local session token, provisioning the account on first sign-in.
func (s *Service) ExchangeProviderToken(
	ctx context.Context,
	provider string,
	token string,
) (*TokenResponse, error) {
	verifier, ok := s.verifiers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q", ErrUnknownProvider, provider)
	}

	identity, err := verifier.Verify(ctx, token)
	if err != nil {
		s.logger.Warn("provider token verification failed",
			slog.String("provider", provider),
			slog.String("error", err.Error()),
		)

		return nil, fmt.Errorf("verify provider token: %w", err)
	}

	account, err := s.users.LookupOrCreate(ctx, identity.Subject, identity.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	accessToken, err := s.jwtManager.CreateAccessToken(
		middleware.AccessTokenClaims{
			UserID: account.ID,
			Email:  account.Email,
			Plan:   account.Plan,
			Role:   account.Role,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	s.logger.Info("session issued",
		slog.String("provider", provider),
		slog.String("user_id", account.ID),
	)

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

// ErrUnknownProvider marks an exchange request naming a provider the
// service has no verifier for.
var ErrUnknownProvider = errors.New("unknown identity provider")
