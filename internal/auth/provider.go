// AngelaMos | 2026
// provider.go

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/monsterapp/backend/internal/core"
)

// ProviderIdentity is the verified claim set returned by an external
// identity provider in exchange for one of its access tokens.
type ProviderIdentity struct {
	Subject string
	Email   string
}

// ProviderVerifier validates a provider-issued token and extracts the
// holder's identity. Implementations call out to the provider; token
// verification is never reimplemented locally.
type ProviderVerifier interface {
	Name() string
	Verify(ctx context.Context, token string) (*ProviderIdentity, error)
}

const googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

type GoogleVerifier struct {
	client      *http.Client
	userinfoURL string
}

func NewGoogleVerifier() *GoogleVerifier {
	return &GoogleVerifier{
		client:      &http.Client{Timeout: 10 * time.Second},
		userinfoURL: googleUserinfoURL,
	}
}

func (v *GoogleVerifier) Name() string {
	return "google"
}

func (v *GoogleVerifier) Verify(
	ctx context.Context,
	token string,
) (*ProviderIdentity, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		v.userinfoURL,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call userinfo endpoint: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf(
			"provider rejected token: %w",
			core.ErrTokenInvalid,
		)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"userinfo endpoint returned status %d",
			resp.StatusCode,
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read userinfo response: %w", err)
	}

	var userinfo struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := json.Unmarshal(body, &userinfo); err != nil {
		return nil, fmt.Errorf("decode userinfo response: %w", err)
	}

	if userinfo.Sub == "" || userinfo.Email == "" {
		return nil, fmt.Errorf(
			"userinfo response missing subject or email: %w",
			core.ErrTokenInvalid,
		)
	}

	return &ProviderIdentity{
		Subject: userinfo.Sub,
		Email:   userinfo.Email,
	}, nil
}
