// AngelaMos | 2026
// dto.go

package auth

type ExchangeTokenRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
