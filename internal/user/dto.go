// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/monsterapp/backend/internal/ledger"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserPlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=free pro"`
}

type CapabilityUsageResponse struct {
	Capability string `json:"capability"`
	Used       int    `json:"used"`
	Limit      int    `json:"limit,omitempty"`
	Unlimited  bool   `json:"unlimited"`
	Entitled   bool   `json:"entitled"`
}

type UsageResponse struct {
	Plan         string                    `json:"plan"`
	WindowStart  time.Time                 `json:"window_start"`
	Capabilities []CapabilityUsageResponse `json:"capabilities"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Plan:      u.Plan,
		CreatedAt: u.CreatedAt,
	}
}

func ToUsageResponse(
	plan string,
	windowStart time.Time,
	usages []ledger.CapabilityUsage,
) UsageResponse {
	capabilities := make([]CapabilityUsageResponse, 0, len(usages))
	for _, usage := range usages {
		capabilities = append(capabilities, CapabilityUsageResponse{
			Capability: string(usage.Capability),
			Used:       usage.Used,
			Limit:      usage.Ceiling,
			Unlimited:  usage.Unlimited,
			Entitled:   usage.Entitled,
		})
	}

	return UsageResponse{
		Plan:         plan,
		WindowStart:  windowStart,
		Capabilities: capabilities,
	}
}
