// AngelaMos | 2026
// dto.go

package agent

// Request bodies mirror what the extension popup sends per capability.
// profile_data is an opaque blob scraped client-side and folded into the
// prompt verbatim.

type GenerateSocialCopyRequest struct {
	Prompt      string `json:"prompt" validate:"required,max=2000"`
	Tone        string `json:"tone" validate:"omitempty,max=100"`
	Niche       string `json:"niche" validate:"omitempty,max=200"`
	ProfileData string `json:"profile_data" validate:"omitempty,max=10000"`
}

type GenerateSocialCopyResponse struct {
	Copy string `json:"copy"`
}

type ResearchHashtagsRequest struct {
	Topic       string `json:"topic" validate:"required,max=500"`
	Niche       string `json:"niche" validate:"omitempty,max=200"`
	ProfileData string `json:"profile_data" validate:"omitempty,max=10000"`
}

type ResearchHashtagsResponse struct {
	Hashtags []string `json:"hashtags"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required,max=1000"`
	Style  string `json:"style" validate:"omitempty,max=100"`
}

type GenerateImageResponse struct {
	ImageURL string `json:"image_url"`
}

type AnalyzeCompetitorProfileRequest struct {
	ProfileData string `json:"profile_data" validate:"required,max=10000"`
	Niche       string `json:"niche" validate:"omitempty,max=200"`
}

type AnalyzeCompetitorProfileResponse struct {
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"`
}

type SuggestContentTopicsRequest struct {
	Niche       string `json:"niche" validate:"required,max=200"`
	ProfileData string `json:"profile_data" validate:"omitempty,max=10000"`
}

type SuggestContentTopicsResponse struct {
	Topics []string `json:"topics"`
}

type GenerateCopyVariationsRequest struct {
	Copy  string `json:"copy" validate:"required,max=2000"`
	Count int    `json:"count" validate:"omitempty,min=1,max=5"`
}

type GenerateCopyVariationsResponse struct {
	Variations []string `json:"variations"`
}
