// AngelaMos | 2026
// capability.go

package ledger

// Capability is one named AI-backed operation subject to quota gating.
type Capability string

const (
	CapGenerateSocialCopy       Capability = "generate-social-copy"
	CapResearchHashtags         Capability = "research-hashtags"
	CapGenerateImage            Capability = "generate-image"
	CapAnalyzeCompetitorProfile Capability = "analyze-competitor-profile"
	CapSuggestContentTopics     Capability = "suggest-content-topics"
	CapGenerateCopyVariations   Capability = "generate-copy-variations"
)

func Capabilities() []Capability {
	return []Capability{
		CapGenerateSocialCopy,
		CapResearchHashtags,
		CapGenerateImage,
		CapAnalyzeCompetitorProfile,
		CapSuggestContentTopics,
		CapGenerateCopyVariations,
	}
}

func (c Capability) Valid() bool {
	switch c {
	case CapGenerateSocialCopy,
		CapResearchHashtags,
		CapGenerateImage,
		CapAnalyzeCompetitorProfile,
		CapSuggestContentTopics,
		CapGenerateCopyVariations:
		return true
	}
	return false
}
