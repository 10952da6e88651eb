// AngelaMos | 2026
// prompts.go

package agent

import (
	"fmt"
	"strings"
)

func socialCopyPrompt(req GenerateSocialCopyRequest) string {
	var b strings.Builder

	b.WriteString("Write a social media post for the following request: ")
	b.WriteString(req.Prompt)

	if req.Tone != "" {
		fmt.Fprintf(&b, "\nTone of voice: %s.", req.Tone)
	}

	if req.Niche != "" {
		fmt.Fprintf(&b, "\nNiche: %s.", req.Niche)
	}

	if req.ProfileData != "" {
		fmt.Fprintf(
			&b,
			"\nTailor the post to this profile:\n%s",
			req.ProfileData,
		)
	}

	b.WriteString("\nReturn only the post text, no preamble.")

	return b.String()
}

func hashtagsPrompt(req ResearchHashtagsRequest) string {
	var b strings.Builder

	fmt.Fprintf(
		&b,
		"Suggest 15 effective social media hashtags for the topic: %s.",
		req.Topic,
	)

	if req.Niche != "" {
		fmt.Fprintf(&b, "\nNiche: %s.", req.Niche)
	}

	if req.ProfileData != "" {
		fmt.Fprintf(
			&b,
			"\nConsider this profile context:\n%s",
			req.ProfileData,
		)
	}

	b.WriteString("\nReturn the hashtags separated by spaces, each starting with #.")

	return b.String()
}

func imagePrompt(req GenerateImageRequest) string {
	if req.Style == "" {
		return req.Prompt
	}

	return fmt.Sprintf("%s, in %s style", req.Prompt, req.Style)
}

func competitorAnalysisPrompt(req AnalyzeCompetitorProfileRequest) string {
	var b strings.Builder

	b.WriteString("Analyze the following social media profile as a competitor. ")
	b.WriteString("Cover content strategy, posting patterns, engagement signals, ")
	b.WriteString("and opportunities to differentiate. ")
	b.WriteString("Answer with one summary paragraph followed by a numbered ")
	b.WriteString("list of actionable insights.")

	if req.Niche != "" {
		fmt.Fprintf(&b, "\nOur niche: %s.", req.Niche)
	}

	fmt.Fprintf(&b, "\nProfile data:\n%s", req.ProfileData)

	return b.String()
}

func contentTopicsPrompt(req SuggestContentTopicsRequest) string {
	var b strings.Builder

	fmt.Fprintf(
		&b,
		"Suggest 10 engaging social media content topics for the niche: %s.",
		req.Niche,
	)

	if req.ProfileData != "" {
		fmt.Fprintf(
			&b,
			"\nConsider this profile context:\n%s",
			req.ProfileData,
		)
	}

	b.WriteString("\nReturn a numbered list, one topic per line.")

	return b.String()
}

func copyVariationsPrompt(req GenerateCopyVariationsRequest) string {
	count := req.Count
	if count == 0 {
		count = 3
	}

	return fmt.Sprintf(
		"Write %d alternative versions of this social media post, keeping the "+
			"message but varying style and hook. Return a numbered list, one "+
			"variation per line.\n\nOriginal post:\n%s",
		count,
		req.Copy,
	)
}
