// AngelaMos | 2026
// service.go

package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/monsterapp/backend/internal/ai"
	"github.com/monsterapp/backend/internal/core"
	"github.com/monsterapp/backend/internal/ledger"
)

// SubjectResolver fetches the caller's current plan from storage. The
// session token also carries a plan claim, but billing webhooks change
// plans mid-session, so admission always reads the stored value.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, userID string) (ledger.Subject, error)
}

// Admitter is the quota ledger's admission contract.
type Admitter interface {
	AdmitAndRecord(
		ctx context.Context,
		subject ledger.Subject,
		capability ledger.Capability,
		now time.Time,
	) (ledger.Decision, error)
}

type Service struct {
	users  SubjectResolver
	ledger Admitter
	openai ai.TextGenerator
	gemini ai.TextGenerator
	images ai.ImageGenerator
	logger *slog.Logger
}

func NewService(
	users SubjectResolver,
	admitter Admitter,
	openai ai.TextGenerator,
	gemini ai.TextGenerator,
	images ai.ImageGenerator,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:  users,
		ledger: admitter,
		openai: openai,
		gemini: gemini,
		images: images,
		logger: logger,
	}
}

// admit resolves the caller and runs the quota check. Denials come back
// as client-mappable errors; the quota slot is consumed on admission,
// before any provider call.
func (s *Service) admit(
	ctx context.Context,
	userID string,
	capability ledger.Capability,
) error {
	subject, err := s.users.ResolveSubject(ctx, userID)
	if err != nil {
		// A token whose subject no longer exists fails the same way a
		// bad token does.
		if errors.Is(err, core.ErrNotFound) {
			return core.UnauthorizedError("")
		}
		return fmt.Errorf("resolve subject: %w", err)
	}

	decision, err := s.ledger.AdmitAndRecord(
		ctx,
		subject,
		capability,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("admit %s: %w", capability, err)
	}

	if !decision.Admitted {
		s.logger.Info("capability denied",
			slog.String("user_id", userID),
			slog.String("capability", string(capability)),
			slog.String("reason", string(decision.Reason)),
		)

		if decision.Reason == ledger.ReasonNotEntitled {
			return core.NotEntitledError(string(capability))
		}

		return core.QuotaExceededError(string(capability), decision.Ceiling)
	}

	return nil
}

func (s *Service) GenerateSocialCopy(
	ctx context.Context,
	userID string,
	req GenerateSocialCopyRequest,
) (*GenerateSocialCopyResponse, error) {
	if err := s.admit(ctx, userID, ledger.CapGenerateSocialCopy); err != nil {
		return nil, err
	}

	text, err := s.openai.GenerateText(ctx, socialCopyPrompt(req))
	if err != nil {
		return nil, core.UpstreamError(s.openai.Name(), err)
	}

	return &GenerateSocialCopyResponse{Copy: text}, nil
}

func (s *Service) ResearchHashtags(
	ctx context.Context,
	userID string,
	req ResearchHashtagsRequest,
) (*ResearchHashtagsResponse, error) {
	if err := s.admit(ctx, userID, ledger.CapResearchHashtags); err != nil {
		return nil, err
	}

	text, err := s.gemini.GenerateText(ctx, hashtagsPrompt(req))
	if err != nil {
		return nil, core.UpstreamError(s.gemini.Name(), err)
	}

	return &ResearchHashtagsResponse{Hashtags: ExtractHashtags(text)}, nil
}

func (s *Service) GenerateImage(
	ctx context.Context,
	userID string,
	req GenerateImageRequest,
) (*GenerateImageResponse, error) {
	if err := s.admit(ctx, userID, ledger.CapGenerateImage); err != nil {
		return nil, err
	}

	url, err := s.images.GenerateImage(ctx, imagePrompt(req))
	if err != nil {
		return nil, core.UpstreamError(s.images.Name(), err)
	}

	return &GenerateImageResponse{ImageURL: url}, nil
}

func (s *Service) AnalyzeCompetitorProfile(
	ctx context.Context,
	userID string,
	req AnalyzeCompetitorProfileRequest,
) (*AnalyzeCompetitorProfileResponse, error) {
	if err := s.admit(ctx, userID, ledger.CapAnalyzeCompetitorProfile); err != nil {
		return nil, err
	}

	text, err := s.openai.GenerateText(ctx, competitorAnalysisPrompt(req))
	if err != nil {
		return nil, core.UpstreamError(s.openai.Name(), err)
	}

	summary, insights := SplitSummaryAndList(text)

	return &AnalyzeCompetitorProfileResponse{
		Summary:  summary,
		Insights: insights,
	}, nil
}

func (s *Service) SuggestContentTopics(
	ctx context.Context,
	userID string,
	req SuggestContentTopicsRequest,
) (*SuggestContentTopicsResponse, error) {
	if err := s.admit(ctx, userID, ledger.CapSuggestContentTopics); err != nil {
		return nil, err
	}

	text, err := s.gemini.GenerateText(ctx, contentTopicsPrompt(req))
	if err != nil {
		return nil, core.UpstreamError(s.gemini.Name(), err)
	}

	return &SuggestContentTopicsResponse{Topics: SplitListItems(text)}, nil
}

func (s *Service) GenerateCopyVariations(
	ctx context.Context,
	userID string,
	req GenerateCopyVariationsRequest,
) (*GenerateCopyVariationsResponse, error) {
	if err := s.admit(ctx, userID, ledger.CapGenerateCopyVariations); err != nil {
		return nil, err
	}

	text, err := s.openai.GenerateText(ctx, copyVariationsPrompt(req))
	if err != nil {
		return nil, core.UpstreamError(s.openai.Name(), err)
	}

	return &GenerateCopyVariationsResponse{
		Variations: SplitListItems(text),
	}, nil
}
