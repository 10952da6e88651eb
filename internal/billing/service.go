// AngelaMos | 2026
// service.go

package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/monsterapp/backend/internal/config"
	"github.com/monsterapp/backend/internal/core"
	"github.com/monsterapp/backend/internal/user"
)

// UserDirectory is the slice of the user service billing needs to tie
// Stripe events back to accounts.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*user.User, error)
	UpdateUserPlan(ctx context.Context, id, plan string) (*user.User, error)
	AttachStripeCustomer(ctx context.Context, id, customerID string) error
}

type Service struct {
	users         UserDirectory
	webhookSecret string
	logger        *slog.Logger
}

func NewService(
	cfg config.StripeConfig,
	users UserDirectory,
	logger *slog.Logger,
) *Service {
	stripe.Key = cfg.SecretKey

	return &Service{
		users:         users,
		webhookSecret: cfg.WebhookSecret,
		logger:        logger,
	}
}

// CreateCheckoutSession opens a subscription checkout for the caller and
// returns the redirect URL. The internal user id rides along as metadata
// so webhook events can be tied back to the account.
func (s *Service) CreateCheckoutSession(
	ctx context.Context,
	userID string,
	req CreateCheckoutSessionRequest,
) (*CreateCheckoutSessionResponse, error) {
	account, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	customerID, err := s.getOrCreateCustomer(ctx, account)
	if err != nil {
		return nil, core.UpstreamError("stripe", err)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(customerID),
		SuccessURL: stripe.String(req.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"user_id": account.ID,
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, core.UpstreamError("stripe", err)
	}

	return &CreateCheckoutSessionResponse{CheckoutURL: sess.URL}, nil
}

// HandleWebhook verifies a Stripe event signature and applies the plan
// change it implies. Unknown event types are acknowledged and ignored so
// Stripe stops retrying them.
func (s *Service) HandleWebhook(
	ctx context.Context,
	payload []byte,
	signature string,
) error {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, event)
	default:
		s.logger.Debug("ignoring webhook event",
			slog.String("type", string(event.Type)),
		)
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(
	ctx context.Context,
	event stripe.Event,
) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("decode checkout session event: %w", err)
	}

	userID := sess.Metadata["user_id"]
	if userID == "" {
		// Sessions opened outside the API carry no metadata; fall back
		// to the checkout email.
		if sess.CustomerDetails == nil || sess.CustomerDetails.Email == "" {
			return fmt.Errorf(
				"checkout session %s has no user_id metadata or customer email",
				sess.ID,
			)
		}

		account, err := s.users.GetUserByEmail(ctx, sess.CustomerDetails.Email)
		if err != nil {
			return fmt.Errorf(
				"resolve checkout email for session %s: %w",
				sess.ID,
				err,
			)
		}
		userID = account.ID
	}

	if sess.Customer != nil {
		if err := s.users.AttachStripeCustomer(
			ctx,
			userID,
			sess.Customer.ID,
		); err != nil {
			return fmt.Errorf("attach stripe customer: %w", err)
		}
	}

	if _, err := s.users.UpdateUserPlan(ctx, userID, user.PlanPro); err != nil {
		return fmt.Errorf("upgrade plan: %w", err)
	}

	s.logger.Info("user upgraded to pro",
		slog.String("user_id", userID),
		slog.String("checkout_session", sess.ID),
	)

	return nil
}

func (s *Service) handleSubscriptionDeleted(
	ctx context.Context,
	event stripe.Event,
) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("decode subscription event: %w", err)
	}

	if sub.Customer == nil {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	account, err := s.users.GetByStripeCustomerID(ctx, sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("resolve customer %s: %w", sub.Customer.ID, err)
	}

	if _, err := s.users.UpdateUserPlan(ctx, account.ID, user.PlanFree); err != nil {
		return fmt.Errorf("downgrade plan: %w", err)
	}

	s.logger.Info("user downgraded to free",
		slog.String("user_id", account.ID),
		slog.String("subscription", sub.ID),
	)

	return nil
}

func (s *Service) getOrCreateCustomer(
	ctx context.Context,
	account *user.User,
) (string, error) {
	if account.StripeCustomerID != nil && *account.StripeCustomerID != "" {
		return *account.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(account.Email),
		Metadata: map[string]string{
			"user_id": account.ID,
		},
	}
	params.Context = ctx

	cust, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("create stripe customer: %w", err)
	}

	if err := s.users.AttachStripeCustomer(ctx, account.ID, cust.ID); err != nil {
		return "", fmt.Errorf("persist stripe customer id: %w", err)
	}

	return cust.ID, nil
}
