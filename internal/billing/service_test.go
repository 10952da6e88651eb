// AngelaMos | 2026
// service_test.go

package billing

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/monsterapp/backend/internal/config"
	"github.com/monsterapp/backend/internal/core"
	"github.com/monsterapp/backend/internal/user"
)

const testWebhookSecret = "whsec_test_secret"

type fakeDirectory struct {
	byID       map[string]*user.User
	byEmail    map[string]*user.User
	byCustomer map[string]*user.User
	attached   map[string]string
}

func newFakeDirectory(users ...*user.User) *fakeDirectory {
	f := &fakeDirectory{
		byID:       make(map[string]*user.User),
		byEmail:    make(map[string]*user.User),
		byCustomer: make(map[string]*user.User),
		attached:   make(map[string]string),
	}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[u.Email] = u
		if u.StripeCustomerID != nil {
			f.byCustomer[*u.StripeCustomerID] = u
		}
	}
	return f
}

func (f *fakeDirectory) GetUser(
	_ context.Context,
	id string,
) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeDirectory) GetUserByEmail(
	_ context.Context,
	email string,
) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeDirectory) GetByStripeCustomerID(
	_ context.Context,
	customerID string,
) (*user.User, error) {
	u, ok := f.byCustomer[customerID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeDirectory) UpdateUserPlan(
	_ context.Context,
	id, plan string,
) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	u.Plan = plan
	return u, nil
}

func (f *fakeDirectory) AttachStripeCustomer(
	_ context.Context,
	id, customerID string,
) error {
	f.attached[id] = customerID
	return nil
}

func newTestBillingService(dir UserDirectory) *Service {
	return NewService(
		config.StripeConfig{
			SecretKey:     "sk_test_key",
			WebhookSecret: testWebhookSecret,
		},
		dir,
		slog.New(slog.DiscardHandler),
	)
}

func signedPayload(t *testing.T, body string) ([]byte, string) {
	t.Helper()

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(body),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return signed.Payload, signed.Header
}

func eventJSON(eventType, object string) string {
	return fmt.Sprintf(
		`{"id":"evt_1","api_version":%q,"type":%q,"data":{"object":%s}}`,
		stripe.APIVersion,
		eventType,
		object,
	)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	svc := newTestBillingService(newFakeDirectory())

	body := eventJSON("checkout.session.completed", `{"id":"cs_1"}`)
	err := svc.HandleWebhook(
		context.Background(),
		[]byte(body),
		"t=12345,v1=deadbeef",
	)
	if err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestCheckoutCompletedUpgradesPlan(t *testing.T) {
	account := &user.User{ID: "u1", Email: "a@example.com", Plan: user.PlanFree}
	dir := newFakeDirectory(account)
	svc := newTestBillingService(dir)

	object := `{"id":"cs_1","metadata":{"user_id":"u1"},"customer":"cus_1"}`
	payload, header := signedPayload(
		t,
		eventJSON("checkout.session.completed", object),
	)

	if err := svc.HandleWebhook(context.Background(), payload, header); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Plan != user.PlanPro {
		t.Fatalf("plan = %q, want %q", account.Plan, user.PlanPro)
	}
	if dir.attached["u1"] != "cus_1" {
		t.Fatalf("attached customer = %q, want cus_1", dir.attached["u1"])
	}
}

func TestCheckoutCompletedFallsBackToEmail(t *testing.T) {
	account := &user.User{ID: "u2", Email: "maria@example.com", Plan: user.PlanFree}
	dir := newFakeDirectory(account)
	svc := newTestBillingService(dir)

	object := `{"id":"cs_2","customer_details":{"email":"maria@example.com"}}`
	payload, header := signedPayload(
		t,
		eventJSON("checkout.session.completed", object),
	)

	if err := svc.HandleWebhook(context.Background(), payload, header); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Plan != user.PlanPro {
		t.Fatalf("plan = %q, want %q", account.Plan, user.PlanPro)
	}
}

func TestCheckoutCompletedWithoutIdentityFails(t *testing.T) {
	svc := newTestBillingService(newFakeDirectory())

	payload, header := signedPayload(
		t,
		eventJSON("checkout.session.completed", `{"id":"cs_3"}`),
	)

	err := svc.HandleWebhook(context.Background(), payload, header)
	if err == nil {
		t.Fatal("expected error for session with no user_id and no email")
	}
}

func TestSubscriptionDeletedDowngradesPlan(t *testing.T) {
	customerID := "cus_9"
	account := &user.User{
		ID:               "u3",
		Email:            "b@example.com",
		Plan:             user.PlanPro,
		StripeCustomerID: &customerID,
	}
	dir := newFakeDirectory(account)
	svc := newTestBillingService(dir)

	object := `{"id":"sub_1","customer":"cus_9"}`
	payload, header := signedPayload(
		t,
		eventJSON("customer.subscription.deleted", object),
	)

	if err := svc.HandleWebhook(context.Background(), payload, header); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Plan != user.PlanFree {
		t.Fatalf("plan = %q, want %q", account.Plan, user.PlanFree)
	}
}

func TestUnknownEventTypeIsIgnored(t *testing.T) {
	account := &user.User{ID: "u4", Email: "c@example.com", Plan: user.PlanFree}
	dir := newFakeDirectory(account)
	svc := newTestBillingService(dir)

	payload, header := signedPayload(
		t,
		eventJSON("invoice.paid", `{"id":"in_1"}`),
	)

	if err := svc.HandleWebhook(context.Background(), payload, header); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Plan != user.PlanFree {
		t.Fatalf("plan changed on ignored event: %q", account.Plan)
	}
}
