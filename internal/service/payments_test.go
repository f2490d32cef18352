package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/donation-service/internal/models"
)

func storeWithCauseAndDonor(t *testing.T) (*fakeStore, *models.Cause, *models.User) {
	t.Helper()
	store := newFakeStore()

	donor := &models.User{Username: "alice", Email: "donor@example.com", PasswordHash: "x"}
	require.NoError(t, store.CreateUser(donor))

	var cause *models.Cause
	// The webhook fixtures reference cause id 7 in their metadata
	for {
		cause = &models.Cause{Name: "Clean Water", Tagline: "wells", Description: "dig wells", EndDate: time.Now().Add(24 * time.Hour)}
		require.NoError(t, store.CreateCause(cause))
		if cause.ID >= 7 {
			break
		}
	}
	return store, cause, donor
}

func chargeEvent(id string, amountMinor int64, causeID, email string) *models.PaymentEvent {
	return &models.PaymentEvent{
		ID:   id,
		Type: "charge.succeeded",
		Charge: &models.ChargeSucceeded{
			AmountMinor:  amountMinor,
			CauseID:      causeID,
			BillingEmail: email,
		},
	}
}

func TestProcessWebhookChargeSucceeded(t *testing.T) {
	store, cause, donor := storeWithCauseAndDonor(t)
	provider := &fakeProvider{event: chargeEvent("evt_1", 2500, "7", donor.Email)}
	mailer := &fakeMailer{}
	svc := newTestService(store, provider, mailer)

	err := svc.ProcessWebhook([]byte(`{}`), "sig")
	require.NoError(t, err)

	require.Len(t, store.donations, 1)
	d := store.donations[0]
	assert.Equal(t, 25.00, d.Amount)
	assert.Equal(t, cause.ID, d.CauseID)
	assert.Equal(t, donor.ID, d.DonorID)
	assert.Equal(t, "evt_1", d.ProviderEventID)

	// Receipt went to the donor
	assert.Equal(t, []string{donor.Email}, mailer.receipts)
}

func TestProcessWebhookRedelivery(t *testing.T) {
	store, _, donor := storeWithCauseAndDonor(t)
	provider := &fakeProvider{event: chargeEvent("evt_1", 2500, "7", donor.Email)}
	svc := newTestService(store, provider, &fakeMailer{})

	require.NoError(t, svc.ProcessWebhook([]byte(`{}`), "sig"))
	// Same provider event id delivered again: acknowledged, not re-credited
	require.NoError(t, svc.ProcessWebhook([]byte(`{}`), "sig"))

	assert.Len(t, store.donations, 1)
}

func TestProcessWebhookIgnoresOtherEventTypes(t *testing.T) {
	store, _, _ := storeWithCauseAndDonor(t)
	provider := &fakeProvider{event: &models.PaymentEvent{ID: "evt_2", Type: "charge.failed"}}
	mailer := &fakeMailer{}
	svc := newTestService(store, provider, mailer)

	err := svc.ProcessWebhook([]byte(`{}`), "sig")
	require.NoError(t, err)
	assert.Empty(t, store.donations)
	assert.Empty(t, mailer.receipts)
}

func TestProcessWebhookUnknownCause(t *testing.T) {
	store, _, donor := storeWithCauseAndDonor(t)
	provider := &fakeProvider{event: chargeEvent("evt_3", 2500, "9999", donor.Email)}
	svc := newTestService(store, provider, &fakeMailer{})

	err := svc.ProcessWebhook([]byte(`{}`), "sig")
	assert.ErrorIs(t, err, models.ErrReferenceNotFound)
	assert.Empty(t, store.donations)
}

func TestProcessWebhookUnknownDonor(t *testing.T) {
	store, _, _ := storeWithCauseAndDonor(t)
	provider := &fakeProvider{event: chargeEvent("evt_4", 2500, "7", "stranger@example.com")}
	svc := newTestService(store, provider, &fakeMailer{})

	err := svc.ProcessWebhook([]byte(`{}`), "sig")
	assert.ErrorIs(t, err, models.ErrReferenceNotFound)
	assert.Empty(t, store.donations)
}

func TestProcessWebhookNonNumericCauseID(t *testing.T) {
	store, _, donor := storeWithCauseAndDonor(t)
	provider := &fakeProvider{event: chargeEvent("evt_5", 2500, "", donor.Email)}
	svc := newTestService(store, provider, &fakeMailer{})

	err := svc.ProcessWebhook([]byte(`{}`), "sig")
	assert.ErrorIs(t, err, models.ErrReferenceNotFound)
}

func TestProcessWebhookBadSignature(t *testing.T) {
	store, _, _ := storeWithCauseAndDonor(t)
	provider := &fakeProvider{parseErr: models.ErrSignatureInvalid}
	svc := newTestService(store, provider, &fakeMailer{})

	err := svc.ProcessWebhook([]byte(`{}`), "bad")
	assert.ErrorIs(t, err, models.ErrSignatureInvalid)
	assert.Empty(t, store.donations)
}

func TestProcessWebhookReceiptFailureStillSettles(t *testing.T) {
	store, _, donor := storeWithCauseAndDonor(t)
	provider := &fakeProvider{event: chargeEvent("evt_6", 1000, "7", donor.Email)}
	mailer := &fakeMailer{err: assert.AnError}
	svc := newTestService(store, provider, mailer)

	err := svc.ProcessWebhook([]byte(`{}`), "sig")
	require.NoError(t, err)
	assert.Len(t, store.donations, 1)
}

func TestCreateCheckoutSession(t *testing.T) {
	store, cause, _ := storeWithCauseAndDonor(t)
	provider := &fakeProvider{checkoutURL: "https://checkout.example/session"}
	svc := newTestService(store, provider, &fakeMailer{})

	url, err := svc.CreateCheckoutSession(cause.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/session", url)
	assert.Equal(t, 1, provider.checkoutCalls)
}

func TestCreateCheckoutSessionUnknownCause(t *testing.T) {
	store, _, _ := storeWithCauseAndDonor(t)
	provider := &fakeProvider{checkoutURL: "https://checkout.example/session"}
	svc := newTestService(store, provider, &fakeMailer{})

	_, err := svc.CreateCheckoutSession(9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
	// The provider is never contacted for a missing cause
	assert.Equal(t, 0, provider.checkoutCalls)
}
