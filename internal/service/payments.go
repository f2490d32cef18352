package service

import (
	"errors"
	"strconv"

	"github.com/Dan9191/donation-service/internal/models"
)

// CreateCheckoutSession verifies the cause exists, then asks the payment
// provider for a hosted checkout URL with the cause id embedded as metadata
// so the webhook can recover it. A missing cause never reaches the provider.
func (s *Service) CreateCheckoutSession(causeID int64) (string, error) {
	if _, err := s.store.FindCauseByID(causeID); err != nil {
		return "", err
	}
	url, err := s.provider.CreateCheckoutSession(causeID)
	if err != nil {
		return "", err
	}
	s.log.Infof("Checkout session created for cause %d", causeID)
	return url, nil
}

// ProcessWebhook verifies and settles a webhook delivery from the payment
// provider. Only "charge.succeeded" events mutate the ledger; every other
// event type is acknowledged with no state change. Redelivered events are
// acknowledged without double-crediting.
func (s *Service) ProcessWebhook(payload []byte, sigHeader string) error {
	event, err := s.provider.ParseEvent(payload, sigHeader)
	if err != nil {
		return err
	}

	if event.Charge == nil {
		s.log.Debugf("Ignoring webhook event %s of type %s", event.ID, event.Type)
		return nil
	}

	causeID, err := strconv.ParseInt(event.Charge.CauseID, 10, 64)
	if err != nil {
		return models.ErrReferenceNotFound
	}
	cause, err := s.store.FindCauseByID(causeID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrReferenceNotFound
		}
		return err
	}
	donor, err := s.store.FindUserByEmail(event.Charge.BillingEmail)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrReferenceNotFound
		}
		return err
	}

	donation := &models.Donation{
		DonorID:         donor.ID,
		CauseID:         cause.ID,
		Amount:          float64(event.Charge.AmountMinor) / 100,
		ProviderEventID: event.ID,
	}
	if err := s.store.CreateDonation(donation); err != nil {
		if errors.Is(err, models.ErrEventAlreadyProcessed) {
			s.log.Infof("Webhook event %s already settled, acknowledging", event.ID)
			return nil
		}
		return err
	}

	s.log.Infof("Donation of %.2f settled for cause %d by user %d (event %s)",
		donation.Amount, cause.ID, donor.ID, event.ID)

	// Receipt delivery is best-effort: the provider already has its 200.
	if err := s.mailer.SendDonationReceipt(donor.Email, donor.Username, cause.Name, donation.Amount); err != nil {
		s.log.Errorf("Failed to send donation receipt to %s: %v", donor.Email, err)
	}
	return nil
}
