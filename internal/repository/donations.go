package repository

import (
	"fmt"

	"github.com/Dan9191/donation-service/internal/models"
)

// CreateDonation appends a donation to the ledger. The single INSERT is its
// own transaction, and the UNIQUE constraint on provider_event_id arbitrates
// concurrent redeliveries of the same provider event: exactly one delivery
// wins, the rest get ErrEventAlreadyProcessed.
func (r *Repository) CreateDonation(donation *models.Donation) error {
	query := `
		INSERT INTO donations (donor_id, cause_id, amount, provider_event_id, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, donation.DonorID, donation.CauseID, donation.Amount, donation.ProviderEventID).
		Scan(&donation.ID, &donation.CreatedAt)
	if isUniqueViolation(err) {
		return models.ErrEventAlreadyProcessed
	}
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

// ListDonations retrieves the full donation ledger
func (r *Repository) ListDonations() ([]models.Donation, error) {
	query := `
		SELECT id, donor_id, cause_id, amount, provider_event_id, created_at
		FROM donations
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	donations := []models.Donation{}
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.DonorID, &d.CauseID, &d.Amount, &d.ProviderEventID, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
