package service

import "github.com/Dan9191/donation-service/internal/models"

// CreateCause persists a new cause
func (s *Service) CreateCause(cause *models.Cause) error {
	if err := s.store.CreateCause(cause); err != nil {
		return err
	}
	s.log.Infof("Cause created: %s (id=%d)", cause.Name, cause.ID)
	return nil
}

// GetCause retrieves a cause by id
func (s *Service) GetCause(id int64) (*models.Cause, error) {
	return s.store.FindCauseByID(id)
}

// ListCauses retrieves all causes
func (s *Service) ListCauses() ([]models.Cause, error) {
	return s.store.ListCauses()
}

// UpdateCause persists changes to an existing cause
func (s *Service) UpdateCause(cause *models.Cause) error {
	if err := s.store.UpdateCause(cause); err != nil {
		return err
	}
	s.log.Infof("Cause updated: %s (id=%d)", cause.Name, cause.ID)
	return nil
}

// DeleteCause removes a cause
func (s *Service) DeleteCause(id int64) error {
	if err := s.store.DeleteCause(id); err != nil {
		return err
	}
	s.log.Infof("Cause deleted: id=%d", id)
	return nil
}

// ListDonations retrieves the donation ledger
func (s *Service) ListDonations() ([]models.Donation, error) {
	return s.store.ListDonations()
}
