package repository

import (
	"database/sql"
	"fmt"

	"github.com/Dan9191/donation-service/internal/models"
)

// CreateCause creates a new cause in the database
func (r *Repository) CreateCause(cause *models.Cause) error {
	query := `
		INSERT INTO causes (name, tagline, description, end_date, banner_image, cover_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, cause.Name, cause.Tagline, cause.Description, cause.EndDate, cause.BannerImage, cause.CoverImage).
		Scan(&cause.ID, &cause.CreatedAt, &cause.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create cause: %w", err)
	}
	return nil
}

// FindCauseByID retrieves a cause by primary key
func (r *Repository) FindCauseByID(id int64) (*models.Cause, error) {
	cause := &models.Cause{}
	query := `
		SELECT id, name, tagline, description, end_date, banner_image, cover_image, created_at, updated_at
		FROM causes
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&cause.ID, &cause.Name, &cause.Tagline, &cause.Description, &cause.EndDate,
			&cause.BannerImage, &cause.CoverImage, &cause.CreatedAt, &cause.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cause: %w", err)
	}
	return cause, nil
}

// ListCauses retrieves all causes
func (r *Repository) ListCauses() ([]models.Cause, error) {
	query := `
		SELECT id, name, tagline, description, end_date, banner_image, cover_image, created_at, updated_at
		FROM causes
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list causes: %w", err)
	}
	defer rows.Close()

	causes := []models.Cause{}
	for rows.Next() {
		var cause models.Cause
		if err := rows.Scan(&cause.ID, &cause.Name, &cause.Tagline, &cause.Description, &cause.EndDate,
			&cause.BannerImage, &cause.CoverImage, &cause.CreatedAt, &cause.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cause: %w", err)
		}
		causes = append(causes, cause)
	}
	return causes, rows.Err()
}

// UpdateCause updates an existing cause
func (r *Repository) UpdateCause(cause *models.Cause) error {
	query := `
		UPDATE causes
		SET name = $1, tagline = $2, description = $3, end_date = $4,
		    banner_image = $5, cover_image = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING updated_at`
	err := r.db.QueryRow(query, cause.Name, cause.Tagline, cause.Description, cause.EndDate,
		cause.BannerImage, cause.CoverImage, cause.ID).Scan(&cause.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update cause: %w", err)
	}
	return nil
}

// DeleteCause deletes a cause by primary key
func (r *Repository) DeleteCause(id int64) error {
	result, err := r.db.Exec(`DELETE FROM causes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cause: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete cause: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ReferencedImages returns the set of image paths referenced by any cause
func (r *Repository) ReferencedImages() (map[string]bool, error) {
	rows, err := r.db.Query(`SELECT banner_image, cover_image FROM causes`)
	if err != nil {
		return nil, fmt.Errorf("failed to list referenced images: %w", err)
	}
	defer rows.Close()

	referenced := map[string]bool{}
	for rows.Next() {
		var banner, cover string
		if err := rows.Scan(&banner, &cover); err != nil {
			return nil, fmt.Errorf("failed to scan image paths: %w", err)
		}
		if banner != "" {
			referenced[banner] = true
		}
		if cover != "" {
			referenced[cover] = true
		}
	}
	return referenced, rows.Err()
}
