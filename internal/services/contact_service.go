package services

import (
	"context"

	"shesafeBack/internal/models"
	"shesafeBack/internal/repositories"
)

// ContactService owns the emergency contact registry. Entries that fail
// validation are dropped silently at save time, never at display time.
type ContactService struct {
	ContactRepo *repositories.ContactRepository
}

// Save validates, normalizes and persists a contact list. Invalid entries
// are filtered out, the list is capped at models.MaxContacts.
func (s *ContactService) Save(ctx context.Context, userID int, contacts []models.Contact) ([]models.Contact, error) {
	valid := models.ValidContacts(contacts)
	if err := s.ContactRepo.SaveContacts(ctx, userID, valid); err != nil {
		return nil, err
	}
	return valid, nil
}

// List returns the stored contacts as-is for display.
func (s *ContactService) List(ctx context.Context, userID int) ([]models.Contact, error) {
	return s.ContactRepo.LoadContacts(ctx, userID)
}
