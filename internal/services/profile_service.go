package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"shesafeBack/internal/models"
	"shesafeBack/internal/repositories"
)

// ProfileService exposes the profile-owned inputs of the alert core: the
// user's phone identifier, safety preference and safety PIN.
type ProfileService struct {
	UserRepo *repositories.UserRepository
}

// Identifier resolves the user's normalized phone number.
func (s *ProfileService) Identifier(ctx context.Context, userID int) (string, error) {
	phone, err := s.UserRepo.GetPhoneByID(ctx, userID)
	if err != nil {
		return "", err
	}
	normalized := models.NormalizePhone(phone)
	if normalized == "" {
		return "", models.ErrNoIdentifier
	}
	return normalized, nil
}

// Preference returns the user's safety preference.
func (s *ProfileService) Preference(ctx context.Context, userID int) (models.SafetyPreference, error) {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.SafetyPreference{}, err
	}
	return models.SafetyPreference{Mode: user.SafetyMode, CustomMessage: user.CustomMessage}, nil
}

// UpdatePreference stores a new safety preference.
func (s *ProfileService) UpdatePreference(ctx context.Context, userID int, pref models.SafetyPreference) error {
	switch pref.Mode {
	case models.SafetyModeNone, models.SafetyModeRide, models.SafetyModeWalk:
	default:
		pref.Mode = models.SafetyModeNone
	}
	return s.UserRepo.UpdateSafetyPreference(ctx, userID, pref)
}

// SetPIN hashes and stores the safety PIN.
func (s *ProfileService) SetPIN(ctx context.Context, userID int, pin string) error {
	if len(pin) < 4 {
		return models.ErrInvalidPIN
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.SetPINHash(ctx, userID, string(hash))
}

// VerifyPIN checks a PIN against the stored hash.
func (s *ProfileService) VerifyPIN(ctx context.Context, userID int, pin string) error {
	hash, err := s.UserRepo.GetPINHash(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return models.ErrInvalidPIN
		}
		return err
	}
	return nil
}
