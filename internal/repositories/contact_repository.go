package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"shesafeBack/internal/models"
)

// ContactRepository persists emergency contact lists in Redis, one key per
// user. The registry is the only writer of this form.
type ContactRepository struct {
	RDB *redis.Client
}

func contactsKey(userID int) string {
	return fmt.Sprintf("contacts:%d", userID)
}

// SaveContacts overwrites the stored list for a user.
func (r *ContactRepository) SaveContacts(ctx context.Context, userID int, contacts []models.Contact) error {
	raw, err := json.Marshal(contacts)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, contactsKey(userID), raw, 0).Err()
}

// LoadContacts returns the stored list. A missing key is an empty list.
func (r *ContactRepository) LoadContacts(ctx context.Context, userID int) ([]models.Contact, error) {
	raw, err := r.RDB.Get(ctx, contactsKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return []models.Contact{}, nil
	}
	if err != nil {
		return nil, err
	}
	var contacts []models.Contact
	if err := json.Unmarshal([]byte(raw), &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}
