package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shesafeBack/internal/models"
	"shesafeBack/utils"
)

const (
	pairingTTL     = 5 * time.Minute
	bridgeTokenTTL = 30 * 24 * time.Hour
)

// PairingService links a handset bridge agent to a user account. The app
// shows a short code, the agent submits it back and receives a long-lived
// bridge token.
type PairingService struct {
	RDB    *redis.Client
	Tokens *utils.Manager
}

func pairingKey(code string) string {
	return fmt.Sprintf("pairing:%s", code)
}

// Begin stores a fresh pairing code for the user. Codes expire unused.
func (s *PairingService) Begin(ctx context.Context, userID int) (string, error) {
	code := utils.PairingCode()
	if err := s.RDB.Set(ctx, pairingKey(code), userID, pairingTTL).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Complete exchanges a valid code for a bridge token. The code is consumed
// on first use.
func (s *PairingService) Complete(ctx context.Context, code string) (string, error) {
	userID, err := s.RDB.GetDel(ctx, pairingKey(code)).Result()
	if errors.Is(err, redis.Nil) {
		return "", models.ErrNoRecord
	}
	if err != nil {
		return "", err
	}
	return s.Tokens.NewJWT(userID, bridgeTokenTTL)
}
