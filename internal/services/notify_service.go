package services

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/messaging"

	"shesafeBack/internal/models"
	"shesafeBack/internal/repositories"
)

// NotifyService pushes cycle results to the user's own devices over FCM.
type NotifyService struct {
	Client   *messaging.Client
	UserRepo *repositories.UserRepository
}

// RegisterToken stores a device token for later pushes.
func (s *NotifyService) RegisterToken(ctx context.Context, userID int, token string) error {
	return s.UserRepo.InsertToken(ctx, userID, token)
}

// RemoveToken deletes a device token.
func (s *NotifyService) RemoveToken(ctx context.Context, token string) error {
	return s.UserRepo.DeleteToken(ctx, token)
}

// PushCycleResult notifies every registered device about a finished cycle.
// Per-token failures are logged and do not stop the remaining sends.
func (s *NotifyService) PushCycleResult(ctx context.Context, userID int, result models.CycleResult) error {
	tokens, err := s.UserRepo.GetTokensByUserID(ctx, userID)
	if err != nil {
		return err
	}

	title := "SOS alerts sent"
	body := fmt.Sprintf("Emergency alerts delivered to %d contact attempts", len(result.Results))
	if result.Denied != "" {
		title = "SOS could not be sent"
		body = fmt.Sprintf("Permission %s was denied", result.Denied)
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: map[string]string{
				"cycle_id": result.CycleID,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					ChannelID: "high_priority_channel",
				},
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority": "10",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Alert: &messaging.ApsAlert{
							Title: title,
							Body:  body,
						},
						Sound: "default",
					},
				},
			},
		}
		if _, err := s.Client.Send(ctx, message); err != nil {
			log.Printf("notify: send to token %s failed: %v", token, err)
		}
	}
	return nil
}
