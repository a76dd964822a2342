package services

import (
	"context"

	"cloud.google.com/go/firestore"

	"shesafeBack/internal/models"
)

// liveLocationsCollection is read by the tracking-link web viewer.
const liveLocationsCollection = "liveLocations"

// FirestoreSink writes live-location points to Firestore, one document per
// subject phone, last write wins.
type FirestoreSink struct {
	Client *firestore.Client
}

// PublishLocation overwrites the document for loc.Phone.
func (s *FirestoreSink) PublishLocation(ctx context.Context, loc models.LiveLocation) error {
	_, err := s.Client.Collection(liveLocationsCollection).Doc(loc.Phone).Set(ctx, map[string]interface{}{
		"phoneNumber": loc.Phone,
		"latitude":    loc.Latitude,
		"longitude":   loc.Longitude,
		"timestamp":   loc.Timestamp,
	})
	return err
}

// ReadLocation returns the last published point for a phone.
func (s *FirestoreSink) ReadLocation(ctx context.Context, phone string) (models.LiveLocation, error) {
	doc, err := s.Client.Collection(liveLocationsCollection).Doc(phone).Get(ctx)
	if err != nil {
		return models.LiveLocation{}, err
	}
	var loc models.LiveLocation
	if err := doc.DataTo(&loc); err != nil {
		return models.LiveLocation{}, err
	}
	return loc, nil
}
