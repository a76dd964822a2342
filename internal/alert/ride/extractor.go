package ride

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"shesafeBack/internal/models"
)

// InboxReader lists recent SMS messages from the device inbox.
type InboxReader interface {
	ListInbox(ctx context.Context, maxCount int) ([]models.InboxMessage, error)
}

// Logger is the minimal logger required by the extractor.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// rideKeywords mark a message as a ride-provider confirmation.
var rideKeywords = []string{"ola", "uber", "rapido"}

var (
	vehicleRe = regexp.MustCompile(`(?i)vehicle\s*number\s*[:\-]?\s*([A-Z0-9-]+)`)
	driverRe  = regexp.MustCompile(`(?i)driver\s*name\s*[:\-]?\s*([A-Za-z ]+)`)
	phoneRe   = regexp.MustCompile(`(\+91\d{10}|\d{10})`)
)

// Extractor pulls ride details out of the newest matching inbox message.
type Extractor struct {
	reader   InboxReader
	logger   Logger
	maxCount int
}

// NewExtractor constructs an Extractor reading at most maxCount messages.
func NewExtractor(reader InboxReader, logger Logger, maxCount int) *Extractor {
	return &Extractor{reader: reader, logger: logger, maxCount: maxCount}
}

// Extract scans the inbox newest-first and returns whatever ride details the
// first keyword-matching message yields. Every field defaults to the NotFound
// sentinel independently; a read failure or no match is a normal outcome.
func (e *Extractor) Extract(ctx context.Context) models.TripContext {
	messages, err := e.reader.ListInbox(ctx, e.maxCount)
	if err != nil {
		e.logger.Errorf("ride: inbox read failed: %v", err)
		return models.EmptyTripContext()
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Date > messages[j].Date
	})
	for _, msg := range messages {
		if !isRideMessage(msg.Body) {
			continue
		}
		return ExtractFromBody(msg.Body)
	}
	return models.EmptyTripContext()
}

func isRideMessage(body string) bool {
	lower := strings.ToLower(body)
	for _, kw := range rideKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractFromBody applies the three independent field extractions to one
// message body. Partial extraction is the expected common case.
func ExtractFromBody(body string) models.TripContext {
	trip := models.EmptyTripContext()
	if m := driverRe.FindStringSubmatch(body); m != nil {
		trip.DriverName = strings.TrimSpace(m[1])
	}
	if m := vehicleRe.FindStringSubmatch(body); m != nil {
		trip.VehicleNumber = strings.TrimSpace(m[1])
	}
	if m := phoneRe.FindStringSubmatch(body); m != nil {
		trip.DriverPhone = strings.TrimSpace(m[1])
	}
	return trip
}
