package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shesafeBack/internal/models"
)

// PermissionKind names a runtime capability grant on the paired device.
type PermissionKind string

const (
	PermissionPlaceCall    PermissionKind = "place_call"
	PermissionSendMessage  PermissionKind = "send_message"
	PermissionReadMessages PermissionKind = "read_messages"
	PermissionFineLocation PermissionKind = "fine_location"
)

// Client talks to the device bridge agent running on the paired handset. The
// agent exposes the phone's raw capabilities (permission prompts, GPS fix,
// SMS inbox, SMS send, call placement) as JSON endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient constructs a device bridge client.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bridge: %s %s unexpected status %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// RequestPermission asks the device to prompt the user for one grant. The
// call blocks until the user decides; there is no timeout beyond the host UI.
func (c *Client) RequestPermission(ctx context.Context, kind PermissionKind) (bool, error) {
	var resp struct {
		Granted bool `json:"granted"`
	}
	err := c.do(ctx, http.MethodPost, "/permissions/request", map[string]string{"kind": string(kind)}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Granted, nil
}

// CurrentPosition requests a single GPS fix from the device.
func (c *Client) CurrentPosition(ctx context.Context, highAccuracy bool, timeout, maxAge time.Duration) (models.Coordinates, error) {
	payload := map[string]interface{}{
		"high_accuracy": highAccuracy,
		"timeout_ms":    timeout.Milliseconds(),
		"max_age_ms":    maxAge.Milliseconds(),
	}
	var coords models.Coordinates
	ctx, cancel := context.WithTimeout(ctx, timeout+2*time.Second)
	defer cancel()
	if err := c.do(ctx, http.MethodPost, "/location/current", payload, &coords); err != nil {
		return models.Coordinates{}, err
	}
	return coords, nil
}

// ListInbox returns up to maxCount messages from the device SMS inbox.
func (c *Client) ListInbox(ctx context.Context, maxCount int) ([]models.InboxMessage, error) {
	var resp struct {
		Messages []models.InboxMessage `json:"messages"`
	}
	path := fmt.Sprintf("/sms/inbox?max_count=%d", maxCount)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// SendText sends an SMS from the device SIM.
func (c *Client) SendText(ctx context.Context, phone, bodyText string) error {
	payload := map[string]string{"phone": phone, "body": bodyText}
	return c.do(ctx, http.MethodPost, "/sms/send", payload, nil)
}

// PlaceCall dials a number from the device.
func (c *Client) PlaceCall(ctx context.Context, phone string) error {
	payload := map[string]string{"phone": phone}
	return c.do(ctx, http.MethodPost, "/call/place", payload, nil)
}
