package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// SMSService sends texts through the Mobizon gateway. It is used as the text
// channel when the device SIM cannot send (bridge offline, no SMS permission
// on the handset plan).
type SMSService struct {
	APIKey     string
	HTTPClient *http.Client
}

const mobizonEndpoint = "https://api.mobizon.kz/service/message/sendsmsmessage"

// SendText delivers one SMS via the gateway.
func (s *SMSService) SendText(ctx context.Context, phone, message string) error {
	data := url.Values{}
	data.Set("apiKey", s.APIKey)
	data.Set("recipient", phone)
	data.Set("text", message)

	httpClient := s.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mobizonEndpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms: request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sms: read response failed: %v", err)
	}

	var result struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("sms: parse response failed: %v", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("sms: mobizon error %s (code %d)", result.Message, result.Code)
	}
	return nil
}
