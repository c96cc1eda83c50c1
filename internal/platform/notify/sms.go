package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	platformhttp "auth_backend/internal/platform/http"
)

const (
	defaultSMSBaseURL = "https://www.smslocal.com/dev/bulkV2"
	defaultSMSTimeout = 15 * time.Second
)

// SMSLocalClient sends text messages through the SMS Local bulk API.
type SMSLocalClient struct {
	APIKey        string
	BaseURL       string
	Sender        string
	DefaultRegion string
	HTTPClient    *http.Client
}

// NewSMSLocalClient returns a client for the given API key. Empty baseURL and
// region select the public endpoint and "VN".
func NewSMSLocalClient(apiKey, baseURL, sender, region string) *SMSLocalClient {
	if baseURL == "" {
		baseURL = defaultSMSBaseURL
	}
	if region == "" {
		region = "VN"
	}
	return &SMSLocalClient{
		APIKey:        apiKey,
		BaseURL:       baseURL,
		Sender:        sender,
		DefaultRegion: region,
		HTTPClient:    platformhttp.NewHTTPClient(defaultSMSTimeout),
	}
}

// Normalize converts a locally formatted number into the digits-only
// international form the gateway expects (E.164 without the leading '+').
func (c *SMSLocalClient) Normalize(phone string) (string, error) {
	num, err := phonenumbers.Parse(phone, c.DefaultRegion)
	if err != nil {
		return "", fmt.Errorf("sms: parse %q: %w", phone, err)
	}
	return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+"), nil
}

// Send delivers text to phone. The message content is never logged.
func (c *SMSLocalClient) Send(ctx context.Context, phone, text string) error {
	if c.APIKey == "" {
		return fmt.Errorf("sms: API key not configured")
	}
	number, err := c.Normalize(phone)
	if err != nil {
		return err
	}

	body := map[string]any{
		"route":   "q",
		"numbers": number,
		"message": text,
	}
	if c.Sender != "" {
		body["sender_id"] = c.Sender
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sms: request failed status=%d body=%s", resp.StatusCode, string(b))
	}
	return nil
}
