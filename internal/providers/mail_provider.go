package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// MailProvider sends templated messages through the external transactional
// mail API. Delivery is best-effort; callers log failures and move on.
type MailProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewMailProvider creates a new mail provider from the environment
func NewMailProvider() *MailProvider {
	baseURL := os.Getenv("MAIL_API_URL")
	if baseURL == "" {
		baseURL = "https://api.mail.icems.local/v1" // Default
	}
	apiKey := os.Getenv("MAIL_API_KEY")

	return &MailProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// MailSendReq is the outbound message payload
type MailSendReq struct {
	To       string            `json:"to"`
	ToName   string            `json:"to_name"`
	Template string            `json:"template"`
	Fields   map[string]string `json:"fields"`
}

type mailSendResp struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// Send posts one message to the mail API
func (p *MailProvider) Send(ctx context.Context, req *MailSendReq) error {
	if req.To == "" {
		return fmt.Errorf("recipient cannot be empty")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("mail API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, string(data))
	}

	var result mailSendResp
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode mail response: %w", err)
	}

	return nil
}
