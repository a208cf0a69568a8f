// Package sms dispatches emergency alert messages through the Fast2SMS
// bulk API. Delivery failure is never fatal to the caller: results carry
// per-recipient outcomes and the caller logs and moves on.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DeliveryResult reports the outcome for a single recipient.
type DeliveryResult struct {
	Recipient string `json:"recipient"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

// Dispatcher sends one message to a set of phone numbers.
type Dispatcher interface {
	Send(ctx context.Context, numbers []string, message string) []DeliveryResult
}

// Fast2SMSClient talks to the Fast2SMS bulk endpoint. The zero timeout
// defaults to 10s.
type Fast2SMSClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

const defaultBaseURL = "https://www.fast2sms.com/dev/bulkV2"

func NewFast2SMSClient(apiKey string, logger zerolog.Logger) *Fast2SMSClient {
	return &Fast2SMSClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Fast2SMSClient) SetBaseURL(url string) { c.baseURL = url }

type bulkRequest struct {
	Route   string `json:"route"`
	Message string `json:"message"`
	Flash   int    `json:"flash"`
	Numbers string `json:"numbers"`
}

type bulkResponse struct {
	Return  bool   `json:"return"`
	Message any    `json:"message"`
	Request string `json:"request_id"`
}

// Send delivers one bulk message. The provider takes all numbers in a
// single call, so every recipient shares the call's outcome.
func (c *Fast2SMSClient) Send(ctx context.Context, numbers []string, message string) []DeliveryResult {
	err := c.send(ctx, numbers, message)
	results := make([]DeliveryResult, 0, len(numbers))
	for _, n := range numbers {
		r := DeliveryResult{Recipient: n, Delivered: err == nil}
		if err != nil {
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	if err != nil {
		c.logger.Error().Err(err).Strs("numbers", numbers).Msg("sms dispatch failed")
	} else {
		c.logger.Info().Strs("numbers", numbers).Msg("sms dispatched")
	}
	return results
}

func (c *Fast2SMSClient) send(ctx context.Context, numbers []string, message string) error {
	if len(numbers) == 0 {
		return fmt.Errorf("no recipients")
	}
	if c.apiKey == "" {
		return fmt.Errorf("sms api key not configured")
	}

	payload, err := json.Marshal(bulkRequest{
		Route:   "q",
		Message: message,
		Flash:   0,
		Numbers: strings.Join(numbers, ","),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 300 {
		return fmt.Errorf("fast2sms returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed bulkResponse
	if err := json.Unmarshal(body, &parsed); err == nil && !parsed.Return {
		return fmt.Errorf("fast2sms rejected request: %v", parsed.Message)
	}
	return nil
}

// Nop is a Dispatcher that drops every message. Used when no API key is
// configured and in tests.
type Nop struct{}

func (Nop) Send(_ context.Context, numbers []string, _ string) []DeliveryResult {
	results := make([]DeliveryResult, 0, len(numbers))
	for _, n := range numbers {
		results = append(results, DeliveryResult{Recipient: n, Delivered: false, Error: "sms disabled"})
	}
	return results
}
