package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// APIClient handles communication with the ClubWheelBot Core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decodeAPIError extracts the error message from a non-2xx response body
func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}
	return fmt.Errorf("API error: %s", body.Error)
}

// RequestSpins spends spin credits on a batch of wheel spins
func (c *APIClient) RequestSpins(userID, username string, batchSize int) (*domain.SpinBatchResult, error) {
	req := map[string]interface{}{
		"user_id":    userID,
		"username":   username,
		"batch_size": batchSize,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/spin/request", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var result domain.SpinBatchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode spin result: %w", err)
	}

	return &result, nil
}

// GetAccount fetches a member's spin account
func (c *APIClient) GetAccount(userID string) (*domain.SpinAccount, error) {
	path := "/api/v1/spin/account?user_id=" + url.QueryEscape(userID)

	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var account domain.SpinAccount
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}

	return &account, nil
}

// GetPending fetches a member's rewards awaiting operator approval
func (c *APIClient) GetPending(userID string) (*domain.PendingBatch, error) {
	path := "/api/v1/spin/pending?user_id=" + url.QueryEscape(userID)

	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var pending domain.PendingBatch
	if err := json.NewDecoder(resp.Body).Decode(&pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending batch: %w", err)
	}

	return &pending, nil
}

// TransferResult reports a stored transfer request awaiting operator review
type TransferResult struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// RequestDeposit submits a deposit for operator review
func (c *APIClient) RequestDeposit(userID, username string, amount float64) (*TransferResult, error) {
	return c.requestTransfer("/api/v1/deposit", userID, username, amount)
}

// RequestWithdrawal submits a withdrawal for operator review
func (c *APIClient) RequestWithdrawal(userID, username string, amount float64) (*TransferResult, error) {
	return c.requestTransfer("/api/v1/withdrawal", userID, username, amount)
}

func (c *APIClient) requestTransfer(path, userID, username string, amount float64) (*TransferResult, error) {
	req := map[string]interface{}{
		"user_id":  userID,
		"username": username,
		"amount":   amount,
	}

	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var result TransferResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode transfer result: %w", err)
	}

	return &result, nil
}

// GetDepositCredits previews the spin credits a deposit amount would grant
func (c *APIClient) GetDepositCredits(amount float64) (int, error) {
	path := "/api/v1/deposit/credits?amount=" + url.QueryEscape(strconv.FormatFloat(amount, 'f', -1, 64))

	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, decodeAPIError(resp)
	}

	var result struct {
		Amount  float64 `json:"amount"`
		Credits int     `json:"credits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode credits: %w", err)
	}

	return result.Credits, nil
}

// ResolveApproval applies an operator decision to a pending request
func (c *APIClient) ResolveApproval(requestID uuid.UUID, operatorID string, decision domain.ApprovalDecision) (*domain.ResolutionResult, error) {
	req := map[string]string{
		"request_id":  requestID.String(),
		"operator_id": operatorID,
		"decision":    string(decision),
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/approval/resolve", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var result domain.ResolutionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode resolution: %w", err)
	}

	return &result, nil
}
