package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LunchAPIClient talks to the lunch bot HTTP API.
type LunchAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewLunchAPIClient(baseURL string) *LunchAPIClient {
	return &LunchAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends a JSON request and decodes the JSON reply into out.
func (c *LunchAPIClient) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("lunch API error %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("lunch API error %d: %s", resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type apiRestaurant struct {
	Name        string `json:"name"`
	Genre       string `json:"genre,omitempty"`
	Address     string `json:"address,omitempty"`
	URL         string `json:"url,omitempty"`
	OrderURL    string `json:"order_url,omitempty"`
	Description string `json:"description,omitempty"`
}

type apiRecommendation struct {
	Restaurant apiRestaurant `json:"restaurant"`
	Note       string        `json:"note"`
	SelectedBy string        `json:"selected_by"`
	SessionID  string        `json:"session_id"`
}

type apiOrder struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	MenuItem string `json:"menu_item"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

type apiSession struct {
	ID         string        `json:"id"`
	Restaurant apiRestaurant `json:"restaurant"`
	IsActive   bool          `json:"is_active"`
	Orders     []apiOrder    `json:"orders"`
	Summary    string        `json:"summary"`
}

func (c *LunchAPIClient) Recommend(ctx context.Context, date string, manual bool) (apiRecommendation, error) {
	var resp struct {
		Recommendation apiRecommendation `json:"recommendation"`
	}
	endpoint := "/api/lunch"
	var body interface{}
	if manual {
		endpoint = "/api/lunch/manual"
	} else if date != "" {
		body = map[string]string{"date": date}
	}
	err := c.do(ctx, http.MethodPost, endpoint, body, &resp)
	return resp.Recommendation, err
}

func (c *LunchAPIClient) ActiveSession(ctx context.Context) (*apiSession, bool, error) {
	var resp struct {
		ActiveSession *apiSession `json:"active_session"`
		IntakeOpen    bool        `json:"intake_open"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &resp); err != nil {
		return nil, false, err
	}
	return resp.ActiveSession, resp.IntakeOpen, nil
}

func (c *LunchAPIClient) AddOrder(ctx context.Context, sessionID string, p AddOrderParams) (apiOrder, error) {
	var resp struct {
		Order apiOrder `json:"order"`
	}
	err := c.do(ctx, http.MethodPost, "/api/orders", map[string]interface{}{
		"action":     "addOrder",
		"session_id": sessionID,
		"user_id":    p.UserID,
		"user_name":  p.UserName,
		"menu_item":  p.MenuItem,
		"quantity":   p.Quantity,
		"notes":      p.Notes,
	}, &resp)
	return resp.Order, err
}

func (c *LunchAPIClient) CollectOrders(ctx context.Context) (apiSession, error) {
	var resp struct {
		Session apiSession `json:"session"`
	}
	err := c.do(ctx, http.MethodPost, "/api/collect-orders", nil, &resp)
	return resp.Session, err
}

func (c *LunchAPIClient) Analysis(ctx context.Context, date string) (string, error) {
	var resp struct {
		Report string `json:"report"`
	}
	endpoint := "/api/selection-analysis"
	if date != "" {
		endpoint += "?date=" + date
	}
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp.Report, err
}

// Raw fetches endpoint and returns the reply as indented JSON.
func (c *LunchAPIClient) Raw(ctx context.Context, method, endpoint string, body interface{}) (string, error) {
	var out map[string]interface{}
	if err := c.do(ctx, method, endpoint, body, &out); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format response: %w", err)
	}
	return string(b), nil
}
