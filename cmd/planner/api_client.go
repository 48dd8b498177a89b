package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dom/hero-companion/internal/api/handlers"
	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/engine"
	"github.com/dom/hero-companion/internal/service"
	"golang.org/x/time/rate"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAPIClient creates a client that sends at most rps requests per second
func NewAPIClient(baseURL string, rps float64) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterUser creates a throwaway account and returns its access token
func (c *APIClient) RegisterUser(ctx context.Context, baseName string) (*User, string, error) {
	displayName := fmt.Sprintf("%s_%d", baseName, time.Now().UnixNano()%100000)

	body := map[string]string{
		"displayName": displayName,
		"password":    "plannerpassword123",
	}

	var result AuthResponse
	if err := c.do(ctx, "POST", "/auth/register", body, "", http.StatusOK, &result); err != nil {
		return nil, "", fmt.Errorf("register failed: %w", err)
	}
	return &result.User, result.AccessToken, nil
}

// GetProfile returns the stored profile, creating it on first use
func (c *APIClient) GetProfile(ctx context.Context, token string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.do(ctx, "GET", "/profile", nil, token, http.StatusOK, &profile); err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &profile, nil
}

// SaveProfile uploads a full player snapshot
func (c *APIClient) SaveProfile(ctx context.Context, token string, version int, data domain.UserData) (*domain.Profile, error) {
	body := handlers.SaveProfileRequest{Version: version, Data: &data}

	var profile domain.Profile
	if err := c.do(ctx, "PUT", "/profile", body, token, http.StatusOK, &profile); err != nil {
		return nil, fmt.Errorf("save profile failed: %w", err)
	}
	return &profile, nil
}

func (c *APIClient) Influence(ctx context.Context, token string) (*service.InfluenceSummary, error) {
	var summary service.InfluenceSummary
	if err := c.do(ctx, "GET", "/advisor/influence", nil, token, http.StatusOK, &summary); err != nil {
		return nil, fmt.Errorf("influence failed: %w", err)
	}
	return &summary, nil
}

func (c *APIClient) Upgrades(ctx context.Context, token string, limit int) ([]engine.UpgradeRecommendation, error) {
	var result handlers.UpgradesResponse
	path := fmt.Sprintf("/advisor/upgrades?limit=%d", limit)
	if err := c.do(ctx, "GET", path, nil, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("upgrades failed: %w", err)
	}
	return result.Recommendations, nil
}

func (c *APIClient) Resources(ctx context.Context, token string) (*engine.ResourcePlan, error) {
	var plan engine.ResourcePlan
	if err := c.do(ctx, "GET", "/advisor/resources", nil, token, http.StatusOK, &plan); err != nil {
		return nil, fmt.Errorf("resources failed: %w", err)
	}
	return &plan, nil
}

func (c *APIClient) Simulate(ctx context.Context, token string, days int, profile string) (*engine.SimulationResult, error) {
	var result engine.SimulationResult
	path := fmt.Sprintf("/advisor/simulate?days=%d", days)
	if profile != "" {
		path += "&profile=" + url.QueryEscape(profile)
	}
	if err := c.do(ctx, "GET", path, nil, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("simulate failed: %w", err)
	}
	return &result, nil
}

func (c *APIClient) EventStrategies(ctx context.Context, token string) ([]engine.EventStrategy, error) {
	var result handlers.StrategiesResponse
	if err := c.do(ctx, "GET", "/advisor/events", nil, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("event strategies failed: %w", err)
	}
	return result.Strategies, nil
}

// Events fetches the public event board
func (c *APIClient) Events(ctx context.Context) (*handlers.EventsResponse, error) {
	var result handlers.EventsResponse
	if err := c.do(ctx, "GET", "/events", nil, "", http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("events failed: %w", err)
	}
	return &result, nil
}

// do sends one request, waiting on the limiter first, and decodes the JSON reply into out
func (c *APIClient) do(ctx context.Context, method, path string, body interface{}, token string, wantStatus int, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(bytes.TrimSpace(bodyBytes)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
