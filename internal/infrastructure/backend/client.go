// Package backend implements the HTTP client for the club API: login,
// registration, balance, spins, and the public recent-wins feed.
package backend

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

	"github.com/fortunaclub/spinbot/internal/core/domain"
)

// Client talks JSON to the club backend. The auth token is passed per call;
// the client itself holds no user state.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type authResponse struct {
	Token string `json:"token"`
}

// Login authenticates an existing player. A 404 maps to
// domain.ErrNotRegistered so the caller can fall through to registration.
func (c *Client) Login(ctx context.Context, phone, code, referral string) (string, error) {
	body := map[string]string{"phone": phone, "code": code}
	if referral != "" {
		body["ref"] = referral
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &domain.APIError{StatusCode: http.StatusOK, Message: "login response without token", Kind: domain.ErrNotRegistered}
	}
	return resp.Token, nil
}

// Register creates a player and returns its first token.
func (c *Client) Register(ctx context.Context, phone, code, name, referral string) (string, error) {
	body := map[string]string{"phone": phone, "code": code, "name": name}
	if referral != "" {
		body["ref"] = referral
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/players/register", "", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &domain.APIError{StatusCode: http.StatusOK, Message: "register response without token", Kind: domain.ErrBackendUnavailable}
	}
	return resp.Token, nil
}

func (c *Client) Profile(ctx context.Context, token string) (domain.Profile, error) {
	var resp struct {
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		ReferralCode string `json:"referralCode"`
	}
	if err := c.do(ctx, http.MethodGet, "/players/me", token, nil, &resp); err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{Name: resp.Name, Phone: resp.Phone, ReferralCode: resp.ReferralCode}, nil
}

func (c *Client) UpdateName(ctx context.Context, token, name string) error {
	return c.do(ctx, http.MethodPatch, "/players/me", token, map[string]string{"name": name}, nil)
}

func (c *Client) Balance(ctx context.Context, token string) (int, error) {
	var resp struct {
		Balance int `json:"balance"`
	}
	if err := c.do(ctx, http.MethodGet, "/players/balance", token, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// Spin performs the paid roulette spin. Geofencing is validated server-side
// against the supplied coordinates.
func (c *Client) Spin(ctx context.Context, token string, lat, lon float64) (domain.SpinResult, error) {
	body := map[string]any{"latitude": lat, "longitude": lon}

	var resp struct {
		Prize *struct {
			Name string `json:"name"`
		} `json:"prize"`
		Spin *struct {
			Prize struct {
				Name string `json:"name"`
			} `json:"prize"`
		} `json:"spin"`
		NewBalance int `json:"newBalance"`
	}
	if err := c.do(ctx, http.MethodPost, "/players/spin", token, body, &resp); err != nil {
		return domain.SpinResult{}, err
	}

	// Older deployments nest the prize under "spin".
	name := ""
	switch {
	case resp.Prize != nil:
		name = resp.Prize.Name
	case resp.Spin != nil:
		name = resp.Spin.Prize.Name
	}
	return domain.SpinResult{PrizeName: name, NewBalance: resp.NewBalance}, nil
}

func (c *Client) Transactions(ctx context.Context, token string) ([]domain.Transaction, error) {
	var resp []struct {
		Type        string    `json:"type"`
		Amount      int       `json:"amount"`
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"createdAt"`
	}
	if err := c.do(ctx, http.MethodGet, "/players/transactions", token, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Transaction, 0, len(resp))
	for _, t := range resp {
		out = append(out, domain.Transaction{
			Type:        t.Type,
			Amount:      t.Amount,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}
	return out, nil
}

func (c *Client) Prizes(ctx context.Context, token string) ([]domain.Prize, error) {
	var resp []struct {
		Name      string    `json:"name"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"createdAt"`
	}
	if err := c.do(ctx, http.MethodGet, "/players/prizes", token, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Prize, 0, len(resp))
	for _, p := range resp {
		out = append(out, domain.Prize{Name: p.Name, Status: p.Status, WonAt: p.CreatedAt})
	}
	return out, nil
}

// RecentWins is the only unauthenticated endpoint.
func (c *Client) RecentWins(ctx context.Context) ([]domain.Win, error) {
	var resp []struct {
		MaskedPhone string `json:"maskedPhone"`
		PrizeName   string `json:"prizeName"`
	}
	if err := c.do(ctx, http.MethodGet, "/players/recent-wins", "", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Win, 0, len(resp))
	for _, w := range resp {
		out = append(out, domain.Win{MaskedPhone: w.MaskedPhone, PrizeName: w.PrizeName})
	}
	return out, nil
}

// errorEnvelope is the backend's canonical error body.
type errorEnvelope struct {
	Status            int    `json:"status"`
	Message           string `json:"message"`
	RetryAfterSeconds int    `json:"retryAfterSeconds"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.APIError{Message: err.Error(), Kind: domain.ErrBackendUnavailable}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &domain.APIError{StatusCode: resp.StatusCode, Message: err.Error(), Kind: domain.ErrBackendUnavailable}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env errorEnvelope
		_ = json.Unmarshal(raw, &env)
		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("path", path).
			Str("message", env.Message).
			Msg("backend error response")
		return &domain.APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			RetryAfter: time.Duration(env.RetryAfterSeconds) * time.Second,
			Kind:       mapStatus(resp.StatusCode),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.APIError{StatusCode: resp.StatusCode, Message: "malformed response body", Kind: domain.ErrBackendUnavailable}
	}
	return nil
}
