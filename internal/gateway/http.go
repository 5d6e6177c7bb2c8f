package gateway

import (
	"adventcal/internal/model"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// HTTPConfig configures the GameLayer REST client
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	GameID     string
	ClientID   string
	Account    string
	EventYear  int
	EventMonth int
	Timeout    time.Duration
	MaxRetries int
	RPS        float64
	Burst      int
	// RetryBase is the first backoff after a 429; it doubles per attempt.
	RetryBase time.Duration
}

// HTTPGateway talks to the GameLayer REST API
type HTTPGateway struct {
	cfg        HTTPConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPGateway creates a GameLayer API client
func NewHTTPGateway(cfg HTTPConfig) *HTTPGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}
	return &HTTPGateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
	}
}

// errorBody is the error shape GameLayer answers with
type errorBody struct {
	Message string `json:"message"`
}

// doRequest performs a JSON request with retries on 429 and transport errors
func (g *HTTPGateway) doRequest(ctx context.Context, method, path string, in, out interface{}) error {
	var payload []byte
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt < g.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[gateway] retry %d/%d for %s %s", attempt, g.cfg.MaxRetries, method, path)
		}
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, g.cfg.BaseURL+path, body)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("api-key", g.cfg.APIKey)
		if g.cfg.GameID != "" {
			req.Header.Set("X-Game-ID", g.cfg.GameID)
		}
		if g.cfg.ClientID != "" {
			req.Header.Set("X-Client-ID", g.cfg.ClientID)
		}

		resp, err := g.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[gateway] %s %s failed (attempt %d): %v", method, path, attempt+1, err)
			lastErr = err
			continue
		}
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = &StatusError{StatusCode: resp.StatusCode, Message: "rate limited"}
			if attempt == g.cfg.MaxRetries-1 {
				break
			}
			backoff := time.Duration(math.Pow(2, float64(attempt))) * g.cfg.RetryBase
			log.Printf("[gateway] rate limited on %s %s, retrying in %v", method, path, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		if resp.StatusCode >= 400 {
			var eb errorBody
			_ = json.Unmarshal(respBody, &eb)
			return &StatusError{StatusCode: resp.StatusCode, Message: eb.Message}
		}

		if out == nil || len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse %s %s response: %w", method, path, err)
		}
		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (g *HTTPGateway) GetClientConfig(ctx context.Context) (*model.ClientConfig, error) {
	var cfg model.ClientConfig
	path := "/clients/" + url.PathEscape(g.cfg.ClientID) + "/config"
	if err := g.doRequest(ctx, http.MethodGet, path, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (g *HTTPGateway) GetCalendar(ctx context.Context) ([]model.CalendarDay, error) {
	var days []model.CalendarDay
	path := fmt.Sprintf("/calendar/%d/%d", g.cfg.EventYear, g.cfg.EventMonth)
	if err := g.doRequest(ctx, http.MethodGet, path, nil, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (g *HTTPGateway) GetLeaderboard(ctx context.Context, limit, offset int) (*model.LeaderboardPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	var page model.LeaderboardPage
	if err := g.doRequest(ctx, http.MethodGet, "/leaderboard?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *HTTPGateway) GetRewards(ctx context.Context) ([]model.Reward, error) {
	var rewards []model.Reward
	if err := g.doRequest(ctx, http.MethodGet, "/rewards", nil, &rewards); err != nil {
		return nil, err
	}
	return rewards, nil
}

func (g *HTTPGateway) GetTaskForDay(ctx context.Context, day int) (*model.TaskRecord, error) {
	var task model.TaskRecord
	if err := g.doRequest(ctx, http.MethodGet, fmt.Sprintf("/tasks/day/%d", day), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (g *HTTPGateway) SubmitTask(ctx context.Context, taskID string, submission model.Submission) (*model.TaskResult, error) {
	body := map[string]interface{}{"submission": submission}
	if submission.PlayerID != "" {
		body["player"] = submission.PlayerID
	}
	var result model.TaskResult
	path := "/tasks/" + url.PathEscape(taskID) + "/complete"
	if err := g.doRequest(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HTTPGateway) GetPlayer(ctx context.Context, playerID string) (*model.PlayerRecord, error) {
	var player model.PlayerRecord
	q := url.Values{}
	q.Set("account", g.cfg.Account)
	path := "/players/" + url.PathEscape(playerID) + "?" + q.Encode()
	if err := g.doRequest(ctx, http.MethodGet, path, nil, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (g *HTTPGateway) CreateOrUpdatePlayer(ctx context.Context, payload model.PlayerPayload) (*model.PlayerRecord, error) {
	if payload.Account == "" {
		payload.Account = g.cfg.Account
	}
	method, path := http.MethodPost, "/players"
	if payload.ID != "" {
		method, path = http.MethodPatch, "/players/"+url.PathEscape(payload.ID)
	}
	var player model.PlayerRecord
	if err := g.doRequest(ctx, method, path, payload, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (g *HTTPGateway) PurchaseReward(ctx context.Context, playerID, rewardID string) (*model.PurchaseResult, error) {
	body := map[string]string{"rewardId": rewardID, "player": playerID}
	var result model.PurchaseResult
	if err := g.doRequest(ctx, http.MethodPost, "/rewards/purchase", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HTTPGateway) TrackEvent(ctx context.Context, name string, data map[string]interface{}) error {
	body := map[string]interface{}{
		"event":     name,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	return g.doRequest(ctx, http.MethodPost, "/analytics/track", body, nil)
}
