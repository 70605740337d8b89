package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type Config struct {
	APIKey  string
	APIHost string
	BaseURL string
	Timeout time.Duration
	// Now overrides the clock used for demo payloads; defaults to time.Now.
	Now func() time.Time
}

// Client wraps the RapidAPI metadata provider. When unconfigured it serves
// deterministic demo payloads instead of calling out.
type Client struct {
	apiKey  string
	apiHost string
	baseURL string
	httpc   *http.Client
	now     func() time.Time
}

// compile-time check: *Client must satisfy port.MetadataResolver
var _ port.MetadataResolver = (*Client)(nil)

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		baseURL: cfg.BaseURL,
		httpc:   &http.Client{Timeout: timeout},
		now:     now,
	}
}

// Configured reports whether real provider calls are possible. The key
// length check filters out placeholder values left in .env files.
func (c *Client) Configured() bool {
	return len(c.apiKey) > 10 && c.apiHost != "" && c.baseURL != ""
}

// envelope is the provider's response wrapper: code 0 means success.
type envelope struct {
	Code int                 `json:"code"`
	Msg  string              `json:"msg"`
	Data model.VideoMetadata `json:"data"`
}

func (c *Client) Resolve(ctx context.Context, rawURL string) (model.VideoMetadata, error) {
	canonical, err := CanonicalURL(rawURL)
	if err != nil {
		return model.VideoMetadata{}, err
	}

	if !c.Configured() {
		logger.Debugf(ctx, "provider not configured, serving demo payload for %s", canonical)
		return DemoMetadata(canonical, c.now()), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/analysis?url="+url.QueryEscape(canonical)+"&hd=1080", nil)
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("building provider request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", c.apiHost)
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("User-Agent", "TikTokDownloader/1.0")

	resp, err := c.httpc.Do(req)
	if err != nil {
		var nerr net.Error
		if (errors.As(err, &nerr) && nerr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
			return model.VideoMetadata{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		// Host unreachable, DNS failure, connection refused: non-fatal.
		logger.Warnf(ctx, "provider unreachable (%v), serving demo payload for %s", err, canonical)
		return DemoMetadata(canonical, c.now()), nil
	}
	defer func() {
		if cErr := resp.Body.Close(); cErr != nil {
			logger.Warnf(ctx, "failed to close provider response body: %v", cErr)
		}
	}()

	if resp.StatusCode >= 500 {
		logger.Warnf(ctx, "provider returned %d, serving demo payload for %s", resp.StatusCode, canonical)
		return DemoMetadata(canonical, c.now()), nil
	}
	if resp.StatusCode >= 400 {
		return model.VideoMetadata{}, c.rejectionError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return model.VideoMetadata{}, fmt.Errorf("decoding provider response: %w", err)
	}
	if env.Code != 0 {
		msg := env.Msg
		if msg == "" {
			msg = "failed to fetch video info"
		}
		return model.VideoMetadata{}, fmt.Errorf("provider rejected %q: %s", canonical, msg)
	}

	return env.Data, nil
}

func (c *Client) rejectionError(resp *http.Response) error {
	msg := providerMessage(resp.Body)

	var kind error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		kind = ErrBadRequest
	case http.StatusForbidden:
		kind = ErrForbidden
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusTooManyRequests:
		kind = ErrRateLimited
	default:
		return fmt.Errorf("provider error (%d): %s", resp.StatusCode, msg)
	}

	if msg == "" {
		return kind
	}
	return fmt.Errorf("%w: %s", kind, msg)
}

// providerMessage extracts the human-readable message from an error body,
// which may use either the "message" or "msg" key.
func providerMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var parsed struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return ""
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return parsed.Msg
}
