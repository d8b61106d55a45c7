package mapbox

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travelers/internal/adapters/observability"
)

// Client probes the Mapbox API at startup to confirm the configured token
// actually works. The probe is advisory: a failure degrades the map to the
// legend-only fallback, it never stops the service.
type Client struct {
	base  string
	token string
	hc    *http.Client
	rl    *rate.Limiter
}

func New(base, token string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:  base,
		token: token,
		hc:    &http.Client{Timeout: 10 * time.Second},
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// VerifyToken checks the token against the styles endpoint the renderer
// uses. Returns (false, reason) when the remote rejects it.
func (c *Client) VerifyToken(ctx context.Context) (bool, string, error) {
	if ok, reason := Capability(c.token); !ok {
		return false, reason, nil
	}
	url := fmt.Sprintf("%s/styles/v1/mapbox/light-v11?access_token=%s", c.base, c.token)
	status, err := c.get(ctx, url)
	if err != nil {
		return false, "", err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return false, "map access token rejected by provider", nil
	}
	return true, "", nil
}

// get performs a GET with client-side rate limiting and retries on 429 and
// transient 5xx, honoring Retry-After when provided. Returns the final
// status code; the body is discarded.
func (c *Client) get(ctx context.Context, url string) (int, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return 0, err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return 0, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "travelers/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return 0, lastErr
		}
		observability.ObserveExternal("mapbox", "styles", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			drain(resp)
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("mapbox %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return resp.StatusCode, lastErr
		default:
			drain(resp)
			return resp.StatusCode, nil
		}
	}
	return 0, lastErr
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter from crypto/rand to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
