package payment

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"roomdesk/internal/adapters/observability"
	"roomdesk/internal/domain"
)

// Client charges stays against a remote payment gateway over HTTP. Requests
// are rate limited client-side and retried on 429 and transient 5xx,
// honoring Retry-After when provided. A 402 from the gateway is a clean
// decline, not an error.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func NewClient(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("payment gateway base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type chargeRequest struct {
	RoomNumber int    `json:"room_number"`
	Category   string `json:"category"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Amount     int64  `json:"amount"`
}

func (c *Client) Authorize(ctx context.Context, room domain.Room, checkIn, checkOut time.Time, amount int64) (bool, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return false, err
	}

	body, err := json.Marshal(chargeRequest{
		RoomNumber: room.Number,
		Category:   string(room.Category),
		CheckIn:    checkIn.Format(domain.DateLayout),
		CheckOut:   checkOut.Format(domain.DateLayout),
		Amount:     amount,
	})
	if err != nil {
		return false, err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/charges", bytes.NewReader(body))
		if err != nil {
			return false, err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return false, lastErr
		}
		observability.ObservePayment("http", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return true, nil

		case http.StatusPaymentRequired:
			// gateway refused the charge
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return false, nil

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("payment gateway %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return false, fmt.Errorf("payment gateway status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return false, lastErr
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

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent.
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

// backoff doubles each attempt (200ms, 400ms, 800ms...) with up to +50%
// jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
