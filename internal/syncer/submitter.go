package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// HTTPSubmitter posts captured orders to the backend. Transport failures
// and server-side errors map to ErrBackendUnavailable: the terminal being
// offline must never burn an order's retry attempts. Only a definitive
// backend rejection (4xx) surfaces as a plain error. The call runs behind
// a circuit breaker: when the backend keeps failing, the breaker opens and
// submits short-circuit instead of piling up timeouts on every drain cycle.
type HTTPSubmitter struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewHTTPSubmitter(url string) *HTTPSubmitter {
	settings := gobreaker.Settings{
		Name:    "order-sync",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
	return &HTTPSubmitter{
		url:     url,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, order *domain.PendingOrder) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.post(ctx, order)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return err
}

func (s *HTTPSubmitter) post(ctx context.Context, order *domain.PendingOrder) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// connection refused, DNS failure, timeout
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: order submit returned status %d", ErrBackendUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("order submit rejected with status %d", resp.StatusCode)
	}
	return nil
}
