package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fjod/go_pos/internal/domain"
)

// HTTPSource fetches the catalog from the backend REST API.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSource) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.getJSON(ctx, "/api/pos/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *HTTPSource) Coupons(ctx context.Context) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	if err := s.getJSON(ctx, "/api/pos/coupons", &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}

// StaticSource serves fixed lists, for tests and for terminals seeded from
// a file instead of the network.
type StaticSource struct {
	ProductList []domain.Product
	CouponList  []domain.Coupon
}

func (s *StaticSource) Products(_ context.Context) ([]domain.Product, error) {
	return s.ProductList, nil
}

func (s *StaticSource) Coupons(_ context.Context) ([]domain.Coupon, error) {
	return s.CouponList, nil
}
