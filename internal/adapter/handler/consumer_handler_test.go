package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trichyfresh/connect/internal/adapter/auth"
	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/core/service"
)

type stubOrderRepo struct {
	receipt *domain.Receipt
	err     error
}

func (s *stubOrderRepo) CheckoutCart(ctx context.Context, consumerID, cartID int64) (*domain.Receipt, error) {
	return s.receipt, s.err
}

func (s *stubOrderRepo) ListOrders(ctx context.Context, consumerID int64) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) GetOrder(ctx context.Context, consumerID, orderID int64) (*domain.Order, []domain.OrderItem, error) {
	return nil, nil, domain.ErrOrderNotFound
}

type stubCacheRepo struct {
	held map[string]bool
}

func (s *stubCacheRepo) SetCheckoutGuard(ctx context.Context, key string) (bool, error) {
	if s.held[key] {
		return false, nil
	}
	if s.held == nil {
		s.held = map[string]bool{}
	}
	s.held[key] = true
	return true, nil
}

func (s *stubCacheRepo) ClearCheckoutGuard(ctx context.Context, key string) error {
	delete(s.held, key)
	return nil
}

func (s *stubCacheRepo) GetLookups(ctx context.Context, key string) ([]domain.Lookup, bool, error) {
	return nil, false, nil
}

func (s *stubCacheRepo) SetLookups(ctx context.Context, key string, values []domain.Lookup) error {
	return nil
}

type stubCartRepo struct {
	stock map[int64]int
}

func (s *stubCartRepo) GetProductStock(ctx context.Context, productID int64) (int, error) {
	stock, ok := s.stock[productID]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	return stock, nil
}

func (s *stubCartRepo) ListLines(ctx context.Context, consumerID int64) ([]domain.CartLine, error) {
	return nil, nil
}

func (s *stubCartRepo) GetLine(ctx context.Context, consumerID, cartItemID int64) (*domain.CartLine, error) {
	return nil, domain.ErrCartItemNotFound
}

func (s *stubCartRepo) UpsertLine(ctx context.Context, consumerID, productID int64, quantity int) (*domain.CartItem, bool, error) {
	return &domain.CartItem{ID: 1, ProductID: productID, Quantity: quantity}, true, nil
}

func (s *stubCartRepo) SetLineQuantity(ctx context.Context, cartItemID int64, quantity int) (*domain.CartItem, error) {
	return nil, domain.ErrCartItemNotFound
}

func (s *stubCartRepo) DeleteLine(ctx context.Context, cartItemID int64) error {
	return domain.ErrCartItemNotFound
}

func newTestRouter(orders *stubOrderRepo, cache *stubCacheRepo, carts *stubCartRepo) (http.Handler, *auth.JWTManager) {
	tokens := auth.NewJWTManager("handler-test-secret", time.Hour)

	consumerH := NewConsumerHandler(
		service.NewCatalogService(nil, nil),
		service.NewCartService(carts),
		service.NewOrderService(orders, cache),
	)
	router := NewRouter(
		NewAuthHandler(nil),
		consumerH,
		NewProducerHandler(nil, nil, nil),
		NewMiddleware(tokens),
	)
	return router, tokens
}

func bearer(t *testing.T, tokens *auth.JWTManager, u *domain.User) string {
	t.Helper()
	token, err := tokens.Issue(u)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(router http.Handler, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCheckout_Success(t *testing.T) {
	orders := &stubOrderRepo{
		receipt: &domain.Receipt{OrderID: 99, TotalAmount: decimal.RequireFromString("23.50")},
	}
	router, tokens := newTestRouter(orders, &stubCacheRepo{}, &stubCartRepo{})
	header := bearer(t, tokens, &domain.User{ID: 7, Role: domain.RoleConsumer})

	rec := doRequest(router, http.MethodPost, "/api/consumer/cart/checkout", header, map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success     bool            `json:"success"`
		OrderID     int64           `json:"order_id"`
		TotalAmount decimal.Decimal `json:"total_amount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(99), resp.OrderID)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("23.50")))
}

func TestCheckout_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name       string
		repoErr    error
		wantStatus int
		wantError  string
	}{
		{"no cart", domain.ErrCartNotFound, http.StatusBadRequest, "no cart found"},
		{"empty cart", domain.ErrEmptyCart, http.StatusBadRequest, "cart is empty"},
		{"insufficient stock", &domain.InsufficientStockError{ProductID: 7}, http.StatusBadRequest, "insufficient stock for product_id=7"},
		{"storage failure", context.DeadlineExceeded, http.StatusInternalServerError, "checkout failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, tokens := newTestRouter(&stubOrderRepo{err: tc.repoErr}, &stubCacheRepo{}, &stubCartRepo{})
			header := bearer(t, tokens, &domain.User{ID: 7, Role: domain.RoleConsumer})

			rec := doRequest(router, http.MethodPost, "/api/consumer/cart/checkout", header, nil)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantError, resp["error"])
		})
	}
}

func TestCheckout_AlreadyInProgress(t *testing.T) {
	cache := &stubCacheRepo{held: map[string]bool{"consumer:7": true}}
	router, tokens := newTestRouter(&stubOrderRepo{}, cache, &stubCartRepo{})
	header := bearer(t, tokens, &domain.User{ID: 7, Role: domain.RoleConsumer})

	rec := doRequest(router, http.MethodPost, "/api/consumer/cart/checkout", header, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "checkout already in progress")
}

func TestAddCartItem(t *testing.T) {
	carts := &stubCartRepo{stock: map[int64]int{5: 10}}
	router, tokens := newTestRouter(&stubOrderRepo{}, &stubCacheRepo{}, carts)
	header := bearer(t, tokens, &domain.User{ID: 7, Role: domain.RoleConsumer})

	t.Run("created", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/consumer/cart/items", header,
			map[string]any{"product_id": 5, "quantity": 2})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("missing quantity", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/consumer/cart/items", header,
			map[string]any{"product_id": 5})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("over stock", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/consumer/cart/items", header,
			map[string]any{"product_id": 5, "quantity": 11})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "insufficient stock")
	})

	t.Run("unknown product", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/consumer/cart/items", header,
			map[string]any{"product_id": 999, "quantity": 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAuthGate(t *testing.T) {
	router, tokens := newTestRouter(&stubOrderRepo{}, &stubCacheRepo{}, &stubCartRepo{})

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/consumer/cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/consumer/cart", "Bearer not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		header := bearer(t, tokens, &domain.User{ID: 3, Role: domain.RoleProducer})
		rec := doRequest(router, http.MethodGet, "/api/consumer/cart", header, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "access allowed for consumers only")
	})
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(&stubOrderRepo{}, &stubCacheRepo{}, &stubCartRepo{})
	rec := doRequest(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
