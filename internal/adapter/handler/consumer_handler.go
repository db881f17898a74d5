package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/core/service"
)

// ConsumerHandler serves the buyer-facing API: feed, favorites, cart and
// checkout.
type ConsumerHandler struct {
	catalog *service.CatalogService
	cart    *service.CartService
	orders  *service.OrderService
}

func NewConsumerHandler(catalog *service.CatalogService, cart *service.CartService, orders *service.OrderService) *ConsumerHandler {
	return &ConsumerHandler{catalog: catalog, cart: cart, orders: orders}
}

func (h *ConsumerHandler) Feed(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	categoryID, _ := strconv.ParseInt(q.Get("category_id"), 10, 64)
	expiryTypeID, _ := strconv.ParseInt(q.Get("expiry_type_id"), 10, 64)
	talukID, _ := strconv.ParseInt(q.Get("taluk_id"), 10, 64)

	results, page, limit, err := h.catalog.Feed(r.Context(), id.UserID, id.TalukID, service.FeedQuery{
		Query:        q.Get("q"),
		CategoryID:   categoryID,
		ExpiryTypeID: expiryTypeID,
		TalukID:      talukID,
		IncludeOther: q.Get("include_other") == "true",
		Page:         page,
		Limit:        limit,
		Sort:         q.Get("sort"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if results == nil {
		results = []domain.ProductView{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"page": page, "limit": limit, "results": results})
}

func (h *ConsumerHandler) Product(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.catalog.Product(r.Context(), id.UserID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *ConsumerHandler) ProducerContact(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	contact, err := h.catalog.ProducerContact(r.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ConsumerHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	favs, err := h.catalog.Favorites(r.Context(), id.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if favs == nil {
		favs = []domain.FavoriteProduct{}
	}
	writeJSON(w, http.StatusOK, favs)
}

func (h *ConsumerHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())

	var req struct {
		ProductID int64 `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID <= 0 {
		writeError(w, http.StatusBadRequest, "product_id required")
		return
	}

	err := h.catalog.AddFavorite(r.Context(), id.UserID, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ConsumerHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	productID, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}

	err := h.catalog.RemoveFavorite(r.Context(), id.UserID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrFavoriteNotFound) {
			writeError(w, http.StatusNotFound, "not found in favorites")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ConsumerHandler) Cart(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	lines, err := h.cart.List(r.Context(), id.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	writeJSON(w, http.StatusOK, lines)
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *ConsumerHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID <= 0 || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "product_id and positive integer quantity required")
		return
	}

	item, created, err := h.cart.AddItem(r.Context(), id.UserID, req.ProductID, req.Quantity)
	if err != nil {
		var insufficient *domain.InsufficientStockError
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.As(err, &insufficient):
			writeError(w, http.StatusBadRequest, "insufficient stock")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, item)
}

func (h *ConsumerHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	cartItemID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil || *req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity must be non-negative integer")
		return
	}

	item, err := h.cart.UpdateItem(r.Context(), id.UserID, cartItemID, *req.Quantity)
	if err != nil {
		var insufficient *domain.InsufficientStockError
		switch {
		case errors.Is(err, domain.ErrCartItemNotFound):
			writeError(w, http.StatusNotFound, "cart item not found")
		case errors.As(err, &insufficient):
			writeError(w, http.StatusBadRequest, "insufficient product stock")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	if item == nil {
		// quantity 0 removed the line
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ConsumerHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	cartItemID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.cart.RemoveItem(r.Context(), id.UserID, cartItemID)
	if err != nil {
		if errors.Is(err, domain.ErrCartItemNotFound) {
			writeError(w, http.StatusNotFound, "cart item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ConsumerHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())

	// body is optional; an explicit cart_id overrides the latest cart
	var req struct {
		CartID int64 `json:"cart_id"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	receipt, err := h.orders.Checkout(r.Context(), id.UserID, req.CartID)
	if err != nil {
		var insufficient *domain.InsufficientStockError
		switch {
		case errors.Is(err, domain.ErrCartNotFound):
			writeError(w, http.StatusBadRequest, "no cart found")
		case errors.Is(err, domain.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.As(err, &insufficient):
			writeError(w, http.StatusBadRequest, insufficient.Error())
		case errors.Is(err, domain.ErrCheckoutInProgress):
			writeError(w, http.StatusConflict, "checkout already in progress")
		default:
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"order_id":     receipt.OrderID,
		"total_amount": receipt.TotalAmount,
	})
}

func (h *ConsumerHandler) Orders(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	orders, err := h.orders.History(r.Context(), id.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *ConsumerHandler) Order(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, items, err := h.orders.Order(r.Context(), id.UserID, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []domain.OrderItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order, "items": items})
}
