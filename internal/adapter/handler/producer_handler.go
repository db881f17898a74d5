package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/core/service"
)

// ProducerHandler serves the seller-facing API: lookups, product CRUD,
// order/favorite views, profile.
type ProducerHandler struct {
	producer *service.ProducerService
	lookups  *service.LookupService
	users    *service.UserService
}

func NewProducerHandler(producer *service.ProducerService, lookups *service.LookupService, users *service.UserService) *ProducerHandler {
	return &ProducerHandler{producer: producer, lookups: lookups, users: users}
}

func (h *ProducerHandler) lookupList(w http.ResponseWriter, values []domain.Lookup, err error) {
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if values == nil {
		values = []domain.Lookup{}
	}
	writeJSON(w, http.StatusOK, values)
}

func (h *ProducerHandler) Categories(w http.ResponseWriter, r *http.Request) {
	values, err := h.lookups.Categories(r.Context())
	h.lookupList(w, values, err)
}

func (h *ProducerHandler) ExpiryTypes(w http.ResponseWriter, r *http.Request) {
	values, err := h.lookups.ExpiryTypes(r.Context())
	h.lookupList(w, values, err)
}

func (h *ProducerHandler) Taluks(w http.ResponseWriter, r *http.Request) {
	values, err := h.lookups.Taluks(r.Context())
	h.lookupList(w, values, err)
}

type createProductRequest struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Quantity     int              `json:"quantity"`
	CategoryID   int64            `json:"category_id"`
	ExpiryTypeID int64            `json:"expiry_type_id"`
	TalukID      int64            `json:"taluk_id"`
}

func (h *ProducerHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Price == nil || req.CategoryID == 0 || req.ExpiryTypeID == 0 || req.TalukID == 0 {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if req.Quantity < 0 || req.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "price and quantity must be non-negative")
		return
	}

	product, err := h.producer.CreateProduct(r.Context(), domain.Product{
		ProducerID:   id.UserID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        *req.Price,
		Quantity:     req.Quantity,
		CategoryID:   req.CategoryID,
		ExpiryTypeID: req.ExpiryTypeID,
		TalukID:      req.TalukID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProducerHandler) Products(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	products, err := h.producer.Products(r.Context(), id.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if products == nil {
		products = []domain.ProductView{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProducerHandler) Product(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.producer.Product(r.Context(), id.UserID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProducerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var upd domain.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if upd.IsEmpty() {
		writeError(w, http.StatusBadRequest, "no updatable fields provided")
		return
	}

	product, err := h.producer.UpdateProduct(r.Context(), id.UserID, productID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found or not owned by you")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProducerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.producer.DeleteProduct(r.Context(), id.UserID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found or not owned by you")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": productID})
}

func (h *ProducerHandler) Restock(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	productID, ok := pathID(w, r, "id")
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

	product, err := h.producer.Restock(r.Context(), id.UserID, productID, *req.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found or not owned by you")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product_id": product.ID, "quantity": product.Quantity})
}

func (h *ProducerHandler) Orders(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	orders, err := h.producer.Orders(r.Context(), id.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if orders == nil {
		orders = []domain.ProducerOrder{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *ProducerHandler) Order(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, items, err := h.producer.Order(r.Context(), id.UserID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "this order does not contain any item from you")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"order": order.Order,
		"consumer": map[string]any{
			"user_id": order.ConsumerID,
			"name":    order.ConsumerName,
			"email":   order.ConsumerEmail,
		},
		"items": items,
	})
}

func (h *ProducerHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	favs, err := h.producer.Favorites(r.Context(), id.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if favs == nil {
		favs = []domain.ProducerFavorite{}
	}
	writeJSON(w, http.StatusOK, favs)
}

func (h *ProducerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	stats, err := h.producer.Dashboard(r.Context(), id.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *ProducerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	user, err := h.users.Profile(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *ProducerHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "old_password and new_password required")
		return
	}

	err := h.users.ChangePassword(r.Context(), id.UserID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "old password incorrect")
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
