package handler

import (
	"net/http"

	"github.com/trichyfresh/connect/internal/core/domain"
)

// NewRouter wires every route behind its role gate and wraps the mux with
// the access logger.
func NewRouter(authH *AuthHandler, consumerH *ConsumerHandler, producerH *ProducerHandler, mw *Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", HealthCheck)
	mux.HandleFunc("POST /api/users/register", authH.Register)
	mux.HandleFunc("POST /api/users/login", authH.Login)

	consumer := func(next http.HandlerFunc) http.HandlerFunc {
		return mw.RequireRole(domain.RoleConsumer, next)
	}
	mux.HandleFunc("GET /api/consumer/products", consumer(consumerH.Feed))
	mux.HandleFunc("GET /api/consumer/products/{id}", consumer(consumerH.Product))
	mux.HandleFunc("GET /api/consumer/products/{id}/contact", consumer(consumerH.ProducerContact))
	mux.HandleFunc("GET /api/consumer/favorites", consumer(consumerH.Favorites))
	mux.HandleFunc("POST /api/consumer/favorites", consumer(consumerH.AddFavorite))
	mux.HandleFunc("DELETE /api/consumer/favorites/{product_id}", consumer(consumerH.RemoveFavorite))
	mux.HandleFunc("GET /api/consumer/cart", consumer(consumerH.Cart))
	mux.HandleFunc("POST /api/consumer/cart/items", consumer(consumerH.AddCartItem))
	mux.HandleFunc("PATCH /api/consumer/cart/items/{id}", consumer(consumerH.UpdateCartItem))
	mux.HandleFunc("DELETE /api/consumer/cart/items/{id}", consumer(consumerH.RemoveCartItem))
	mux.HandleFunc("POST /api/consumer/cart/checkout", consumer(consumerH.Checkout))
	mux.HandleFunc("GET /api/consumer/orders", consumer(consumerH.Orders))
	mux.HandleFunc("GET /api/consumer/orders/{id}", consumer(consumerH.Order))

	producer := func(next http.HandlerFunc) http.HandlerFunc {
		return mw.RequireRole(domain.RoleProducer, next)
	}
	mux.HandleFunc("GET /api/producer/lookups/categories", producer(producerH.Categories))
	mux.HandleFunc("GET /api/producer/lookups/expiry-types", producer(producerH.ExpiryTypes))
	mux.HandleFunc("GET /api/producer/lookups/taluks", producer(producerH.Taluks))
	mux.HandleFunc("POST /api/producer/products", producer(producerH.CreateProduct))
	mux.HandleFunc("GET /api/producer/products", producer(producerH.Products))
	mux.HandleFunc("GET /api/producer/products/{id}", producer(producerH.Product))
	mux.HandleFunc("PUT /api/producer/products/{id}", producer(producerH.UpdateProduct))
	mux.HandleFunc("DELETE /api/producer/products/{id}", producer(producerH.DeleteProduct))
	mux.HandleFunc("PATCH /api/producer/products/{id}/quantity", producer(producerH.Restock))
	mux.HandleFunc("GET /api/producer/orders", producer(producerH.Orders))
	mux.HandleFunc("GET /api/producer/orders/{id}", producer(producerH.Order))
	mux.HandleFunc("GET /api/producer/favorites", producer(producerH.Favorites))
	mux.HandleFunc("GET /api/producer/dashboard", producer(producerH.Dashboard))
	mux.HandleFunc("GET /api/producer/profile", producer(producerH.Profile))
	mux.HandleFunc("POST /api/producer/change-password", producer(producerH.ChangePassword))

	return RequestLogger(mux)
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
