// Command stress drives concurrent checkouts over the same scarce product to
// verify stock never oversells. It needs a reachable MySQL and Redis with the
// schema applied.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/trichyfresh/connect/internal/adapter/storage"
	"github.com/trichyfresh/connect/internal/config"
	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/core/service"
)

const (
	initialStock = 20
	totalBuyers  = 50
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	productID, cartIDs, cleanup := seed(ctx, db)
	defer cleanup()

	orderService := service.NewOrderService(storage.NewMySQLAdapter(db), storage.NewRedisAdapter(rdb))

	var successCount, soldOutCount atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for consumerID, cartID := range cartIDs {
		wg.Add(1)
		go func(consumerID, cartID int64) {
			defer wg.Done()

			_, err := orderService.Checkout(ctx, consumerID, cartID)
			switch {
			case err == nil:
				successCount.Add(1)
			case isInsufficientStock(err):
				soldOutCount.Add(1)
			default:
				log.Printf("checkout failed: %v", err)
			}
		}(consumerID, cartID)
	}
	wg.Wait()

	var remaining int
	if err := db.QueryRowContext(ctx,
		`SELECT quantity FROM products WHERE product_id = ?`, productID).Scan(&remaining); err != nil {
		log.Fatalf("read remaining stock: %v", err)
	}

	log.Printf("buyers=%d success=%d sold_out=%d remaining_stock=%d elapsed=%s",
		totalBuyers, successCount.Load(), soldOutCount.Load(), remaining, time.Since(start))

	if remaining < 0 || int(successCount.Load()) != initialStock-remaining {
		log.Fatal("stock accounting is inconsistent")
	}
}

func isInsufficientStock(err error) bool {
	var insufficient *domain.InsufficientStockError
	return errors.As(err, &insufficient)
}

// seed creates one scarce product and a cart per buyer, each wanting one
// unit. Returns a cleanup that removes everything it created.
func seed(ctx context.Context, db *sql.DB) (int64, map[int64]int64, func()) {
	mustExec := func(query string, args ...any) sql.Result {
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		return res
	}
	lastID := func(res sql.Result) int64 {
		id, err := res.LastInsertId()
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		return id
	}

	talukID := lastID(mustExec(`INSERT INTO taluks (name) VALUES (?)`, fmt.Sprintf("stress-taluk-%d", time.Now().UnixNano())))
	categoryID := lastID(mustExec(`INSERT INTO product_categories (name) VALUES (?)`, fmt.Sprintf("stress-cat-%d", time.Now().UnixNano())))
	expiryID := lastID(mustExec(`INSERT INTO expiry_types (name) VALUES (?)`, fmt.Sprintf("stress-exp-%d", time.Now().UnixNano())))

	producerID := lastID(mustExec(
		`INSERT INTO users (name, email, password_hash, role, taluk_id) VALUES (?, ?, 'x', 'Producer', ?)`,
		"stress producer", fmt.Sprintf("stress-producer-%d@example.com", time.Now().UnixNano()), talukID))

	productID := lastID(mustExec(`
		INSERT INTO products (producer_id, name, description, price, quantity, category_id, expiry_type_id, taluk_id)
		VALUES (?, 'stress tomatoes', '', 10.00, ?, ?, ?, ?)`,
		producerID, initialStock, categoryID, expiryID, talukID))

	cartIDs := make(map[int64]int64, totalBuyers)
	consumerIDs := make([]int64, 0, totalBuyers)
	for i := 0; i < totalBuyers; i++ {
		consumerID := lastID(mustExec(
			`INSERT INTO users (name, email, password_hash, role, taluk_id) VALUES (?, ?, 'x', 'Consumer', ?)`,
			fmt.Sprintf("stress buyer %d", i), fmt.Sprintf("stress-buyer-%d-%d@example.com", i, time.Now().UnixNano()), talukID))
		cartID := lastID(mustExec(`INSERT INTO carts (consumer_id) VALUES (?)`, consumerID))
		mustExec(`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES (?, ?, 1)`, cartID, productID)

		cartIDs[consumerID] = cartID
		consumerIDs = append(consumerIDs, consumerID)
	}

	cleanup := func() {
		for _, cartID := range cartIDs {
			db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID)
			db.ExecContext(ctx, `DELETE FROM carts WHERE cart_id = ?`, cartID)
		}
		db.ExecContext(ctx, `DELETE FROM order_items WHERE product_id = ?`, productID)
		db.ExecContext(ctx, `DELETE FROM orders WHERE consumer_id IN (SELECT user_id FROM users WHERE email LIKE 'stress-buyer-%')`)
		db.ExecContext(ctx, `DELETE FROM products WHERE product_id = ?`, productID)
		for _, id := range consumerIDs {
			db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
		}
		db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, producerID)
		db.ExecContext(ctx, `DELETE FROM taluks WHERE taluk_id = ?`, talukID)
		db.ExecContext(ctx, `DELETE FROM product_categories WHERE category_id = ?`, categoryID)
		db.ExecContext(ctx, `DELETE FROM expiry_types WHERE expiry_type_id = ?`, expiryID)
	}
	return productID, cartIDs, cleanup
}
