package service

import (
	"context"
	"errors"
	"testing"

	"github.com/trichyfresh/connect/internal/core/domain"
)

// Mock CartRepository
type mockCartRepo struct {
	stock   map[int64]int          // productID -> available quantity
	lines   map[int64]*domain.CartLine // cartItemID -> line
	nextID  int64
	deleted []int64
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{
		stock:  make(map[int64]int),
		lines:  make(map[int64]*domain.CartLine),
		nextID: 1,
	}
}

func (m *mockCartRepo) GetProductStock(ctx context.Context, productID int64) (int, error) {
	stock, ok := m.stock[productID]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	return stock, nil
}

func (m *mockCartRepo) ListLines(ctx context.Context, consumerID int64) ([]domain.CartLine, error) {
	var out []domain.CartLine
	for _, l := range m.lines {
		out = append(out, *l)
	}
	return out, nil
}

func (m *mockCartRepo) GetLine(ctx context.Context, consumerID, cartItemID int64) (*domain.CartLine, error) {
	l, ok := m.lines[cartItemID]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}
	copied := *l
	return &copied, nil
}

func (m *mockCartRepo) UpsertLine(ctx context.Context, consumerID, productID int64, quantity int) (*domain.CartItem, bool, error) {
	for _, l := range m.lines {
		if l.ProductID == productID {
			l.Quantity += quantity
			return &domain.CartItem{ID: l.CartItemID, ProductID: productID, Quantity: l.Quantity}, false, nil
		}
	}
	id := m.nextID
	m.nextID++
	m.lines[id] = &domain.CartLine{
		CartItemID:   id,
		ProductID:    productID,
		Quantity:     quantity,
		ProductStock: m.stock[productID],
	}
	return &domain.CartItem{ID: id, ProductID: productID, Quantity: quantity}, true, nil
}

func (m *mockCartRepo) SetLineQuantity(ctx context.Context, cartItemID int64, quantity int) (*domain.CartItem, error) {
	l, ok := m.lines[cartItemID]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}
	l.Quantity = quantity
	return &domain.CartItem{ID: cartItemID, ProductID: l.ProductID, Quantity: quantity}, nil
}

func (m *mockCartRepo) DeleteLine(ctx context.Context, cartItemID int64) error {
	if _, ok := m.lines[cartItemID]; !ok {
		return domain.ErrCartItemNotFound
	}
	delete(m.lines, cartItemID)
	m.deleted = append(m.deleted, cartItemID)
	return nil
}

func TestAddItem_SumsIntoExistingLine(t *testing.T) {
	repo := newMockCartRepo()
	repo.stock[10] = 8
	svc := NewCartService(repo)

	item, created, err := svc.AddItem(context.Background(), 1, 10, 2)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if !created {
		t.Error("expected a new line on first add")
	}

	item, created, err = svc.AddItem(context.Background(), 1, 10, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if created {
		t.Error("expected the existing line to be reused")
	}
	if item.Quantity != 5 {
		t.Errorf("expected summed quantity 5, got %d", item.Quantity)
	}
	if len(repo.lines) != 1 {
		t.Errorf("expected a single line, got %d", len(repo.lines))
	}
}

func TestAddItem_InsufficientStock(t *testing.T) {
	repo := newMockCartRepo()
	repo.stock[10] = 1
	svc := NewCartService(repo)

	_, _, err := svc.AddItem(context.Background(), 1, 10, 2)
	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got: %v", err)
	}
	if insufficient.ProductID != 10 {
		t.Errorf("expected product 10 in error, got %d", insufficient.ProductID)
	}
	if len(repo.lines) != 0 {
		t.Error("expected no line created")
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc := NewCartService(newMockCartRepo())

	_, _, err := svc.AddItem(context.Background(), 1, 99, 1)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestUpdateItem_ZeroRemovesLine(t *testing.T) {
	repo := newMockCartRepo()
	repo.stock[10] = 5
	svc := NewCartService(repo)

	item, _, err := svc.AddItem(context.Background(), 1, 10, 2)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	updated, err := svc.UpdateItem(context.Background(), 1, item.ID, 0)
	if err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if updated != nil {
		t.Error("expected nil item after removal")
	}
	if len(repo.lines) != 0 {
		t.Error("expected line removed")
	}
}

func TestUpdateItem_AboveStock(t *testing.T) {
	repo := newMockCartRepo()
	repo.stock[10] = 3
	svc := NewCartService(repo)

	item, _, err := svc.AddItem(context.Background(), 1, 10, 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	_, err = svc.UpdateItem(context.Background(), 1, item.ID, 4)
	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got: %v", err)
	}

	line, _ := repo.GetLine(context.Background(), 1, item.ID)
	if line.Quantity != 1 {
		t.Errorf("expected quantity unchanged at 1, got %d", line.Quantity)
	}
}

func TestUpdateItem_NotOwned(t *testing.T) {
	svc := NewCartService(newMockCartRepo())

	_, err := svc.UpdateItem(context.Background(), 1, 55, 2)
	if !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Errorf("expected ErrCartItemNotFound, got: %v", err)
	}
}

func TestRemoveItem_NotOwned(t *testing.T) {
	svc := NewCartService(newMockCartRepo())

	err := svc.RemoveItem(context.Background(), 1, 55)
	if !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Errorf("expected ErrCartItemNotFound, got: %v", err)
	}
}
