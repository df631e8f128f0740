package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	database "github.com/mateusmacedo/go-checkout/internal/infrastructure"
	zapAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/zaplogger/adapter"
)

func setupGormRepository(t *testing.T) (domain.OrderRepository, *gorm.DB) {
	t.Helper()

	db, err := database.OpenDatabase("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	repo, err := NewGormOrderRepository(db, zapAdapter.NewNopAppLogger())
	require.NoError(t, err)
	return repo, db
}

func newOrder(t *testing.T, id string, items ...domain.OrderItem) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(id, "customer-"+id, items)
	require.NoError(t, err)
	return order
}

func TestGormOrderRepository_CreateRoundTrip(t *testing.T) {
	repo, db := setupGormRepository(t)
	ctx := context.Background()

	input := domain.OrderItem{ID: "1", Name: "Item 1", Price: 10, ProductID: "123", Quantity: 2}
	require.NoError(t, repo.Create(ctx, newOrder(t, "123", input)))

	var row OrderModel
	require.NoError(t, db.First(&row, "id = ?", "123").Error)
	assert.Equal(t, float64(20), row.Total)
	assert.Equal(t, "customer-123", row.CustomerID)

	var items []OrderItemModel
	require.NoError(t, db.Where("order_id = ?", "123").Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, OrderItemModel{
		ID:        "1",
		OrderID:   "123",
		Position:  0,
		ProductID: "123",
		Name:      "Item 1",
		Price:     10,
		Quantity:  2,
	}, items[0])

	found, err := repo.Find(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, []domain.OrderItem{input}, found.Items())
	assert.Equal(t, float64(20), found.Total())
}

func TestGormOrderRepository_CreateDuplicate(t *testing.T) {
	repo, _ := setupGormRepository(t)
	ctx := context.Background()

	order := newOrder(t, "o1", domain.OrderItem{ID: "1", ProductID: "p1", Price: 1, Quantity: 1})
	require.NoError(t, repo.Create(ctx, order))

	other := newOrder(t, "o1", domain.OrderItem{ID: "9", ProductID: "p9", Price: 1, Quantity: 1})
	err := repo.Create(ctx, other)

	assert.ErrorIs(t, err, domain.ErrOrderAlreadyExists)
}

func TestGormOrderRepository_CreateRollsBackOnFailure(t *testing.T) {
	repo, db := setupGormRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newOrder(t, "o1", domain.OrderItem{ID: "1", ProductID: "p1", Price: 10, Quantity: 2})))

	// a linha de o2 é gravada antes dos itens; o conflito do item "1" precisa desfazê-la.
	second := newOrder(t, "o2",
		domain.OrderItem{ID: "2", ProductID: "p2", Price: 5, Quantity: 1},
		domain.OrderItem{ID: "1", ProductID: "p1", Price: 10, Quantity: 1},
	)
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, domain.ErrItemConflict)

	var orders int64
	require.NoError(t, db.Model(&OrderModel{}).Where("id = ?", "o2").Count(&orders).Error)
	assert.Zero(t, orders)

	var items int64
	require.NoError(t, db.Model(&OrderItemModel{}).Where("order_id = ?", "o2").Count(&items).Error)
	assert.Zero(t, items)

	_, err = repo.Find(ctx, "o2")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	first, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, float64(20), first.Total())
	require.Len(t, first.Items(), 1)
	assert.Equal(t, "1", first.Items()[0].ID)
}

func TestGormOrderRepository_UpdateReplacesItems(t *testing.T) {
	repo, db := setupGormRepository(t)
	ctx := context.Background()

	itemA := domain.OrderItem{ID: "A", Name: "Item A", Price: 10, ProductID: "p1", Quantity: 2}
	itemB := domain.OrderItem{ID: "B", Name: "Item B", Price: 20, ProductID: "p2", Quantity: 3}
	order := newOrder(t, "o1", itemA)
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, order.AddItem(itemB))
	require.NoError(t, order.RemoveItem("A"))
	require.NoError(t, repo.Update(ctx, order))

	found, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, float64(60), found.Total())
	assert.Equal(t, []domain.OrderItem{itemB}, found.Items())

	var count int64
	require.NoError(t, db.Model(&OrderItemModel{}).Where("id = ?", "A").Count(&count).Error)
	assert.Zero(t, count)
}

func TestGormOrderRepository_UpdateKeepsItemOrder(t *testing.T) {
	repo, _ := setupGormRepository(t)
	ctx := context.Background()

	order := newOrder(t, "o1", domain.OrderItem{ID: "1", ProductID: "p1", Price: 1, Quantity: 1})
	require.NoError(t, repo.Create(ctx, order))

	replacement := []domain.OrderItem{
		{ID: "z", ProductID: "p3", Price: 3, Quantity: 1},
		{ID: "a", ProductID: "p1", Price: 1, Quantity: 1},
		{ID: "m", ProductID: "p2", Price: 2, Quantity: 1},
	}
	require.NoError(t, order.ReplaceItems(replacement))
	require.NoError(t, repo.Update(ctx, order))

	found, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, replacement, found.Items())
	assert.Equal(t, float64(6), found.Total())
}

func TestGormOrderRepository_UpdateRollsBackOnFailure(t *testing.T) {
	repo, db := setupGormRepository(t)
	ctx := context.Background()

	first := newOrder(t, "o1", domain.OrderItem{ID: "1", ProductID: "p1", Price: 10, Quantity: 2})
	second := newOrder(t, "o2", domain.OrderItem{ID: "2", ProductID: "p2", Price: 5, Quantity: 1})
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	// o item "2" já pertence a o2: a inserção falha depois da remoção dos itens de o1.
	require.NoError(t, first.ReplaceItems([]domain.OrderItem{{ID: "2", ProductID: "p2", Price: 50, Quantity: 1}}))
	err := repo.Update(ctx, first)
	assert.ErrorIs(t, err, domain.ErrItemConflict)

	found, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, float64(20), found.Total())
	require.Len(t, found.Items(), 1)
	assert.Equal(t, "1", found.Items()[0].ID)

	var owner OrderItemModel
	require.NoError(t, db.First(&owner, "id = ?", "2").Error)
	assert.Equal(t, "o2", owner.OrderID)
}

func TestGormOrderRepository_UpdateUnknownOrder(t *testing.T) {
	repo, _ := setupGormRepository(t)

	order := newOrder(t, "missing", domain.OrderItem{ID: "1", ProductID: "p1", Price: 1, Quantity: 1})
	err := repo.Update(context.Background(), order)

	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGormOrderRepository_UpdateRejectsEmptyOrder(t *testing.T) {
	repo, _ := setupGormRepository(t)
	ctx := context.Background()

	order := newOrder(t, "o1", domain.OrderItem{ID: "1", ProductID: "p1", Price: 1, Quantity: 1})
	require.NoError(t, repo.Create(ctx, order))
	require.NoError(t, order.RemoveItem("1"))

	assert.ErrorIs(t, repo.Update(ctx, order), domain.ErrOrderWithoutItems)

	found, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, found.Items(), 1)
}

func TestGormOrderRepository_FindUnknown(t *testing.T) {
	repo, _ := setupGormRepository(t)

	order, err := repo.Find(context.Background(), "unknown-id")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.False(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.EqualError(t, err, "Order not found")
}

func TestGormOrderRepository_FindAll(t *testing.T) {
	repo, _ := setupGormRepository(t)
	ctx := context.Background()

	first := newOrder(t, "o1", domain.OrderItem{ID: "1", ProductID: "p1", Price: 10, Quantity: 2})
	second := newOrder(t, "o2",
		domain.OrderItem{ID: "2", ProductID: "p2", Price: 20, Quantity: 1},
		domain.OrderItem{ID: "3", ProductID: "p3", Price: 1, Quantity: 4},
	)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	orders, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	byID := make(map[string]*domain.Order, len(orders))
	for _, o := range orders {
		byID[o.ID()] = o
	}
	require.Contains(t, byID, "o1")
	require.Contains(t, byID, "o2")
	assert.Equal(t, first.Items(), byID["o1"].Items())
	assert.Equal(t, second.Items(), byID["o2"].Items())
	assert.Equal(t, float64(24), byID["o2"].Total())
}

func TestGormOrderRepository_FindAllEmpty(t *testing.T) {
	repo, _ := setupGormRepository(t)

	orders, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, orders)
}
