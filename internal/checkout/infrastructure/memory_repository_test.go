package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	zapAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/zaplogger/adapter"
)

func TestInMemoryOrderRepository_CreateAndFind(t *testing.T) {
	repo := NewInMemoryOrderRepository(zapAdapter.NewNopAppLogger())
	ctx := context.Background()

	input := domain.OrderItem{ID: "1", Name: "Item 1", Price: 10, ProductID: "123", Quantity: 2}
	require.NoError(t, repo.Create(ctx, newOrder(t, "123", input)))

	found, err := repo.Find(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, float64(20), found.Total())
	assert.Equal(t, []domain.OrderItem{input}, found.Items())

	assert.ErrorIs(t, repo.Create(ctx, newOrder(t, "123", input)), domain.ErrOrderAlreadyExists)
}

func TestInMemoryOrderRepository_Isolation(t *testing.T) {
	repo := NewInMemoryOrderRepository(zapAdapter.NewNopAppLogger())
	ctx := context.Background()

	order := newOrder(t, "o1", domain.OrderItem{ID: "1", ProductID: "p1", Price: 10, Quantity: 1})
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, order.AddItem(domain.OrderItem{ID: "2", ProductID: "p2", Price: 5, Quantity: 1}))

	found, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, found.Items(), 1)
	assert.Equal(t, float64(10), found.Total())
}

func TestInMemoryOrderRepository_Update(t *testing.T) {
	repo := NewInMemoryOrderRepository(zapAdapter.NewNopAppLogger())
	ctx := context.Background()

	itemB := domain.OrderItem{ID: "B", Price: 20, ProductID: "p2", Quantity: 3}
	order := newOrder(t, "o1", domain.OrderItem{ID: "A", Price: 10, ProductID: "p1", Quantity: 2})
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, order.ReplaceItems([]domain.OrderItem{itemB}))
	require.NoError(t, repo.Update(ctx, order))

	found, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, float64(60), found.Total())
	assert.Equal(t, []domain.OrderItem{itemB}, found.Items())

	missing := newOrder(t, "o2", itemB)
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrOrderNotFound)
}

func TestInMemoryOrderRepository_FindUnknownAndFindAll(t *testing.T) {
	repo := NewInMemoryOrderRepository(zapAdapter.NewNopAppLogger())
	ctx := context.Background()

	_, err := repo.Find(ctx, "unknown-id")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	require.NoError(t, repo.Create(ctx, newOrder(t, "o1", domain.OrderItem{ID: "1", ProductID: "p1", Price: 1, Quantity: 1})))
	require.NoError(t, repo.Create(ctx, newOrder(t, "o2", domain.OrderItem{ID: "2", ProductID: "p2", Price: 2, Quantity: 1})))

	orders, err := repo.FindAll(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	assert.ElementsMatch(t, []string{"o1", "o2"}, ids)
}

func TestInMemoryOrderRepository_ItemConflict(t *testing.T) {
	repo := NewInMemoryOrderRepository(zapAdapter.NewNopAppLogger())
	ctx := context.Background()

	first := newOrder(t, "o1", domain.OrderItem{ID: "1", ProductID: "p1", Price: 10, Quantity: 2})
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, newOrder(t, "o2", domain.OrderItem{ID: "1", ProductID: "p1", Price: 10, Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrItemConflict)
	_, err = repo.Find(ctx, "o2")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	second := newOrder(t, "o2", domain.OrderItem{ID: "2", ProductID: "p2", Price: 5, Quantity: 1})
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, first.ReplaceItems([]domain.OrderItem{{ID: "2", ProductID: "p2", Price: 50, Quantity: 1}}))
	assert.ErrorIs(t, repo.Update(ctx, first), domain.ErrItemConflict)

	found, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, float64(20), found.Total())

	// regravar os próprios itens não é conflito
	require.NoError(t, repo.Update(ctx, second))
}
