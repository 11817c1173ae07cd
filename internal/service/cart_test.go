package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/virajdomadia/E-Commerce-backend/internal/domain"
	"github.com/virajdomadia/E-Commerce-backend/internal/store"
)

func newCartFixture(t *testing.T) (*CartService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return NewCartService(mem.Carts, mem.Products), mem
}

func seedProduct(t *testing.T, mem *store.Memory, title string, stock int) primitive.ObjectID {
	t.Helper()
	p := domain.Product{Title: title, Price: 10, CountInStock: stock}
	require.NoError(t, mem.Products.Create(context.Background(), &p))
	return p.ID
}

func TestGetCartNoCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartFixture(t)
	userID := primitive.NewObjectID()

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, userID, cart.User)
	require.NotNil(t, cart.Items)
	require.Empty(t, cart.Items)
}

func TestAddItemAccumulates(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	productID := seedProduct(t, mem, "Teak Table", 10)

	_, err := svc.AddItem(ctx, userID, productID, 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, userID, productID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.Items[0].Quantity)
	require.Equal(t, "Teak Table", cart.Items[0].Product.Title)
}

func TestAddItemDefaultsHandledByCaller(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	productID := seedProduct(t, mem, "Chair", 10)

	cart, err := svc.AddItem(ctx, userID, productID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	productID := seedProduct(t, mem, "Chair", 10)

	_, err := svc.AddItem(ctx, userID, productID, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.AddItem(ctx, userID, productID, -3)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddItemDoesNotValidateProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartFixture(t)
	userID := primitive.NewObjectID()

	// The product does not exist; the item still lands in the cart and
	// self-heals away on the resolved read.
	cart, err := svc.AddItem(ctx, userID, primitive.NewObjectID(), 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestUpdateQuantityToZeroRemovesItem(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	keepID := seedProduct(t, mem, "Keep", 10)
	dropID := seedProduct(t, mem, "Drop", 10)

	_, err := svc.AddItem(ctx, userID, keepID, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, dropID, 4)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, userID, dropID, 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, keepID, cart.Items[0].Product.ID)
	require.Equal(t, 2, cart.Items[0].Quantity)
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	productID := seedProduct(t, mem, "Table", 10)

	_, err := svc.AddItem(ctx, userID, productID, 2)
	require.NoError(t, err)
	cart, err := svc.UpdateQuantity(ctx, userID, productID, 7)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateQuantityNoCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartFixture(t)

	_, err := svc.UpdateQuantity(ctx, primitive.NewObjectID(), primitive.NewObjectID(), 2)
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestUpdateQuantityItemMissing(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	productID := seedProduct(t, mem, "Table", 10)

	_, err := svc.AddItem(ctx, userID, productID, 2)
	require.NoError(t, err)
	_, err = svc.UpdateQuantity(ctx, userID, primitive.NewObjectID(), 2)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItemNoop(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	productID := seedProduct(t, mem, "Table", 10)

	_, err := svc.AddItem(ctx, userID, productID, 2)
	require.NoError(t, err)

	// Removing a product not in the cart leaves it unchanged.
	cart, err := svc.RemoveItem(ctx, userID, primitive.NewObjectID())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	productID := seedProduct(t, mem, "Table", 10)

	_, err := svc.AddItem(ctx, userID, productID, 2)
	require.NoError(t, err)
	cart, err := svc.RemoveItem(ctx, userID, productID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestRemoveItemNoCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartFixture(t)

	_, err := svc.RemoveItem(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestSelfHealingRead(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	keepID := seedProduct(t, mem, "Keep", 10)
	goneID := seedProduct(t, mem, "Gone", 10)

	_, err := svc.AddItem(ctx, userID, keepID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, goneID, 1)
	require.NoError(t, err)

	require.NoError(t, mem.Products.Delete(ctx, goneID))

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, keepID, cart.Items[0].Product.ID)

	// The prune was persisted, not just filtered from the view.
	stored, err := mem.Carts.GetByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	require.Equal(t, keepID, stored.Items[0].ProductID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	productID := seedProduct(t, mem, "Table", 5)

	// No cart at all.
	require.ErrorIs(t, svc.Checkout(ctx, userID), ErrEmptyCart)

	// Cart exists but has been emptied.
	_, err := svc.AddItem(ctx, userID, productID, 1)
	require.NoError(t, err)
	_, err = svc.UpdateQuantity(ctx, userID, productID, 0)
	require.NoError(t, err)
	require.ErrorIs(t, svc.Checkout(ctx, userID), ErrEmptyCart)

	p, err := mem.Products.GetByID(ctx, productID)
	require.NoError(t, err)
	require.Equal(t, 5, p.CountInStock)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	aID := seedProduct(t, mem, "Plenty", 5)
	bID := seedProduct(t, mem, "Scarce", 2)

	_, err := svc.AddItem(ctx, userID, aID, 3)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, bID, 3)
	require.NoError(t, err)

	err = svc.Checkout(ctx, userID)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "Scarce", stockErr.Title)
	require.Equal(t, 2, stockErr.Available)
	require.Equal(t, 3, stockErr.Requested)

	// Validation precedes deduction: nothing moved.
	a, err := mem.Products.GetByID(ctx, aID)
	require.NoError(t, err)
	require.Equal(t, 5, a.CountInStock)
	b, err := mem.Products.GetByID(ctx, bID)
	require.NoError(t, err)
	require.Equal(t, 2, b.CountInStock)

	// Cart is untouched.
	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestCheckoutDeletedProduct(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	productID := seedProduct(t, mem, "Table", 5)

	_, err := svc.AddItem(ctx, userID, productID, 1)
	require.NoError(t, err)
	require.NoError(t, mem.Products.Delete(ctx, productID))

	require.ErrorIs(t, svc.Checkout(ctx, userID), ErrInvalidItem)
}

func TestCheckoutSuccess(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	userID := primitive.NewObjectID()
	productID := seedProduct(t, mem, "Table", 5)

	_, err := svc.AddItem(ctx, userID, productID, 3)
	require.NoError(t, err)
	require.NoError(t, svc.Checkout(ctx, userID))

	p, err := mem.Products.GetByID(ctx, productID)
	require.NoError(t, err)
	require.Equal(t, 2, p.CountInStock)

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestConcurrentCheckoutsNeverOverdeduct(t *testing.T) {
	ctx := context.Background()
	svc, mem := newCartFixture(t)
	productID := seedProduct(t, mem, "Last One", 1)

	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()
	_, err := svc.AddItem(ctx, userA, productID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userB, productID, 1)
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); errs[0] = svc.Checkout(ctx, userA) }()
	go func() { defer wg.Done(); errs[1] = svc.Checkout(ctx, userB) }()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			var stockErr *InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
		}
	}
	require.Equal(t, 1, succeeded)

	p, err := mem.Products.GetByID(ctx, productID)
	require.NoError(t, err)
	require.Equal(t, 0, p.CountInStock)
}
