package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository para testes que não precisam de banco real
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Load(ctx context.Context, cartID string) ([]byte, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cartID string, raw []byte) error {
	args := m.Called(ctx, cartID, raw)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func TestGetCartReturnsEmptyWhenAbsent(t *testing.T) {
	// Arrange
	uc := NewCartUseCase(NewMemoryCartRepository())

	// Act
	cart := uc.GetCart(context.Background(), "nobody")

	// Assert
	assert.NotNil(t, cart)
	assert.True(t, cart.IsEmpty())
}

func TestGetCartFailsOpenOnMalformedData(t *testing.T) {
	// Arrange: the persisted slot holds something that is not a cart
	repo := NewMemoryCartRepository()
	ctx := context.Background()
	_ = repo.Save(ctx, "c1", []byte("{not json"))
	uc := NewCartUseCase(repo)

	// Act
	cart := uc.GetCart(ctx, "c1")

	// Assert
	assert.True(t, cart.IsEmpty())
}

func TestGetCartFailsOpenOnRepositoryError(t *testing.T) {
	// Arrange
	mockRepo := new(MockCartRepository)
	ctx := context.Background()
	mockRepo.On("Load", ctx, "c1").Return(nil, errors.New("connection refused"))
	uc := NewCartUseCase(mockRepo)

	// Act
	cart := uc.GetCart(ctx, "c1")

	// Assert
	assert.True(t, cart.IsEmpty())
	mockRepo.AssertExpectations(t)
}

func TestSaveCartIsWriteThrough(t *testing.T) {
	// Arrange
	repo := NewMemoryCartRepository()
	uc := NewCartUseCase(repo)
	ctx := context.Background()

	cart := NewCart()
	_ = cart.Add(CartItem{ProductID: "a", Name: "A", Price: 1000, Quantity: 2})

	// Act
	err := uc.SaveCart(ctx, "c1", cart)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, cart, uc.GetCart(ctx, "c1"))
}

func TestSaveCartPersistenceIdempotence(t *testing.T) {
	// Arrange
	repo := NewMemoryCartRepository()
	uc := NewCartUseCase(repo)
	ctx := context.Background()
	_, _ = uc.AddItem(ctx, "c1", CartItem{ProductID: "a", Name: "A", Price: 1000, Quantity: 2})

	before := uc.GetCart(ctx, "c1")

	// Act: saving what was just read must not change subsequent reads
	err := uc.SaveCart(ctx, "c1", before)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, before, uc.GetCart(ctx, "c1"))
}

func TestSaveCartWrapsRepositoryError(t *testing.T) {
	// Arrange
	mockRepo := new(MockCartRepository)
	ctx := context.Background()
	mockRepo.On("Save", ctx, "c1", mock.Anything).Return(errors.New("disk full"))
	uc := NewCartUseCase(mockRepo)

	// Act
	err := uc.SaveCart(ctx, "c1", NewCart())

	// Assert
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "persisting cart"))
	mockRepo.AssertExpectations(t)
}

func TestSaveCartNotifiesCountListeners(t *testing.T) {
	// Arrange
	uc := NewCartUseCase(NewMemoryCartRepository())
	ctx := context.Background()

	var counts []int
	uc.OnCartCount(func(count int) { counts = append(counts, count) })

	cart := NewCart()
	_ = cart.Add(CartItem{ProductID: "a", Name: "A", Price: 1000, Quantity: 2})
	_ = cart.Add(CartItem{ProductID: "b", Name: "B", Price: 500, Quantity: 3})

	// Act
	_ = uc.SaveCart(ctx, "c1", cart)

	// Assert: listeners get the total unit count, not the line count
	assert.Equal(t, []int{5}, counts)
}

func TestAddItemMergesThroughUseCase(t *testing.T) {
	// Arrange
	uc := NewCartUseCase(NewMemoryCartRepository())
	ctx := context.Background()
	variant := Variant{"Size": "M"}

	// Act
	_, err1 := uc.AddItem(ctx, "c1", CartItem{ProductID: "a", Name: "A", Price: 1000, Quantity: 1, Variant: variant})
	cart, err2 := uc.AddItem(ctx, "c1", CartItem{ProductID: "a", Name: "A", Price: 1000, Quantity: 2, Variant: variant})

	// Assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// Persisted state matches the returned cart immediately
	assert.Equal(t, cart, uc.GetCart(ctx, "c1"))
}

func TestAddItemRejectsInvalidQuantity(t *testing.T) {
	// Arrange
	uc := NewCartUseCase(NewMemoryCartRepository())

	// Act
	_, err := uc.AddItem(context.Background(), "c1", CartItem{ProductID: "a", Quantity: 0})

	// Assert
	assert.Error(t, err)
}

func TestClearCartRemovesSlot(t *testing.T) {
	// Arrange
	uc := NewCartUseCase(NewMemoryCartRepository())
	ctx := context.Background()
	_, _ = uc.AddItem(ctx, "c1", CartItem{ProductID: "a", Name: "A", Price: 1000, Quantity: 1})

	// Act
	err := uc.ClearCart(ctx, "c1")

	// Assert
	assert.NoError(t, err)
	assert.True(t, uc.GetCart(ctx, "c1").IsEmpty())
}

func TestPurchaseClearsCartAndReturnsTransactionID(t *testing.T) {
	// Arrange
	carts := NewCartUseCase(NewMemoryCartRepository())
	ctx := context.Background()
	_, _ = carts.AddItem(ctx, "c1", CartItem{ProductID: "a", Name: "Product A", Price: 1000, Quantity: 2})

	sink := &recordingSink{}
	checkout := NewCheckoutUseCase(carts, testCatalog(), NewPipeline(sink))

	// Act
	transactionID, err := checkout.Purchase(ctx, "c1")

	// Assert
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(transactionID, "T-"))
	assert.True(t, carts.GetCart(ctx, "c1").IsEmpty())

	// The fired purchase event carries the same transaction id
	assert.Len(t, sink.events, 1)
	assert.Equal(t, EventPurchase, sink.events[0].Name)
	assert.Equal(t, transactionID, sink.events[0].Payload.TransactionID)
	assert.Equal(t, 2000+ShippingCost, sink.events[0].Payload.Value)
}

func TestPurchaseTransactionIDsAreUnique(t *testing.T) {
	// Arrange
	carts := NewCartUseCase(NewMemoryCartRepository())
	checkout := NewCheckoutUseCase(carts, testCatalog(), NewPipeline(nil))
	ctx := context.Background()

	// Act
	first, _ := checkout.Purchase(ctx, "c1")
	second, _ := checkout.Purchase(ctx, "c1")

	// Assert
	assert.NotEqual(t, first, second)
}

func TestCheckoutTotals(t *testing.T) {
	// Arrange
	checkout := NewCheckoutUseCase(NewCartUseCase(NewMemoryCartRepository()), testCatalog(), NewPipeline(nil))
	cart := NewCart()
	_ = cart.Add(CartItem{ProductID: "a", Name: "A", Price: 1000, Quantity: 2})

	// Act
	subtotal, shipping, grandTotal := checkout.Totals(cart)

	// Assert
	assert.Equal(t, 2000, subtotal)
	assert.Equal(t, ShippingCost, shipping)
	assert.Equal(t, 2000+ShippingCost, grandTotal)
}

func TestSubmitShippingAndPaymentFireEvents(t *testing.T) {
	// Arrange: steps are unordered, both fire against whatever cart exists
	carts := NewCartUseCase(NewMemoryCartRepository())
	ctx := context.Background()
	_, _ = carts.AddItem(ctx, "c1", CartItem{ProductID: "a", Name: "Product A", Price: 1000, Quantity: 1})

	sink := &recordingSink{}
	checkout := NewCheckoutUseCase(carts, testCatalog(), NewPipeline(sink))

	// Act
	checkout.SubmitShipping(ctx, "c1", "")
	checkout.SubmitPayment(ctx, "c1", "bank_transfer")

	// Assert
	assert.Len(t, sink.events, 2)
	assert.Equal(t, EventAddShippingInfo, sink.events[0].Name)
	assert.Equal(t, DefaultShippingTier, sink.events[0].Payload.ShippingTier)
	assert.Equal(t, EventAddPaymentInfo, sink.events[1].Name)
	assert.Equal(t, "bank_transfer", sink.events[1].Payload.PaymentType)
	assert.Equal(t, 1000+ShippingCost, sink.events[1].Payload.Value)
}
