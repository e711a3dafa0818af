package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() *Catalog {
	return NewCatalog([]Product{
		{ID: "a", Name: "Product A", Price: 1000, Category: "tops"},
		{ID: "b", Name: "Product B", Price: 500, Category: "bottoms"},
		{ID: "c", Name: "Product C", Price: 2000, Category: "shoes"},
	})
}

func TestBuildViewItemListAssignsOneBasedIndexes(t *testing.T) {
	// Arrange
	catalog := testCatalog()

	// Act
	payload := BuildViewItemList(AllProductsListID, AllProductsListName, catalog.Products())

	// Assert
	assert.Equal(t, AllProductsListID, payload.ItemListID)
	assert.Equal(t, AllProductsListName, payload.ItemListName)
	assert.Len(t, payload.Items, 3)
	for i, item := range payload.Items {
		assert.Equal(t, i+1, item.Index)
	}
	assert.Equal(t, "tops", payload.Items[0].ItemCategory)
}

func TestBuildSelectItemUsesRenderedPosition(t *testing.T) {
	// Arrange: list renders [A, B, C], the user activates B
	catalog := testCatalog()
	productB, _ := catalog.FindByID("b")

	// Act
	payload := BuildSelectItem(AllProductsListID, AllProductsListName, productB, 2)

	// Assert
	assert.Len(t, payload.Items, 1)
	assert.Equal(t, 2, payload.Items[0].Index)
	assert.Equal(t, "b", payload.Items[0].ItemID)
}

func TestBuildViewItem(t *testing.T) {
	// Arrange
	product := Product{ID: "a", Name: "Product A", Price: 1000, Category: "tops"}

	// Act
	payload := BuildViewItem(product)

	// Assert
	assert.Equal(t, CurrencyKRW, payload.Currency)
	assert.Equal(t, 1000, payload.Value)
	assert.Len(t, payload.Items, 1)
	assert.Empty(t, payload.Items[0].ItemVariant)
}

func TestBuildAddToCartJoinsVariantValues(t *testing.T) {
	// Arrange
	product := Product{ID: "a", Name: "Product A", Price: 1000, Category: "tops"}
	variant := Variant{"Size": "M", "Color": "Red"}

	// Act
	payload := BuildAddToCart(product, variant, 2)

	// Assert
	assert.Equal(t, 1000, payload.Value)
	assert.Equal(t, "Red/M", payload.Items[0].ItemVariant)
	assert.Equal(t, 2, payload.Items[0].Quantity)
}

func TestBuildViewCartValue(t *testing.T) {
	// Arrange: [(price=1000, qty=2), (price=500, qty=3)] must total 3500
	catalog := testCatalog()
	cart := NewCart()
	_ = cart.Add(CartItem{ProductID: "a", Name: "Product A", Price: 1000, Quantity: 2})
	_ = cart.Add(CartItem{ProductID: "b", Name: "Product B", Price: 500, Quantity: 3})

	// Act
	payload := BuildViewCart(catalog, cart)

	// Assert
	assert.Equal(t, 3500, payload.Value)
	assert.Len(t, payload.Items, 2)
	assert.Equal(t, "tops", payload.Items[0].ItemCategory)
	assert.Equal(t, 2, payload.Items[0].Quantity)
}

func TestBuildBeginCheckoutMatchesViewCart(t *testing.T) {
	// Arrange
	catalog := testCatalog()
	cart := NewCart()
	_ = cart.Add(CartItem{ProductID: "a", Name: "Product A", Price: 1000, Quantity: 2})

	// Act / Assert
	assert.Equal(t, BuildViewCart(catalog, cart), BuildBeginCheckout(catalog, cart))
}

func TestCartItemsOmitCategoryForUnresolvableProduct(t *testing.T) {
	// Arrange: the product was removed from the catalog after the add
	catalog := testCatalog()
	cart := NewCart()
	_ = cart.Add(CartItem{ProductID: "gone", Name: "Removed", Price: 700, Quantity: 1})

	// Act
	payload := BuildViewCart(catalog, cart)

	// Assert: category is absent, the event still carries the line
	assert.Len(t, payload.Items, 1)
	assert.Empty(t, payload.Items[0].ItemCategory)
	assert.Equal(t, 700, payload.Value)
}

func TestBuildViewPromotionDefaults(t *testing.T) {
	// Act
	withDefaults := BuildViewPromotion("", "")
	explicit := BuildViewPromotion("promo_42", "Summer Sale")

	// Assert
	assert.Equal(t, DefaultPromotionID, withDefaults.PromotionID)
	assert.Equal(t, DefaultPromotionName, withDefaults.PromotionName)
	assert.Equal(t, "promo_42", explicit.PromotionID)
	assert.Equal(t, "Summer Sale", explicit.PromotionName)
}

func TestBuildAddShippingInfoUsesGrandTotal(t *testing.T) {
	// Arrange
	catalog := testCatalog()
	cart := NewCart()
	_ = cart.Add(CartItem{ProductID: "a", Name: "Product A", Price: 1000, Quantity: 2})

	// Act
	payload := BuildAddShippingInfo(catalog, cart, "")

	// Assert: value is subtotal + fixed shipping
	assert.Equal(t, 2000+ShippingCost, payload.Value)
	assert.Equal(t, DefaultShippingTier, payload.ShippingTier)
}

func TestBuildAddPaymentInfo(t *testing.T) {
	// Arrange
	catalog := testCatalog()
	cart := NewCart()
	_ = cart.Add(CartItem{ProductID: "a", Name: "Product A", Price: 1000, Quantity: 1})

	// Act
	payload := BuildAddPaymentInfo(catalog, cart, "credit_card")

	// Assert
	assert.Equal(t, 1000+ShippingCost, payload.Value)
	assert.Equal(t, "credit_card", payload.PaymentType)
}

func TestBuildPurchase(t *testing.T) {
	// Arrange
	catalog := testCatalog()
	cart := NewCart()
	_ = cart.Add(CartItem{ProductID: "a", Name: "Product A", Price: 1000, Quantity: 2, Variant: Variant{"Size": "M"}})

	// Act
	payload := BuildPurchase(catalog, cart, "T-123")

	// Assert
	assert.Equal(t, "T-123", payload.TransactionID)
	assert.Equal(t, ShippingCost, payload.Shipping)
	assert.Equal(t, 2000+ShippingCost, payload.Value)
	assert.Equal(t, "M", payload.Items[0].ItemVariant)
}
