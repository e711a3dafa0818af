package main

// Constantes do plano de mensuração da loja
const (
	CurrencyKRW = "KRW"

	// ShippingCost é o frete fixo, somado ao subtotal em todo checkout
	ShippingCost = 3000

	DefaultShippingTier  = "Standard Shipping"
	DefaultPromotionID   = "home_banner_01"
	DefaultPromotionName = "Spring Sale"

	HomeListID          = "home_recommendations"
	HomeListName        = "홈 추천 상품"
	AllProductsListID   = "all_products_list"
	AllProductsListName = "전체 상품 목록"
)

// BuildViewItemList monta o payload de view_item_list para uma lista
// renderizada; index é a posição na lista, começando em 1
func BuildViewItemList(listID, listName string, products []Product) Payload {
	items := make([]CommerceItem, 0, len(products))
	for i, p := range products {
		items = append(items, CommerceItem{
			ItemID:       p.ID,
			ItemName:     p.Name,
			Price:        p.Price,
			ItemCategory: p.Category,
			Index:        i + 1,
		})
	}

	return Payload{
		ItemListID:   listID,
		ItemListName: listName,
		Items:        items,
	}
}

// BuildSelectItem monta o payload de select_item para um card ativado;
// index é a posição do produto na lista renderizada, começando em 1
func BuildSelectItem(listID, listName string, product Product, index int) Payload {
	return Payload{
		ItemListID:   listID,
		ItemListName: listName,
		Items: []CommerceItem{{
			ItemID:       product.ID,
			ItemName:     product.Name,
			Price:        product.Price,
			ItemCategory: product.Category,
			Index:        index,
		}},
	}
}

// BuildViewItem monta o payload de view_item para a página de detalhe
func BuildViewItem(product Product) Payload {
	return Payload{
		Currency: CurrencyKRW,
		Value:    product.Price,
		Items: []CommerceItem{{
			ItemID:       product.ID,
			ItemName:     product.Name,
			Price:        product.Price,
			ItemCategory: product.Category,
		}},
	}
}

// BuildAddToCart monta o payload de add_to_cart; value é o preço unitário
func BuildAddToCart(product Product, variant Variant, quantity int) Payload {
	return Payload{
		Currency: CurrencyKRW,
		Value:    product.Price,
		Items: []CommerceItem{{
			ItemID:       product.ID,
			ItemName:     product.Name,
			Price:        product.Price,
			ItemCategory: product.Category,
			ItemVariant:  variant.Join(),
			Quantity:     quantity,
		}},
	}
}

// cartCommerceItems maps cart lines to the fixed item shape. Category is
// re-resolved against the catalog by product id; a product that no longer
// resolves reports no category instead of failing the event.
func cartCommerceItems(catalog *Catalog, cart *Cart) []CommerceItem {
	items := make([]CommerceItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		category := ""
		if p, ok := catalog.FindByID(line.ProductID); ok {
			category = p.Category
		}
		items = append(items, CommerceItem{
			ItemID:       line.ProductID,
			ItemName:     line.Name,
			Price:        line.Price,
			ItemCategory: category,
			ItemVariant:  line.Variant.Join(),
			Quantity:     line.Quantity,
		})
	}
	return items
}

// BuildViewCart monta o payload de view_cart; value é o subtotal do carrinho
func BuildViewCart(catalog *Catalog, cart *Cart) Payload {
	return Payload{
		Currency: CurrencyKRW,
		Value:    cart.Subtotal(),
		Items:    cartCommerceItems(catalog, cart),
	}
}

// BuildBeginCheckout monta o payload de begin_checkout, com os mesmos
// items e value de view_cart
func BuildBeginCheckout(catalog *Catalog, cart *Cart) Payload {
	return Payload{
		Currency: CurrencyKRW,
		Value:    cart.Subtotal(),
		Items:    cartCommerceItems(catalog, cart),
	}
}

// BuildViewPromotion monta o payload de view_promotion; campos ausentes
// caem nos valores padrão do banner da home
func BuildViewPromotion(promotionID, promotionName string) Payload {
	if promotionID == "" {
		promotionID = DefaultPromotionID
	}
	if promotionName == "" {
		promotionName = DefaultPromotionName
	}
	return Payload{
		PromotionID:   promotionID,
		PromotionName: promotionName,
	}
}

// BuildAddShippingInfo monta o payload de add_shipping_info; value é o
// total geral (subtotal + frete)
func BuildAddShippingInfo(catalog *Catalog, cart *Cart, shippingTier string) Payload {
	if shippingTier == "" {
		shippingTier = DefaultShippingTier
	}
	return Payload{
		Currency:     CurrencyKRW,
		Value:        cart.Subtotal() + ShippingCost,
		ShippingTier: shippingTier,
		Items:        cartCommerceItems(catalog, cart),
	}
}

// BuildAddPaymentInfo monta o payload de add_payment_info com o método
// de pagamento selecionado
func BuildAddPaymentInfo(catalog *Catalog, cart *Cart, paymentType string) Payload {
	return Payload{
		Currency:    CurrencyKRW,
		Value:       cart.Subtotal() + ShippingCost,
		PaymentType: paymentType,
		Items:       cartCommerceItems(catalog, cart),
	}
}

// BuildPurchase monta o payload de purchase com o transaction id gerado
// para esta compra
func BuildPurchase(catalog *Catalog, cart *Cart, transactionID string) Payload {
	return Payload{
		Currency:      CurrencyKRW,
		Value:         cart.Subtotal() + ShippingCost,
		Shipping:      ShippingCost,
		TransactionID: transactionID,
		Items:         cartCommerceItems(catalog, cart),
	}
}
