package main

// AddToCartRequest representa a requisição para adicionar um item ao carrinho
type AddToCartRequest struct {
	ProductID string            `json:"product_id" binding:"required"`
	Quantity  int               `json:"quantity" binding:"required,gt=0"`
	Variant   map[string]string `json:"variant"`
}

// SelectItemRequest representa a ativação de um card de produto em uma lista
type SelectItemRequest struct {
	ItemListID   string `json:"item_list_id" binding:"required"`
	ItemListName string `json:"item_list_name" binding:"required"`
	ProductID    string `json:"product_id" binding:"required"`
	// Index é a posição 1-based do card na lista renderizada
	Index int `json:"index" binding:"required,gt=0"`
}

// PromotionRequest representa o clique em um banner promocional; campos
// vazios caem nos valores padrão do banner da home
type PromotionRequest struct {
	PromotionID   string `json:"promotion_id"`
	PromotionName string `json:"promotion_name"`
}

// ShippingRequest representa o envio do formulário de entrega
type ShippingRequest struct {
	ShippingTier string `json:"shipping_tier"`
}

// PaymentRequest representa o envio do formulário de pagamento
type PaymentRequest struct {
	PaymentType string `json:"payment_type" binding:"required"`
}
