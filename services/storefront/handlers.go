package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const cartCookieName = "cart_id"

// PageHandler contém os handlers HTTP das páginas e ações da loja
type PageHandler struct {
	catalog  *Catalog
	carts    *CartUseCase
	checkout *CheckoutUseCase
	pipeline *Pipeline
	tracer   trace.Tracer
}

// NewPageHandler cria uma nova instância de PageHandler
func NewPageHandler(catalog *Catalog, carts *CartUseCase, checkout *CheckoutUseCase, pipeline *Pipeline, tracer trace.Tracer) *PageHandler {
	return &PageHandler{
		catalog:  catalog,
		carts:    carts,
		checkout: checkout,
		pipeline: pipeline,
		tracer:   tracer,
	}
}

// cartID returns the client's cart id cookie, issuing one on first touch.
// One slot per client; concurrent tabs share it, last writer wins.
func (h *PageHandler) cartID(c *gin.Context) string {
	if id, err := c.Cookie(cartCookieName); err == nil && id != "" {
		return id
	}
	id := uuid.New().String()
	c.SetCookie(cartCookieName, id, int((30 * 24 * time.Hour).Seconds()), "/", "", false, true)
	return id
}

// Home renderiza a página inicial com os produtos recomendados
func (h *PageHandler) Home(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "page_home")
	defer span.End()

	cartID := h.cartID(c)
	products := h.catalog.Recommended(4)
	span.SetAttributes(attribute.Int("products", len(products)))

	h.pipeline.FireEvent(ctx, EventViewItemList, BuildViewItemList(HomeListID, HomeListName, products))

	c.JSON(http.StatusOK, gin.H{
		"page":           "home",
		"item_list_id":   HomeListID,
		"item_list_name": HomeListName,
		"products":       products,
		"cart_count":     h.carts.GetCart(ctx, cartID).TotalUnits(),
	})
}

// Products renderiza a lista completa de produtos
func (h *PageHandler) Products(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "page_products")
	defer span.End()

	cartID := h.cartID(c)
	products := h.catalog.Products()
	span.SetAttributes(attribute.Int("products", len(products)))

	h.pipeline.FireEvent(ctx, EventViewItemList, BuildViewItemList(AllProductsListID, AllProductsListName, products))

	c.JSON(http.StatusOK, gin.H{
		"page":           "products",
		"item_list_id":   AllProductsListID,
		"item_list_name": AllProductsListName,
		"products":       products,
		"cart_count":     h.carts.GetCart(ctx, cartID).TotalUnits(),
	})
}

// ProductDetail renderiza a página de detalhe de um produto
func (h *PageHandler) ProductDetail(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "page_product_detail")
	defer span.End()

	productID := c.Param("id")
	span.SetAttributes(attribute.String("product_id", productID))

	product, ok := h.catalog.FindByID(productID)
	if !ok {
		// Data-unavailable degrades to a not-found page, never a crash
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	h.pipeline.FireEvent(ctx, EventViewItem, BuildViewItem(product))

	c.JSON(http.StatusOK, gin.H{
		"page":       "product-detail",
		"product":    product,
		"cart_count": h.carts.GetCart(ctx, h.cartID(c)).TotalUnits(),
	})
}

// CartPage renderiza o carrinho; view_cart só dispara com carrinho não vazio
func (h *PageHandler) CartPage(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "page_cart")
	defer span.End()

	cartID := h.cartID(c)
	cart := h.carts.GetCart(ctx, cartID)
	span.SetAttributes(attribute.Int("cart_units", cart.TotalUnits()))

	if !cart.IsEmpty() {
		h.pipeline.FireEvent(ctx, EventViewCart, BuildViewCart(h.catalog, cart))
	}

	c.JSON(http.StatusOK, gin.H{
		"page":       "cart",
		"items":      cart.Items,
		"subtotal":   cart.Subtotal(),
		"cart_count": cart.TotalUnits(),
	})
}

// CheckoutPage renderiza o resumo do pedido com os totais derivados
func (h *PageHandler) CheckoutPage(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "page_checkout")
	defer span.End()

	cartID := h.cartID(c)
	cart := h.carts.GetCart(ctx, cartID)
	subtotal, shipping, grandTotal := h.checkout.Totals(cart)
	span.SetAttributes(attribute.Int("grand_total", grandTotal))

	c.JSON(http.StatusOK, gin.H{
		"page":        "checkout",
		"items":       cart.Items,
		"subtotal":    subtotal,
		"shipping":    shipping,
		"grand_total": grandTotal,
		"cart_count":  cart.TotalUnits(),
	})
}

// Confirmation renderiza a confirmação ecoando o transaction id recebido
func (h *PageHandler) Confirmation(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "page_confirmation")
	defer span.End()

	tid := c.Query("tid")
	span.SetAttributes(attribute.String("transaction_id", tid))

	c.JSON(http.StatusOK, gin.H{
		"page":           "confirmation",
		"transaction_id": tid,
	})
}

// AddToCart adiciona um item ao carrinho e dispara add_to_cart
func (h *PageHandler) AddToCart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "add_to_cart")
	defer span.End()

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, ok := h.catalog.FindByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	span.SetAttributes(
		attribute.String("product_id", req.ProductID),
		attribute.Int("quantity", req.Quantity),
	)

	cartID := h.cartID(c)
	variant := Variant(req.Variant)
	cart, err := h.carts.AddItem(ctx, cartID, CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  req.Quantity,
		Variant:   variant,
	})
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.pipeline.FireEvent(ctx, EventAddToCart, BuildAddToCart(product, variant, req.Quantity))

	c.JSON(http.StatusOK, gin.H{
		"result":     "success",
		"cart_count": cart.TotalUnits(),
	})
}

// SelectItem dispara select_item para um card ativado em uma lista
func (h *PageHandler) SelectItem(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "select_item")
	defer span.End()

	var req SelectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, ok := h.catalog.FindByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	h.pipeline.FireEvent(ctx, EventSelectItem, BuildSelectItem(req.ItemListID, req.ItemListName, product, req.Index))

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// Promotion dispara view_promotion para o clique em um banner
func (h *PageHandler) Promotion(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "view_promotion")
	defer span.End()

	// Banner metadata is optional; builders fall back to the defaults
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = PromotionRequest{}
	}

	h.pipeline.FireEvent(ctx, EventViewPromotion, BuildViewPromotion(req.PromotionID, req.PromotionName))

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// BeginCheckout dispara begin_checkout na transição carrinho → checkout
func (h *PageHandler) BeginCheckout(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "begin_checkout")
	defer span.End()

	cart := h.carts.GetCart(ctx, h.cartID(c))
	h.pipeline.FireEvent(ctx, EventBeginCheckout, BuildBeginCheckout(h.catalog, cart))

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// SubmitShipping dispara add_shipping_info para o formulário de entrega
func (h *PageHandler) SubmitShipping(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "add_shipping_info")
	defer span.End()

	var req ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = ShippingRequest{}
	}

	h.checkout.SubmitShipping(ctx, h.cartID(c), req.ShippingTier)

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// SubmitPayment dispara add_payment_info para o formulário de pagamento
func (h *PageHandler) SubmitPayment(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "add_payment_info")
	defer span.End()

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.checkout.SubmitPayment(ctx, h.cartID(c), req.PaymentType)

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// Purchase confirma a compra, dispara purchase e esvazia o carrinho
func (h *PageHandler) Purchase(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "purchase")
	defer span.End()

	cartID := h.cartID(c)
	transactionID, err := h.checkout.Purchase(ctx, cartID)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.String("transaction_id", transactionID))

	c.JSON(http.StatusOK, gin.H{
		"result":         "success",
		"transaction_id": transactionID,
		"location":       "/pages/confirmation?tid=" + transactionID,
	})
}

// HealthCheck verifica a saúde do serviço
func (h *PageHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storefront-service",
	})
}
