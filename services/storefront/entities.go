package main

import (
	"errors"
	"sort"
	"strings"
)

// Product representa um produto do catálogo (somente leitura)
type Product struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Price       int                 `json:"price"`
	Category    string              `json:"category"`
	Image       string              `json:"image"`
	Description string              `json:"description"`
	Options     map[string][]string `json:"options,omitempty"`
}

// Variant holds the option values selected for a line item (e.g. size, color).
type Variant map[string]string

// Key returns the canonical form of the variant: option labels sorted,
// so that {"Size":"M","Color":"Red"} and {"Color":"Red","Size":"M"} compare equal.
func (v Variant) Key() string {
	if len(v) == 0 {
		return ""
	}
	labels := make([]string, 0, len(v))
	for label := range v {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	pairs := make([]string, 0, len(labels))
	for _, label := range labels {
		pairs = append(pairs, label+"="+v[label])
	}
	return strings.Join(pairs, "&")
}

// Join returns the selected values joined by "/", the item_variant wire format.
func (v Variant) Join() string {
	if len(v) == 0 {
		return ""
	}
	labels := make([]string, 0, len(v))
	for label := range v {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	values := make([]string, 0, len(labels))
	for _, label := range labels {
		values = append(values, v[label])
	}
	return strings.Join(values, "/")
}

// CartItem representa uma linha do carrinho. Price é o preço no momento da
// primeira adição e nunca é relido do catálogo.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     int     `json:"price"`
	Quantity  int     `json:"quantity"`
	Variant   Variant `json:"variant,omitempty"`
}

// identityKey is the merge/dedup key: same product and same canonical variant.
func (i CartItem) identityKey() string {
	return i.ProductID + "|" + i.Variant.Key()
}

// Cart representa o carrinho: uma sequência ordenada de linhas
type Cart struct {
	Items []CartItem `json:"items"`
}

// NewCart cria um carrinho vazio
func NewCart() *Cart {
	return &Cart{}
}

// Add merges the item into an existing line sharing the identity key, or
// appends a new line. On merge only the quantity grows; the stored price and
// variant of the existing line win over the incoming ones.
func (c *Cart) Add(item CartItem) error {
	if item.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}

	key := item.identityKey()
	for i := range c.Items {
		if c.Items[i].identityKey() == key {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}

	c.Items = append(c.Items, item)
	return nil
}

// TotalUnits retorna a soma das quantidades de todas as linhas
func (c *Cart) TotalUnits() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal retorna a soma de preço × quantidade de todas as linhas
func (c *Cart) Subtotal() int {
	total := 0
	for _, item := range c.Items {
		total += item.Price * item.Quantity
	}
	return total
}

// IsEmpty informa se o carrinho não tem linhas
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
