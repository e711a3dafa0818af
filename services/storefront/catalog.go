package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// Catalog guarda a lista ordenada de produtos carregada uma vez por processo
type Catalog struct {
	products []Product
	byID     map[string]Product
}

// NewCatalog cria um catálogo a partir de uma lista de produtos
func NewCatalog(products []Product) *Catalog {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// Products retorna todos os produtos na ordem do catálogo
func (c *Catalog) Products() []Product {
	return c.products
}

// Recommended returns the first n products, the home page recommendation set.
func (c *Catalog) Recommended(n int) []Product {
	if n > len(c.products) {
		n = len(c.products)
	}
	return c.products[:n]
}

// FindByID busca um produto pelo ID
func (c *Catalog) FindByID(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len retorna o número de produtos no catálogo
func (c *Catalog) Len() int {
	return len(c.products)
}

// LoadCatalog loads the product list from CATALOG_URL when set, otherwise
// from CATALOG_FILE. Callers are expected to keep serving with an empty
// catalog when this fails; pages render not-found states instead of crashing.
func LoadCatalog() (*Catalog, error) {
	if url := os.Getenv("CATALOG_URL"); url != "" {
		products, err := fetchCatalog(url)
		if err != nil {
			return nil, err
		}
		return NewCatalog(products), nil
	}

	path := getEnv("CATALOG_FILE", "products.json")
	products, err := readCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(products), nil
}

func fetchCatalog(url string) ([]Product, error) {
	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching catalog: unexpected status %s", resp.Status())
	}

	var products []Product
	if err := json.Unmarshal(resp.Body(), &products); err != nil {
		return nil, fmt.Errorf("parsing catalog response: %w", err)
	}

	return products, nil
}

func readCatalogFile(path string) ([]Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	return products, nil
}
