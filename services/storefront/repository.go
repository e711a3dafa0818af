package main

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartRepository define o slot durável que guarda cada carrinho serializado
type CartRepository interface {
	// Load retorna o carrinho serializado de um cart id; nil quando ausente
	Load(ctx context.Context, cartID string) ([]byte, error)

	// Save grava o carrinho serializado inteiro (write-through)
	Save(ctx context.Context, cartID string, raw []byte) error

	// Delete remove o slot persistido
	Delete(ctx context.Context, cartID string) error
}

// PostgresCartRepository implementa CartRepository usando PostgreSQL,
// uma linha JSONB por cart id
type PostgresCartRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCartRepository cria uma nova instância de PostgresCartRepository
func NewPostgresCartRepository(db *pgxpool.Pool) CartRepository {
	return &PostgresCartRepository{
		db: db,
	}
}

// Load retorna o carrinho serializado de um cart id
func (r *PostgresCartRepository) Load(ctx context.Context, cartID string) ([]byte, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, "SELECT items FROM carts WHERE id = $1", cartID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Save grava o carrinho serializado inteiro
func (r *PostgresCartRepository) Save(ctx context.Context, cartID string, raw []byte) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO carts (id, items, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET items = $2, updated_at = NOW()
	`, cartID, raw)
	return err
}

// Delete remove o slot persistido
func (r *PostgresCartRepository) Delete(ctx context.Context, cartID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM carts WHERE id = $1", cartID)
	return err
}

// MemoryCartRepository implementa CartRepository em memória; usado nos
// testes e em execução sem banco (CART_BACKEND=memory)
type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewMemoryCartRepository cria uma nova instância de MemoryCartRepository
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: make(map[string][]byte),
	}
}

// Load retorna o carrinho serializado de um cart id; nil quando ausente
func (r *MemoryCartRepository) Load(ctx context.Context, cartID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, ok := r.carts[cartID]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// Save grava o carrinho serializado inteiro
func (r *MemoryCartRepository) Save(ctx context.Context, cartID string, raw []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]byte, len(raw))
	copy(stored, raw)
	r.carts[cartID] = stored
	return nil
}

// Delete remove o slot persistido
func (r *MemoryCartRepository) Delete(ctx context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, cartID)
	return nil
}
