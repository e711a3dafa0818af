package main

import (
	"context"
	"database/sql"
	"fmt"
)

// EventRepository define a interface de armazenamento dos eventos coletados
type EventRepository interface {
	// SaveEvent grava um evento recebido
	SaveEvent(ctx context.Context, event *EventRecord) error

	// RecentEvents retorna os últimos eventos recebidos, mais novos primeiro
	RecentEvents(ctx context.Context, limit int) ([]EventRecord, error)
}

// PostgresEventRepository implementa EventRepository usando PostgreSQL
type PostgresEventRepository struct {
	db *sql.DB
}

// NewPostgresEventRepository cria uma nova instância de PostgresEventRepository
func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &PostgresEventRepository{
		db: db,
	}
}

// SaveEvent grava um evento recebido
func (r *PostgresEventRepository) SaveEvent(ctx context.Context, event *EventRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO commerce_events (id, name, payload, received_at)
		VALUES ($1, $2, $3, $4)
	`, event.ID, event.Name, []byte(event.Payload), event.ReceivedAt)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// RecentEvents retorna os últimos eventos recebidos, mais novos primeiro
func (r *PostgresEventRepository) RecentEvents(ctx context.Context, limit int) ([]EventRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, payload, received_at
		FROM commerce_events
		ORDER BY received_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var event EventRecord
		var payload []byte
		if err := rows.Scan(&event.ID, &event.Name, &payload, &event.ReceivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Payload = payload
		events = append(events, event)
	}

	return events, rows.Err()
}
