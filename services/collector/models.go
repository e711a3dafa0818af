package main

import (
	"encoding/json"
	"time"
)

// EventRecord representa um evento de analytics armazenado
type EventRecord struct {
	ID         string          `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	Payload    json.RawMessage `json:"payload" db:"payload"`
	ReceivedAt time.Time       `json:"received_at" db:"received_at"`
}

// CollectRequest representa a requisição de coleta de um evento.
// Payload é armazenado como recebido, sem validação de forma.
type CollectRequest struct {
	Name    string          `json:"name" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}
