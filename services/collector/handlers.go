package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HandleCollect handler que recebe um evento de e-commerce e o armazena
func HandleCollect(repository EventRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CollectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		event := &EventRecord{
			ID:         uuid.New().String(),
			Name:       req.Name,
			Payload:    req.Payload,
			ReceivedAt: time.Now(),
		}

		if err := repository.SaveEvent(c.Request.Context(), event); err != nil {
			log.Printf("❌ Failed to store event %s: %v", req.Name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		log.Printf("📊 Event collected: %s (%s)", event.Name, event.ID)
		c.JSON(http.StatusOK, gin.H{"result": "success", "event_id": event.ID})
	}
}

// HandleRecent handler que lista os últimos eventos coletados (debug)
func HandleRecent(repository EventRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 1 || limit > 500 {
			limit = 50
		}

		events, err := repository.RecentEvents(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// HandleHealth handler para health check
func HandleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "collector-service"})
	}
}
