package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mfadhli/eventra/internal/ticketing"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

func TicketingMiddleware(svc *ticketing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("ticketing", svc)
		c.Next()
	}
}
