package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/services"
	"gorm.io/gorm"
)

type ReferenceHandler struct {
	ReferenceService *services.ReferenceService
}

func NewReferenceHandler(s *services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{ReferenceService: s}
}

// ListReferences is GET /references/, the choices for forms and filters.
func (h *ReferenceHandler) ListReferences(c *gin.Context) {
	refs, err := h.ReferenceService.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, refs)
}

// HealthCheck reports whether the database answers.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
