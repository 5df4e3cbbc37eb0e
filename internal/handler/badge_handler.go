package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nothingdao/solana-support/internal/badge"
	"github.com/nothingdao/solana-support/internal/logger"
	"github.com/nothingdao/solana-support/internal/logic"
	"gorm.io/gorm"
)

// BadgeHandler serves the embeddable SVG badge. Errors are plain text
// since the response is consumed as an image.
type BadgeHandler struct {
	projectLogic *logic.ProjectLogic
}

func NewBadgeHandler(db *gorm.DB) *BadgeHandler {
	return &BadgeHandler{
		projectLogic: logic.NewProjectLogic(db),
	}
}

// GetBadge handles GET /badge/:id.
func (h *BadgeHandler) GetBadge(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.String(http.StatusBadRequest, "Project ID required")
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		if errors.Is(err, logic.ErrProjectNotFound) {
			c.String(http.StatusNotFound, "Project not found")
			return
		}
		logger.Error("Failed to render badge: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Data(http.StatusOK, "image/svg+xml", []byte(badge.Render(project.Raised)))
}
