package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nothingdao/solana-support/internal/logger"
	"github.com/nothingdao/solana-support/internal/logic"
	"github.com/nothingdao/solana-support/internal/model"
	"gorm.io/gorm"
)

const recentDonationLimit = 10

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
	}
}

// CreateProject handles POST /projects.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	showGoal := true
	if req.ShowGoal != nil {
		showGoal = *req.ShowGoal
	}

	project := model.Project{
		Name:          req.Name,
		Description:   req.Description,
		WalletAddress: req.WalletAddress,
		Goal:          req.Goal,
		ShowGoal:      showGoal,
		Theme:         req.Theme,
		DevFeeEnabled: req.DevFeeEnabled,
		CustomMessage: req.CustomMessage,
	}

	if err := h.projectLogic.CreateProject(&project); err != nil {
		switch {
		case errors.Is(err, logic.ErrNameRequired),
			errors.Is(err, logic.ErrInvalidWallet),
			errors.Is(err, logic.ErrInvalidAmount),
			errors.Is(err, logic.ErrWalletTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create project: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjects handles GET /projects: active projects, newest first,
// each with its confirmed-donation count.
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectLogic.GetActiveProjects()
	if err != nil {
		logger.Error("Failed to list projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	counts, err := h.projectLogic.ConfirmedDonationCounts(ids)
	if err != nil {
		logger.Error("Failed to count donations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items := make([]projectListItem, len(projects))
	for i, p := range projects {
		items[i] = projectListItem{Project: p, DonationCount: counts[p.ID]}
	}

	c.JSON(http.StatusOK, items)
}

// GetProject handles GET /projects/:id: the project plus its 10 most
// recent confirmed donations.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectLogic.GetProject(c.Param("id"))
	if err != nil {
		if errors.Is(err, logic.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		logger.Error("Failed to fetch project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	donations, err := h.projectLogic.RecentConfirmedDonations(project.ID, recentDonationLimit)
	if err != nil {
		logger.Error("Failed to list donations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, projectDetail{Project: *project, Donations: donations})
}

// UpdateProject handles PUT /projects/:id. Only fields present in the
// body are touched; the raised total is never writable here.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": logic.ErrNameRequired.Error()})
			return
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Goal != nil {
		if !req.Goal.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": logic.ErrInvalidAmount.Error()})
			return
		}
		updates["goal"] = *req.Goal
	}
	if req.ShowGoal != nil {
		updates["show_goal"] = *req.ShowGoal
	}
	if req.Theme != nil {
		updates["theme"] = *req.Theme
	}
	if req.DevFeeEnabled != nil {
		updates["dev_fee_enabled"] = *req.DevFeeEnabled
	}
	if req.CustomMessage != nil {
		updates["custom_message"] = strings.TrimSpace(*req.CustomMessage)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	project, err := h.projectLogic.UpdateProject(c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, logic.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		logger.Error("Failed to update project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, project)
}
