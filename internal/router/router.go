package router

import (
	"github.com/gin-gonic/gin"
	"github.com/nothingdao/solana-support/internal/config"
	"github.com/nothingdao/solana-support/internal/handler"
	"github.com/nothingdao/solana-support/internal/logic"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, ledger logic.LedgerClient, cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "solana-support",
		})
	})

	donationHandler := handler.NewDonationHandler(db, ledger)
	r.POST("/donations", donationHandler.SubmitDonation)

	projectHandler := handler.NewProjectHandler(db)
	projects := r.Group("/projects")
	{
		projects.POST("", projectHandler.CreateProject)
		projects.GET("", projectHandler.GetProjects)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PUT("/:id", projectHandler.UpdateProject)
	}

	badgeHandler := handler.NewBadgeHandler(db)
	r.GET("/badge/:id", badgeHandler.GetBadge)
	// Missing id is a client error, not a 404
	r.GET("/badge", badgeHandler.GetBadge)

	return r
}

// corsMiddleware keeps the API embeddable from any origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
