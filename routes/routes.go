package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mdarmaan6204/nutri-tracker/config"
	"github.com/mdarmaan6204/nutri-tracker/controllers"
	"github.com/mdarmaan6204/nutri-tracker/middlewares"
	"github.com/mdarmaan6204/nutri-tracker/services"
)

type Deps struct {
	Cfg       config.Config
	DB        *gorm.DB
	Logger    *logrus.Logger
	Tokens    *services.TokenService
	Auth      *controllers.AuthController
	Meals     *controllers.MealController
	Summaries *controllers.SummaryController
}

func SetupRouter(deps Deps) *gin.Engine {
	if deps.Cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middlewares.RequestLogger(deps.Logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		deps.Logger.Errorf("panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", healthHandler(deps))

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", deps.Auth.Signup)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/logout", deps.Auth.Logout)
		auth.GET("/profile", middlewares.AuthMiddleware(deps.Tokens), deps.Auth.Profile)
	}

	meals := r.Group("/api/meals")
	{
		// The photo prediction endpoint is deliberately open: the client
		// calls it before the user has necessarily signed in.
		meals.POST("/add", deps.Meals.Add)

		authed := meals.Group("", middlewares.AuthMiddleware(deps.Tokens))
		{
			authed.POST("/save", deps.Meals.Save)
			authed.GET("/history", deps.Meals.History)
			authed.GET("/all", deps.Meals.All)
			authed.DELETE("/:id", deps.Meals.Delete)
			authed.GET("/daily/:date", deps.Summaries.Daily)
			authed.GET("/monthly/:year/:month", deps.Summaries.Monthly)
		}
	}

	return r
}

func healthHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		database := "connected"
		if deps.DB == nil {
			database = "disconnected"
		} else if sqlDB, err := deps.DB.DB(); err != nil {
			database = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := sqlDB.PingContext(ctx); err != nil {
				database = "disconnected"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"database":    database,
			"timestamp":   time.Now().Format(time.RFC3339),
			"environment": deps.Cfg.Environment,
		})
	}
}
