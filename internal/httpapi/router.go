package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rudra-raghu108/mist-backend/internal/common"
	"github.com/rudra-raghu108/mist-backend/internal/config"
	"github.com/rudra-raghu108/mist-backend/internal/httpapi/handlers"
	"github.com/rudra-raghu108/mist-backend/internal/httpapi/middleware"
	"github.com/rudra-raghu108/mist-backend/internal/store/rabbitmq"
	"github.com/rudra-raghu108/mist-backend/internal/store/redisstore"
)

func NewRouter(db *gorm.DB, cfg config.Config, rds *redisstore.Store, rabbit *rabbitmq.Publisher) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(cors.Default())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.Use(middleware.RequestID())

	h := handlers.NewHandler(db, cfg, rds, rabbit)

	r.GET("/ping", h.Ping)

	// captcha
	r.POST("/captcha", middleware.RateLimit(rds, "captcha", 5, time.Minute), h.SendCaptcha)

	// CRUD users register
	r.POST("/users", h.CreateUser)
	r.GET("/users/:id", h.GetUserByID)

	// auth
	r.POST("/login", middleware.RateLimit(rds, "login", 10, time.Minute), h.Login)
	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthRequired(cfg.JWTSecret))
	authGroup.GET("/me", h.Me)

	// Chat (JWT required)
	authGroup.POST("/chat/sessions", h.CreateChatSession)
	authGroup.GET("/chat/sessions", h.ListChatSessions)
	authGroup.POST("/chat/messages", h.SendChatMessage)
	authGroup.GET("/chat/sessions/:session_id/messages", h.ListChatMessages)

	// AI training (JWT required)
	authGroup.POST("/ai/examples", h.AddTrainingExample)
	authGroup.POST("/ai/responses", h.AddCustomResponse)
	authGroup.GET("/ai/responses", h.ListCustomResponses)
	authGroup.GET("/ai/profile", h.GetAIProfile)
	authGroup.PUT("/ai/profile", h.UpdateAIProfile)
	authGroup.POST("/ai/train", h.TrainAI)
	authGroup.GET("/ai/jobs/:job_id", h.GetTrainJob)
	authGroup.GET("/ai/suggestions", h.GetSuggestions)

	// scaffolded, to be implemented
	r.GET("/faq", h.GetFAQ)
	authGroup.GET("/analytics/summary", h.AnalyticsSummary)
	authGroup.POST("/scrape", h.StartScrape)

	return r
}
