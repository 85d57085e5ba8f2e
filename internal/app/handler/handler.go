package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/config"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/middleware"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/model"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/pkg/auth"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/repository"
)

type Handler struct {
	Repository     *repository.Repository
	Config         *config.Config
	Predictor      model.Predictor
	JWTService     *auth.JWTService
	SessionService *auth.SessionService
}

func NewHandler(r *repository.Repository, cfg *config.Config, p model.Predictor, jwtSvc *auth.JWTService, sessionSvc *auth.SessionService) *Handler {
	return &Handler{
		Repository:     r,
		Config:         cfg,
		Predictor:      p,
		JWTService:     jwtSvc,
		SessionService: sessionSvc,
	}
}

// RegisterHandler wires all API routes.
func (h *Handler) RegisterHandler(router *gin.Engine) {
	authSvc := &middleware.AuthService{JWT: h.JWTService, Session: h.SessionService}

	api := router.Group("/api")
	api.POST("/users/register", h.ApiRegisterUser)
	api.POST("/users/login", h.ApiLogin)
	api.POST("/users/logout", h.ApiLogout)

	authed := api.Group("", middleware.AuthMiddleware(authSvc))
	authed.GET("/users/profile", h.ApiGetProfile)
	authed.PUT("/users/profile", h.ApiUpdateProfile)

	authed.POST("/predictions", h.ApiCreatePrediction)
	authed.GET("/predictions", h.ApiListPredictions)
	authed.GET("/predictions/:id", h.ApiGetPrediction)
	authed.GET("/predictions/:id/report", h.ApiGetPredictionReport)
	authed.DELETE("/predictions/:id", h.ApiDeletePrediction)

	moderator := authed.Group("", middleware.RequireModeratorMiddleware())
	moderator.PUT("/predictions/:id/review", h.ApiReviewPrediction)
}

// errorHandler logs and renders a uniform error body.
func (h *Handler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	if err != nil {
		logrus.Error(err.Error())
	}
	ctx.JSON(errorStatusCode, gin.H{
		"status":      "error",
		"description": errMessage(err),
	})
}

func errMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func jsonResponse(ctx *gin.Context, data interface{}, count int64, meta gin.H) {
	ctx.JSON(200, gin.H{
		"status": "ok",
		"data":   data,
		"count":  count,
		"meta":   meta,
	})
}
