package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/ds"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/middleware"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/pkg/auth"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/risk"
)

// startSession issues a JWT and a Redis session for the user.
func (h *Handler) startSession(ctx *gin.Context, user *ds.User) (token, sessionID string, err error) {
	token, err = h.JWTService.Generate(user.ID, user.Login, user.IsModerator)
	if err != nil {
		return "", "", err
	}

	sessionID = uuid.New().String()
	data := auth.SessionData{
		UserID:      user.ID,
		Login:       user.Login,
		IsModerator: user.IsModerator,
	}
	if err := h.SessionService.Create(ctx.Request.Context(), sessionID, data); err != nil {
		return "", "", err
	}

	ctx.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	return token, sessionID, nil
}

// ApiRegisterUser registers a new user
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Router /api/users/register [post]
func (h *Handler) ApiRegisterUser(ctx *gin.Context) {
	type requestBody struct {
		Login       string `json:"login" binding:"required,min=3,max=50"`
		Password    string `json:"password" binding:"required,min=6"`
		IsModerator *bool  `json:"is_moderator,omitempty"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	if existing, err := h.Repository.GetUserByLogin(body.Login); err == nil && existing != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	isMod := false
	if body.IsModerator != nil {
		isMod = *body.IsModerator
	}
	user := &ds.User{
		Login:       body.Login,
		Password:    string(hashedPassword),
		IsModerator: isMod,
	}

	if err := h.Repository.CreateUser(user); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	token, sessionID, err := h.startSession(ctx, user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	jsonResponse(ctx, gin.H{"user": user, "token": token, "session_id": sessionID}, 1, gin.H{})
}

// ApiLogin logs a user in
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Router /api/users/login [post]
func (h *Handler) ApiLogin(ctx *gin.Context) {
	type requestBody struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	user, err := h.Repository.GetUserByLogin(body.Login)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, sessionID, err := h.startSession(ctx, user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	jsonResponse(ctx, gin.H{"user": user, "token": token, "session_id": sessionID}, 1, gin.H{})
}

// ApiLogout drops the session
// @Summary Log out
// @Tags auth
// @Produce json
// @Router /api/users/logout [post]
func (h *Handler) ApiLogout(ctx *gin.Context) {
	if sessionID, err := ctx.Cookie("session_id"); err == nil && sessionID != "" {
		_ = h.SessionService.Delete(ctx.Request.Context(), sessionID)
	}
	ctx.SetCookie("session_id", "", -1, "/", "", false, true)

	jsonResponse(ctx, gin.H{"message": "logged out"}, 1, gin.H{})
}

// ApiGetProfile returns the current user's profile
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Router /api/users/profile [get]
func (h *Handler) ApiGetProfile(ctx *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	// minimal=true -> short profile with prediction aggregates
	if ctx.Query("minimal") == "true" {
		lowCnt, err := h.Repository.CountUserPredictionsByClassification(userID, string(risk.LowRisk))
		if err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
		highCnt, err := h.Repository.CountUserPredictionsByClassification(userID, string(risk.HighRisk))
		if err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"id":           user.ID,
			"login":        user.Login,
			"is_moderator": user.IsModerator,
			"predictions": gin.H{
				"low_risk":  lowCnt,
				"high_risk": highCnt,
			},
		})
		return
	}

	jsonResponse(ctx, gin.H{"user": user}, 1, gin.H{})
}

// ApiUpdateProfile updates the current user's profile
// @Summary Update profile
// @Tags auth
// @Accept json
// @Produce json
// @Router /api/users/profile [put]
func (h *Handler) ApiUpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	type requestBody struct {
		Login *string `json:"login,omitempty"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	fields := map[string]interface{}{}
	if body.Login != nil {
		fields["login"] = *body.Login
	}
	if len(fields) > 0 {
		if err := h.Repository.UpdateUser(userID, fields); err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	}

	user, _ := h.Repository.GetUserByID(userID)
	jsonResponse(ctx, gin.H{"user": user}, 1, gin.H{})
}
