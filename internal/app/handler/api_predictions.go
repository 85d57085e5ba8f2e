package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/ds"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/middleware"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/report"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/risk"
)

// healthRecordBody is the POST payload; pointers make every field required
// explicitly, false/zero included.
type healthRecordBody struct {
	FamilyHistory        *bool    `json:"family_history" binding:"required"`
	SaltConsumption      *string  `json:"salt_consumption" binding:"required"`
	SugarConsumption     *string  `json:"sugar_consumption" binding:"required"`
	ExerciseFrequency    *string  `json:"exercise_frequency" binding:"required"`
	SmokingStatus        *string  `json:"smoking_status" binding:"required"`
	BellyCircumferenceCM *float64 `json:"belly_circumference_cm" binding:"required"`
	WeightKG             *float64 `json:"weight_kg" binding:"required"`
	HeightCM             *float64 `json:"height_cm" binding:"required"`
}

func (b healthRecordBody) record() ds.HealthRecord {
	return ds.HealthRecord{
		FamilyHistory:        *b.FamilyHistory,
		SaltConsumption:      *b.SaltConsumption,
		SugarConsumption:     *b.SugarConsumption,
		ExerciseFrequency:    *b.ExerciseFrequency,
		SmokingStatus:        *b.SmokingStatus,
		BellyCircumferenceCM: *b.BellyCircumferenceCM,
		WeightKG:             *b.WeightKG,
		HeightCM:             *b.HeightCM,
	}
}

// ApiCreatePrediction runs the model on a submitted health record
// @Summary Submit a health record and get a risk prediction
// @Tags predictions
// @Accept json
// @Produce json
// @Router /api/predictions [post]
func (h *Handler) ApiCreatePrediction(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	var body healthRecordBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	rec := body.record()
	if err := rec.Validate(); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	probability, err := h.Predictor.Predict(rec)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	assessment, err := risk.Classify(probability)
	if err != nil {
		// out-of-range probability is a model defect, not a client error
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	row := &ds.PredictionRequest{
		UserID:               userID,
		Status:               ds.StatusCompleted,
		CreatedAt:            time.Now(),
		FamilyHistory:        rec.FamilyHistory,
		SaltConsumption:      rec.SaltConsumption,
		SugarConsumption:     rec.SugarConsumption,
		ExerciseFrequency:    rec.ExerciseFrequency,
		SmokingStatus:        rec.SmokingStatus,
		BellyCircumferenceCM: rec.BellyCircumferenceCM,
		WeightKG:             rec.WeightKG,
		HeightCM:             rec.HeightCM,
		Probability:          assessment.Probability,
		RiskLevel:            assessment.RiskLevel,
		Classification:       string(assessment.Classification),
		Recommendation:       assessment.Recommendation,
	}
	if err := h.Repository.CreatePrediction(row); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	jsonResponse(ctx, gin.H{"prediction": row, "assessment": assessment}, 1, gin.H{})
}

// ApiListPredictions lists predictions visible to the caller
// @Summary List predictions
// @Tags predictions
// @Produce json
// @Router /api/predictions [get]
func (h *Handler) ApiListPredictions(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	classification := ctx.Query("classification")
	from := ctx.Query("from")
	to := ctx.Query("to")

	// regular users see only their own rows, moderators see everything
	var userFilter *uint
	if !middleware.IsCurrentUserModerator(ctx) {
		userFilter = &userID
	}
	var classPtr *string
	if classification != "" {
		classPtr = &classification
	}

	list, err := h.Repository.ListPredictions(userFilter, classPtr, &from, &to)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	type predictionItem struct {
		ID             uint      `json:"id"`
		UserID         uint      `json:"user_id"`
		UserLogin      string    `json:"user_login"`
		Status         string    `json:"status"`
		CreatedAt      time.Time `json:"created_at"`
		Probability    float64   `json:"probability"`
		RiskLevel      string    `json:"risk_level"`
		Classification string    `json:"classification"`
		DoctorComment  string    `json:"doctor_comment,omitempty"`
	}

	resp := make([]predictionItem, 0, len(list))
	for _, p := range list {
		doctorComment := ""
		if p.DoctorComment.Valid {
			doctorComment = p.DoctorComment.String
		}
		resp = append(resp, predictionItem{
			ID:             p.ID,
			UserID:         p.UserID,
			UserLogin:      p.User.Login,
			Status:         p.Status,
			CreatedAt:      p.CreatedAt,
			Probability:    p.Probability,
			RiskLevel:      p.RiskLevel,
			Classification: p.Classification,
			DoctorComment:  doctorComment,
		})
	}
	jsonResponse(ctx, resp, int64(len(resp)), gin.H{"classification": classification, "from": from, "to": to})
}

// loadVisiblePrediction resolves :id and hides deleted rows and foreign rows
// from non-moderators.
func (h *Handler) loadVisiblePrediction(ctx *gin.Context) (*ds.PredictionRequest, bool) {
	id64, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return nil, false
	}

	p, err := h.Repository.GetPredictionByID(uint(id64))
	if err != nil || p == nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return nil, false
	}
	if p.Status == ds.StatusDeleted {
		ctx.Status(http.StatusNotFound)
		return nil, false
	}

	userID, _ := middleware.GetCurrentUserID(ctx)
	if p.UserID != userID && !middleware.IsCurrentUserModerator(ctx) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return p, true
}

// ApiGetPrediction returns one prediction
// @Summary Prediction detail
// @Tags predictions
// @Produce json
// @Router /api/predictions/{id} [get]
func (h *Handler) ApiGetPrediction(ctx *gin.Context) {
	p, ok := h.loadVisiblePrediction(ctx)
	if !ok {
		return
	}

	doctorComment := ""
	if p.DoctorComment.Valid {
		doctorComment = p.DoctorComment.String
	}
	jsonResponse(ctx, gin.H{"prediction": p, "doctor_comment": doctorComment}, 1, gin.H{"id": p.ID})
}

// ApiGetPredictionReport renders the text report
// @Summary Prediction report
// @Tags predictions
// @Produce plain
// @Router /api/predictions/{id}/report [get]
func (h *Handler) ApiGetPredictionReport(ctx *gin.Context) {
	p, ok := h.loadVisiblePrediction(ctx)
	if !ok {
		return
	}

	assessment, err := risk.Classify(p.Probability)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.String(http.StatusOK, report.Build(p.Record(), assessment))
}

// ApiDeletePrediction soft deletes an own prediction
// @Summary Delete prediction
// @Tags predictions
// @Produce json
// @Router /api/predictions/{id} [delete]
func (h *Handler) ApiDeletePrediction(ctx *gin.Context) {
	id64, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	id := uint(id64)

	userID, _ := middleware.GetCurrentUserID(ctx)
	if owner, err := h.Repository.IsPredictionOwner(userID, id); err != nil || !owner {
		h.errorHandler(ctx, http.StatusForbidden, errors.New("only the owner can delete a prediction"))
		return
	}

	if err := h.Repository.SoftDeletePrediction(id); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	jsonResponse(ctx, gin.H{"deleted": id}, 1, gin.H{})
}

// ApiReviewPrediction attaches a moderator review
// @Summary Review prediction
// @Tags predictions
// @Accept json
// @Produce json
// @Router /api/predictions/{id}/review [put]
func (h *Handler) ApiReviewPrediction(ctx *gin.Context) {
	id64, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	id := uint(id64)

	type bodyT struct {
		DoctorComment string `json:"doctor_comment" binding:"required"`
	}
	var body bodyT
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	p, err := h.Repository.GetPredictionByID(id)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}
	if p.Status != ds.StatusCompleted {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "only completed predictions can be reviewed"})
		return
	}

	moderatorID, _ := middleware.GetCurrentUserID(ctx)
	if err := h.Repository.SetReviewed(id, moderatorID, body.DoctorComment, time.Now()); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	p, err = h.Repository.GetPredictionByID(id)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	jsonResponse(ctx, p, 1, gin.H{"id": id})
}
