package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/ds"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/middleware"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/repository"
)

type stubPredictor struct {
	p   float64
	err error
}

func (s stubPredictor) Predict(ds.HealthRecord) (float64, error) {
	return s.p, s.err
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"family_history":         true,
		"salt_consumption":       "high",
		"sugar_consumption":      "high",
		"exercise_frequency":     "low",
		"smoking_status":         "smoker",
		"belly_circumference_cm": 102.0,
		"weight_kg":              90.0,
		"height_cm":              175.0,
	}
}

func postPrediction(t *testing.T, h *Handler, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/api/predictions", bytes.NewReader(raw))
	ctx.Request.Header.Set("Content-Type", "application/json")
	ctx.Set(middleware.UserIDKey, uint(1))

	h.ApiCreatePrediction(ctx)
	return w
}

func TestApiCreatePrediction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "prediction_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	h := &Handler{
		Repository: repository.NewWithDB(db),
		Predictor:  stubPredictor{p: 0.73},
	}

	w := postPrediction(t, h, validBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Assessment struct {
				Probability    float64 `json:"probability"`
				RiskLevel      string  `json:"risk_level"`
				Classification string  `json:"classification"`
				Recommendation string  `json:"recommendation"`
			} `json:"assessment"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0.73, resp.Data.Assessment.Probability)
	assert.Equal(t, "High", resp.Data.Assessment.RiskLevel)
	assert.Equal(t, "high_risk", resp.Data.Assessment.Classification)
	assert.NotEmpty(t, resp.Data.Assessment.Recommendation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApiCreatePredictionValidation(t *testing.T) {
	h := &Handler{Predictor: stubPredictor{p: 0.5}}

	body := validBody()
	body["weight_kg"] = 20.0 // below documented range
	w := postPrediction(t, h, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "weight_kg")

	body = validBody()
	delete(body, "smoking_status")
	w = postPrediction(t, h, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApiCreatePredictionModelDefect(t *testing.T) {
	// a probability outside [0,1] is treated as a collaborator defect
	h := &Handler{Predictor: stubPredictor{p: 1.5}}

	w := postPrediction(t, h, validBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "probability out of range")
}

func TestApiReviewPredictionRefetchError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, mock := newMockHandler(t)

	// initial load: completed row owned by user 1, no moderator yet
	mock.ExpectQuery(`SELECT (.+) FROM "prediction_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "moderator_id"}).
			AddRow(12, 1, ds.StatusCompleted, nil))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login"}).AddRow(1, "patient"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "prediction_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// re-fetch after the update fails; the handler must not serialize a nil row
	mock.ExpectQuery(`SELECT (.+) FROM "prediction_requests"`).
		WillReturnError(errors.New("connection reset"))

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPut, "/api/predictions/12/review",
		bytes.NewReader([]byte(`{"doctor_comment":"confirmed, schedule a follow-up"}`)))
	ctx.Request.Header.Set("Content-Type", "application/json")
	ctx.Params = gin.Params{{Key: "id", Value: "12"}}
	ctx.Set(middleware.UserIDKey, uint(2))
	ctx.Set(middleware.IsModeratorKey, true)

	h.ApiReviewPrediction(ctx)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
