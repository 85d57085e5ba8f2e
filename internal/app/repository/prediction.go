package repository

import (
	"time"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/ds"
)

func (r *Repository) CreatePrediction(p *ds.PredictionRequest) error {
	return r.db.Create(p).Error
}

func (r *Repository) GetPredictionByID(id uint) (*ds.PredictionRequest, error) {
	var p ds.PredictionRequest
	err := r.db.Preload("User").Preload("Moderator").Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPredictions returns rows visible to the caller, newest first. Soft
// deleted rows are always excluded. userID nil means all users (moderator
// view); classification/from/to filter when non-empty.
func (r *Repository) ListPredictions(userID *uint, classification *string, from, to *string) ([]ds.PredictionRequest, error) {
	q := r.db.Preload("User").Where("status <> ?", ds.StatusDeleted)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if classification != nil && *classification != "" {
		q = q.Where("classification = ?", *classification)
	}
	if from != nil && *from != "" {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil && *to != "" {
		q = q.Where("created_at <= ?", *to)
	}

	var list []ds.PredictionRequest
	err := q.Order("id DESC").Find(&list).Error
	return list, err
}

func (r *Repository) IsPredictionOwner(userID, predictionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.PredictionRequest{}).
		Where("id = ? AND user_id = ?", predictionID, userID).
		Count(&count).Error
	return count > 0, err
}

// SoftDeletePrediction marks the row deleted; it stays in the table for audit.
func (r *Repository) SoftDeletePrediction(id uint) error {
	return r.db.Exec("UPDATE prediction_requests SET status = ? WHERE id = ?", ds.StatusDeleted, id).Error
}

// SetReviewed records the moderator's review of a completed prediction.
func (r *Repository) SetReviewed(id, moderatorID uint, comment string, at time.Time) error {
	return r.db.Model(&ds.PredictionRequest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         ds.StatusReviewed,
		"moderator_id":   moderatorID,
		"doctor_comment": comment,
		"reviewed_at":    at,
	}).Error
}

func (r *Repository) CountUserPredictionsByClassification(userID uint, classification string) (int64, error) {
	var count int64
	err := r.db.Model(&ds.PredictionRequest{}).
		Where("user_id = ? AND classification = ? AND status <> ?", userID, classification, ds.StatusDeleted).
		Count(&count).Error
	return count, err
}
