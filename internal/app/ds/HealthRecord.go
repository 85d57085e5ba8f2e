package ds

import "fmt"

// Allowed enum values for lifestyle fields.
const (
	ConsumptionLow  = "low"
	ConsumptionHigh = "high"

	ExerciseLow  = "low"
	ExerciseHigh = "high"

	SmokingNever  = "never"
	SmokingQuit   = "quit"
	SmokingSmoker = "smoker"
)

// Documented valid ranges for the numeric indicators.
const (
	BellyMinCM = 50.0
	BellyMaxCM = 220.0

	WeightMinKG = 50.0
	WeightMaxKG = 200.0

	HeightMinCM = 100.0
	HeightMaxCM = 220.0
)

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// HealthRecord is the eight-indicator input for a hypertension prediction.
// It is constructed once from caller-supplied values and validated before use.
type HealthRecord struct {
	FamilyHistory        bool    `json:"family_history"`
	SaltConsumption      string  `json:"salt_consumption"`
	SugarConsumption     string  `json:"sugar_consumption"`
	ExerciseFrequency    string  `json:"exercise_frequency"`
	SmokingStatus        string  `json:"smoking_status"`
	BellyCircumferenceCM float64 `json:"belly_circumference_cm"`
	WeightKG             float64 `json:"weight_kg"`
	HeightCM             float64 `json:"height_cm"`
}

// Validate checks enum values and numeric ranges. Out-of-range values are an
// error, never clamped.
func (r HealthRecord) Validate() error {
	if r.SaltConsumption != ConsumptionLow && r.SaltConsumption != ConsumptionHigh {
		return &ValidationError{"salt_consumption", "must be one of: low, high"}
	}
	if r.SugarConsumption != ConsumptionLow && r.SugarConsumption != ConsumptionHigh {
		return &ValidationError{"sugar_consumption", "must be one of: low, high"}
	}
	if r.ExerciseFrequency != ExerciseLow && r.ExerciseFrequency != ExerciseHigh {
		return &ValidationError{"exercise_frequency", "must be one of: low, high"}
	}
	switch r.SmokingStatus {
	case SmokingNever, SmokingQuit, SmokingSmoker:
	default:
		return &ValidationError{"smoking_status", "must be one of: never, quit, smoker"}
	}
	if r.BellyCircumferenceCM < BellyMinCM || r.BellyCircumferenceCM > BellyMaxCM {
		return &ValidationError{"belly_circumference_cm", fmt.Sprintf("must be between %.0f and %.0f", BellyMinCM, BellyMaxCM)}
	}
	if r.WeightKG < WeightMinKG || r.WeightKG > WeightMaxKG {
		return &ValidationError{"weight_kg", fmt.Sprintf("must be between %.0f and %.0f", WeightMinKG, WeightMaxKG)}
	}
	if r.HeightCM < HeightMinCM || r.HeightCM > HeightMaxCM {
		return &ValidationError{"height_cm", fmt.Sprintf("must be between %.0f and %.0f", HeightMinCM, HeightMaxCM)}
	}
	return nil
}

// BMI derives body mass index from weight and height.
func (r HealthRecord) BMI() float64 {
	h := r.HeightCM / 100
	return r.WeightKG / (h * h)
}
