package model

import "github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/ds"

// featureNames fixes the order of the feature vector. The artifact must list
// the same names in the same order.
var featureNames = []string{
	"family_history",
	"salt_consumption",
	"sugar_consumption",
	"exercise_frequency",
	"smoking_status",
	"belly_circumference_cm",
	"weight_kg",
	"height_cm",
	"bmi",
}

// FeatureNames returns a copy of the feature order the mapping produces.
func FeatureNames() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

// Features encodes a validated health record as a feature vector. Lifestyle
// enums are encoded ordinally the way the training data was encoded:
// low=0 high=1, never=0 quit=1 smoker=2, booleans as 0/1. BMI is derived.
func Features(rec ds.HealthRecord) []float64 {
	x := make([]float64, len(featureNames))
	if rec.FamilyHistory {
		x[0] = 1
	}
	if rec.SaltConsumption == ds.ConsumptionHigh {
		x[1] = 1
	}
	if rec.SugarConsumption == ds.ConsumptionHigh {
		x[2] = 1
	}
	if rec.ExerciseFrequency == ds.ExerciseHigh {
		x[3] = 1
	}
	switch rec.SmokingStatus {
	case ds.SmokingQuit:
		x[4] = 1
	case ds.SmokingSmoker:
		x[4] = 2
	}
	x[5] = rec.BellyCircumferenceCM
	x[6] = rec.WeightKG
	x[7] = rec.HeightCM
	x[8] = rec.BMI()
	return x
}
