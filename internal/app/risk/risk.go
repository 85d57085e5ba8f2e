// Package risk maps a hypertension probability to an ordered risk tier,
// a binary classification and a recommendation.
package risk

import "errors"

// ErrProbabilityRange is returned when a probability falls outside [0, 1].
// Coming from the predictive model this indicates a defect in the model, not
// a recoverable condition.
var ErrProbabilityRange = errors.New("probability out of range [0, 1]")

// Tier is one of five ordered risk categories.
type Tier int

const (
	VeryLow Tier = iota
	Low
	Moderate
	High
	VeryHigh
)

var tierLabels = [...]string{"Very Low", "Low", "Moderate", "High", "Very High"}

func (t Tier) String() string {
	if t < VeryLow || t > VeryHigh {
		return "Unknown"
	}
	return tierLabels[t]
}

// Classification is the binary collapse of a tier.
type Classification string

const (
	LowRisk  Classification = "low_risk"
	HighRisk Classification = "high_risk"
)

// Label returns the human-readable form used in reports.
func (c Classification) Label() string {
	if c == HighRisk {
		return "High Risk"
	}
	return "Low Risk"
}

var recommendations = map[Tier]string{
	VeryLow:  "Maintain your current healthy lifestyle. A routine blood pressure check once a year is sufficient.",
	Low:      "Keep up your current habits and watch your salt intake. Check your blood pressure every six months.",
	Moderate: "Reduce salt and sugar consumption and increase physical activity. Monitor your blood pressure monthly.",
	High:     "Consult a healthcare professional soon. Adopt a low-sodium diet, exercise regularly and monitor your blood pressure weekly.",
	VeryHigh: "Seek medical advice as soon as possible. Clinical evaluation and regular blood pressure monitoring are strongly recommended.",
}

// Assessment is the immutable result of classifying one probability.
type Assessment struct {
	Probability    float64        `json:"probability"`
	Tier           Tier           `json:"-"`
	RiskLevel      string         `json:"risk_level"`
	Classification Classification `json:"classification"`
	Recommendation string         `json:"recommendation"`
}

// Tier boundaries, lower bound inclusive: [0,.2) [.2,.4) [.4,.6) [.6,.8) [.8,1].
var thresholds = [...]float64{0.2, 0.4, 0.6, 0.8}

// Classify buckets a probability into a tier, derives the binary
// classification and picks the recommendation for the tier. Pure function;
// probabilities outside [0, 1] fail with ErrProbabilityRange.
func Classify(p float64) (Assessment, error) {
	if p < 0 || p > 1 {
		return Assessment{}, ErrProbabilityRange
	}

	tier := VeryLow
	for _, t := range thresholds {
		if p < t {
			break
		}
		tier++
	}

	classification := LowRisk
	if tier >= Moderate {
		classification = HighRisk
	}

	return Assessment{
		Probability:    p,
		Tier:           tier,
		RiskLevel:      tier.String(),
		Classification: classification,
		Recommendation: recommendations[tier],
	}, nil
}
