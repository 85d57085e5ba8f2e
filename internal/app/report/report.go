// Package report renders the textual prediction report.
package report

import (
	"fmt"
	"strings"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/ds"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/risk"
)

const line = "=============================================="
const thinLine = "----------------------------------------------"

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Build renders the report for one assessment with an echo of the input
// values. Section headers are fixed.
func Build(rec ds.HealthRecord, a risk.Assessment) string {
	var b strings.Builder

	b.WriteString(line + "\n")
	b.WriteString("      HYPERTENSION RISK PREDICTION REPORT\n")
	b.WriteString(line + "\n\n")

	fmt.Fprintf(&b, "Risk Probability : %.2f%%\n", a.Probability*100)
	fmt.Fprintf(&b, "Risk Level       : %s\n", a.RiskLevel)
	fmt.Fprintf(&b, "Classification   : %s\n", a.Classification.Label())
	fmt.Fprintf(&b, "Recommendation   : %s\n", a.Recommendation)

	b.WriteString("\n" + thinLine + "\n")
	b.WriteString("Input Values\n")
	b.WriteString(thinLine + "\n")
	fmt.Fprintf(&b, "Family History      : %s\n", yesNo(rec.FamilyHistory))
	fmt.Fprintf(&b, "Salt Consumption    : %s\n", rec.SaltConsumption)
	fmt.Fprintf(&b, "Sugar Consumption   : %s\n", rec.SugarConsumption)
	fmt.Fprintf(&b, "Exercise Frequency  : %s\n", rec.ExerciseFrequency)
	fmt.Fprintf(&b, "Smoking Status      : %s\n", rec.SmokingStatus)
	fmt.Fprintf(&b, "Belly Circumference : %.1f cm\n", rec.BellyCircumferenceCM)
	fmt.Fprintf(&b, "Weight              : %.1f kg\n", rec.WeightKG)
	fmt.Fprintf(&b, "Height              : %.1f cm\n", rec.HeightCM)

	return b.String()
}
