package model

// Demo builds a small hand-assembled ensemble with the known risk
// relationships: family history, high salt/sugar intake, low exercise,
// smoking, BMI and waist circumference all push the log-odds up. It stands in
// for the trained artifact in seeding and tests.
func Demo() *Ensemble {
	leaf := func(v float64) Node { return Node{Leaf: true, Value: v} }
	split := func(f int, th float64, l, r int) Node {
		return Node{Feature: f, Threshold: th, Left: l, Right: r}
	}

	return &Ensemble{
		Version:  1,
		Features: FeatureNames(),
		// log(0.29/0.71), the target prevalence of the training set
		InitScore: -0.895,
		Trees: []Tree{
			// family_history
			{Nodes: []Node{split(0, 0.5, 1, 2), leaf(-0.10), leaf(0.55)}},
			// salt_consumption
			{Nodes: []Node{split(1, 0.5, 1, 2), leaf(-0.10), leaf(0.45)}},
			// sugar_consumption
			{Nodes: []Node{split(2, 0.5, 1, 2), leaf(-0.08), leaf(0.35)}},
			// exercise_frequency: low activity raises risk
			{Nodes: []Node{split(3, 0.5, 1, 2), leaf(0.40), leaf(-0.12)}},
			// smoking_status: never / quit / smoker
			{Nodes: []Node{split(4, 0.5, 1, 2), leaf(-0.15), split(4, 1.5, 3, 4), leaf(0.15), leaf(0.40)}},
			// bmi: <=25 / <=30 / above
			{Nodes: []Node{split(8, 25, 1, 2), leaf(-0.20), split(8, 30, 3, 4), leaf(0.20), leaf(0.45)}},
			// belly_circumference_cm
			{Nodes: []Node{split(5, 95, 1, 2), leaf(-0.10), leaf(0.30)}},
			// high salt combined with low exercise
			{Nodes: []Node{split(1, 0.5, 1, 2), leaf(0), split(3, 0.5, 3, 4), leaf(0.25), leaf(0)}},
		},
	}
}
