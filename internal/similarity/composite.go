package similarity

// Breakdown holds the five component scores for one file pair, each in
// [0,1].
type Breakdown struct {
	Jaccard float64
	Control float64
	Idents  float64
	Loops   float64
	Calls   float64
}

// Weights is the composite score's per-measure weight vector. Weights are
// configuration, not part of the kernel contract, and are used as given —
// the engine never renormalizes them.
type Weights struct {
	Jaccard float64
	Control float64
	Idents  float64
	Loops   float64
	Calls   float64
}

// Composite computes the weighted sum of a breakdown's five components.
func Composite(w Weights, b Breakdown) float64 {
	return w.Jaccard*b.Jaccard + w.Control*b.Control + w.Idents*b.Idents + w.Loops*b.Loops + w.Calls*b.Calls
}
