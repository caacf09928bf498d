package models

// SeriesPoint is one observation of a macroeconomic series.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// MacroComposite bundles the three macro series served as one cache entry.
// A failed constituent leaves its field empty and marks the composite degraded.
type MacroComposite struct {
	CPI      []SeriesPoint `json:"cpi"`
	Rates    []SeriesPoint `json:"rates"`
	Deficits []SeriesPoint `json:"deficits"`
	Degraded bool          `json:"degraded,omitempty"`
}
