package model

// Trend is the categorical label attached to every row.
type Trend string

const (
	Uptrend   Trend = "Uptrend"
	Downtrend Trend = "Downtrend"
)

// Condition is one check of a trend policy evaluated on a single row.
type Condition struct {
	Name       string `json:"name"`
	Met        bool   `json:"met"`
	Commentary string `json:"commentary"`
}

// TrendSignal is the verdict of a trend policy with the conditions behind it.
type TrendSignal struct {
	Policy     string      `json:"policy"`
	Trend      Trend       `json:"trend"`
	Conditions []Condition `json:"conditions"`
}
