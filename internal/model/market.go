package model

import (
	"fmt"
	"strings"
	"time"
)

// PriceRecord is one trading-day observation.
type PriceRecord struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries holds the ordered daily records of one symbol.
type PriceSeries struct {
	Symbol    string
	Period    Period
	Records   []PriceRecord // ascending by date, unique dates
	FetchedAt time.Time
}

// Len returns the number of records.
func (s PriceSeries) Len() int { return len(s.Records) }

// Period is an enumerated lookback window understood by every series source.
type Period string

const (
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"
	Period5y  Period = "5y"
	Period10y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

// DefaultPeriod matches the lookback the web form falls back to.
const DefaultPeriod = Period1y

var periodDays = map[Period]int{
	Period1mo: 31,
	Period3mo: 92,
	Period6mo: 183,
	Period1y:  366,
	Period2y:  731,
	Period5y:  1827,
	Period10y: 3653,
	PeriodMax: 365 * 50,
}

// ParsePeriod validates a lookback string. An empty string yields DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPeriod, nil
	}
	p := Period(s)
	if p == PeriodYTD {
		return p, nil
	}
	if _, ok := periodDays[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return p, nil
}

// Days returns the approximate calendar span of the period as seen from now.
func (p Period) Days(now time.Time) int {
	if p == PeriodYTD {
		return now.YearDay()
	}
	if d, ok := periodDays[p]; ok {
		return d
	}
	return periodDays[DefaultPeriod]
}

func (p Period) String() string { return string(p) }
