package report

import (
	"errors"

	"TrendScope/internal/model"
)

// UserMessage turns an analysis error into a sentence safe to show to users.
// Unknown errors get a generic message so internal state is never exposed.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrInvalidSymbol):
		return "Please enter a valid ticker symbol."
	case errors.Is(err, model.ErrInvalidPeriod):
		return "Please choose a supported period (1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max)."
	case errors.Is(err, model.ErrNoData):
		return "No data found for the given symbol."
	case errors.Is(err, model.ErrInsufficientData), errors.Is(err, model.ErrInsufficientHistory):
		return "Insufficient data for analysis."
	case errors.Is(err, model.ErrSourceUnavailable):
		return "Error fetching data. Please try again later."
	default:
		return "Something went wrong while analysing the symbol."
	}
}

// Outcome is a stable low-cardinality label of an analysis result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrInvalidSymbol), errors.Is(err, model.ErrInvalidPeriod):
		return "invalid_input"
	case errors.Is(err, model.ErrNoData):
		return "no_data"
	case errors.Is(err, model.ErrInsufficientData), errors.Is(err, model.ErrInsufficientHistory):
		return "insufficient_data"
	case errors.Is(err, model.ErrSourceUnavailable):
		return "source_unavailable"
	default:
		return "error"
	}
}
