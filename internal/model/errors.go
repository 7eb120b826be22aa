package model

import "errors"

// Error taxonomy shared by sources, the pipeline and the presentation layer.
// All of them are terminal for the current request.
var (
	// ErrNoData means the source returned an empty series (unknown or delisted symbol).
	ErrNoData = errors.New("no data found")
	// ErrInsufficientData means at least one indicator column is undefined on every row.
	ErrInsufficientData = errors.New("insufficient data for analysis")
	// ErrInsufficientHistory means fewer than two rows exist for change metrics.
	ErrInsufficientHistory = errors.New("insufficient history for price change")
	// ErrSourceUnavailable wraps transport or collaborator failures.
	ErrSourceUnavailable = errors.New("series source unavailable")

	ErrInvalidSymbol = errors.New("invalid symbol")
	ErrInvalidPeriod = errors.New("invalid period")
)
