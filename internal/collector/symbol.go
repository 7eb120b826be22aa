package collector

import (
	"fmt"
	"regexp"
	"strings"

	"TrendScope/internal/model"
)

// symbolPattern admits plain tickers (AAPL), share classes (BRK.B, BF-B),
// indices (^GSPC) and futures or currency pairs (ES=F, EURUSD=X).
var symbolPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-=^]{0,11}$`)

// SanitizeSymbol trims and upper-cases user input and validates the result.
func SanitizeSymbol(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("%w: symbol is empty", model.ErrInvalidSymbol)
	}
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidSymbol, raw)
	}
	return s, nil
}
