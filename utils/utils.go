package utils

import (
	"fmt"
	"strings"
)

// ParseInstrument splits an instrument like "USDT/NGN" into base and quote.
func ParseInstrument(instrument string) (string, string, error) {
	parts := strings.Split(instrument, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid instrument %q, expected BASE/QUOTE", instrument)
	}
	return strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), nil
}

// InstrumentSymbol turns "USDT/NGN" into the provider symbol form "USDTNGN".
func InstrumentSymbol(instrument string) (string, error) {
	base, quote, err := ParseInstrument(instrument)
	if err != nil {
		return "", err
	}
	return base + quote, nil
}

// FormatInstrument builds the canonical "BASE/QUOTE" form.
func FormatInstrument(base, quote string) string {
	return fmt.Sprintf("%s/%s", strings.ToUpper(base), strings.ToUpper(quote))
}
