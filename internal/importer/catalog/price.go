package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errNegativePrice = errors.New("negative price")

var spaceStripper = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "FCFA", "")

// parsePrice parses a French-formatted FCFA amount. Grouping may use spaces or
// dots and decimals a comma: "150 000", "150.000", "150 000,00". Decimals are
// rounded to the unit.
func parsePrice(s string) (int64, error) {
	clean := spaceStripper.Replace(strings.ToUpper(strings.TrimSpace(s)))

	switch {
	case strings.Contains(clean, ","):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case dotsGroupThousands(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	if d.IsNegative() {
		return 0, errNegativePrice
	}

	return d.Round(0).IntPart(), nil
}

// dotsGroupThousands reports whether every dot in s is followed by exactly
// three digits, as in "1.250.000".
func dotsGroupThousands(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}

	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}

	return true
}
