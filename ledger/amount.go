package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yllada/expense-tray/common"
)

// maxAmount caps a single entry at one billion.
const maxAmount Cents = 100_000_000_000

// Cents is a monetary amount in hundredths of the currency unit.
type Cents int64

// String formats c with thousands separators and two decimals, e.g. "1,234.50".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%s.%02d", sign, humanize.Comma(int64(c/100)), int64(c%100))
}

// ParseAmount parses user input such as "12", "12.5", "12,50" or "1 234.99".
// A comma is accepted as the decimal separator when no period is present.
func ParseAmount(s string) (Cents, error) {
	raw := strings.Join(strings.Fields(s), "")
	if raw == "" {
		return 0, fmt.Errorf("%w: empty amount", common.ErrInvalidEntry)
	}
	if !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}

	whole, frac, _ := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q has more than two decimals", common.ErrInvalidEntry, s)
	}
	frac += strings.Repeat("0", 2-len(frac))

	units, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an amount", common.ErrInvalidEntry, s)
	}
	hundredths, err := strconv.ParseUint(frac, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an amount", common.ErrInvalidEntry, s)
	}

	if units > uint64(maxAmount/100) {
		return 0, fmt.Errorf("%w: %q is too large", common.ErrInvalidEntry, s)
	}
	c := Cents(units*100 + hundredths)
	if c == 0 {
		return 0, fmt.Errorf("%w: amount must be positive", common.ErrInvalidEntry)
	}
	return c, nil
}

// TodaySummary is the tooltip line for today's total.
func TodaySummary(total Cents) string {
	return "Today: " + total.String()
}
