// Locale rendering for history details: dates as YYYY-MM-DD, money as
// peso strings with thousands separators, blanks as the word "empty".
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gso/models"
)

const emptyValue = "empty"

func renderString(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptyValue
	}
	return s
}

func renderDate(t time.Time) string {
	if t.IsZero() {
		return emptyValue
	}
	return t.Format("2006-01-02")
}

func renderYears(n int) string {
	if n == 0 {
		return emptyValue
	}
	if n == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", n)
}

func renderCustodian(c models.Custodian) string {
	if c.Name == "" && c.Office == "" {
		return emptyValue
	}
	if c.Office == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Office)
}

// Currency renders an amount the way history details do. Workflows use
// it when composing manual entries (repairs, attachments).
func Currency(amount float64) string { return renderCurrency(amount) }

// renderCurrency formats an amount as "₱12,345.67".
func renderCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("₱")
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(",")
		}
		b.WriteRune(r)
	}
	b.WriteString(".")
	b.WriteString(frac)
	return b.String()
}
