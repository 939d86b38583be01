package dashboard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"invoice-dashboard-backend/internal/models"
)

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatCurrency renders integer cents as US dollars, e.g. 123456 -> "$1,234.56".
func FormatCurrency(cents int64) string {
	s := decimal.New(cents, -2).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

// ToDollars converts stored cents back to the dollar amount shown in the edit form.
func ToDollars(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// YAxis holds the revenue chart labels from the rounded top value down to $0k.
type YAxis struct {
	Labels   []string `json:"labels"`
	TopLabel int64    `json:"topLabel"`
}

// GenerateYAxis rounds the highest monthly revenue up to the next thousand and
// emits one label per thousand.
func GenerateYAxis(revenue []models.Revenue) YAxis {
	var highest int64
	for _, r := range revenue {
		if r.Revenue > highest {
			highest = r.Revenue
		}
	}
	top := (highest + 999) / 1000 * 1000

	labels := make([]string, 0, top/1000+1)
	for i := top; i >= 0; i -= 1000 {
		labels = append(labels, fmt.Sprintf("$%dk", i/1000))
	}
	return YAxis{Labels: labels, TopLabel: top}
}

func monthIndex(month string) int {
	for i, m := range months {
		if strings.EqualFold(m, month) {
			return i
		}
	}
	return len(months)
}
