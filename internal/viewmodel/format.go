package viewmodel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var gbPrinter = message.NewPrinter(language.BritishEnglish)

// FormatAmount renders v as pounds with two decimals and thousands
// separators: 199.9 → "£199.90", -1234.5 → "-£1,234.50".
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "£0.00"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	// Round half away from zero at the penny before formatting.
	v = math.Round(v*100) / 100
	return sign + "£" + gbPrinter.Sprintf("%.2f", v)
}

// ParseAmount reads a decimal string as sent by the backend; anything
// unparseable counts as zero.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmountString formats a backend decimal string.
func FormatAmountString(s string) string {
	return FormatAmount(ParseAmount(s))
}

// CleanerID renders the public cleaner reference, e.g. 1 → "ICC#00001".
func CleanerID(id int) string {
	return fmt.Sprintf("ICC#%05d", id)
}

// StatusLabel turns a backend status string into display text:
// "in_progress" → "In Progress". Empty input yields "Unknown".
func StatusLabel(status string) string {
	s := strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(status))
	if s == "" {
		return "Unknown"
	}
	// Casers carry state; one per call.
	return cases.Title(language.BritishEnglish).String(s)
}

// StatusSeverity maps a status to the tag colour used by the tables.
func StatusSeverity(status string) string {
	switch strings.ToLower(status) {
	case "completed", "paid", "resolved", "active", "approved", "verified":
		return "success"
	case "pending", "under_review", "in_progress", "open":
		return "warning"
	case "cancelled", "rejected", "inactive", "suspended":
		return "danger"
	case "confirmed":
		return "info"
	default:
		return "secondary"
	}
}

// Initials returns up to two upper-case initials from a name.
func Initials(first, last string) string {
	var b strings.Builder
	for _, part := range []string{first, last} {
		for _, r := range strings.TrimSpace(part) {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}
