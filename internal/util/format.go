package util

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// FormatNumber groups thousands: 12345 -> "12,345".
func FormatNumber(v float64) string {
	if v == math.Trunc(v) {
		return numberPrinter.Sprintf("%d", int64(v))
	}
	return numberPrinter.Sprintf("%.2f", v)
}

// FormatCurrency renders a dollar amount with cents: "$1,234.50".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-" + numberPrinter.Sprintf("$%.2f", -v)
	}
	return numberPrinter.Sprintf("$%.2f", v)
}

// FormatPercent renders a 0-100 score as "85%".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// ParseNumber accepts plain and grouped numbers with an optional currency
// symbol or percent sign ("1,234.5", "$40", "85%").
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
}

// ParseDate tries the date layouts seen in shop exports. Dates without a
// zone are UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
