// File: services/intelligence/localExtractor.go
package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"venueflow/models"
)

// LocalExtractor is the deterministic fallback oracle: regex and keyword
// extraction with no external calls. Used in development and as the default
// when no Gemini key is configured.
type LocalExtractor struct{}

func NewLocalExtractor() *LocalExtractor {
	return &LocalExtractor{}
}

var (
	isoDateRe   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	monthDayRe  = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})\b`)
	roomRe      = regexp.MustCompile(`\b(?:room|hall)\s+([a-z0-9][\w-]*)`)
	headcountRe = regexp.MustCompile(`\b(\d+)\s*(?:people|guests|participants|attendees|pax|persons)\b`)
	layoutRe    = regexp.MustCompile(`\b(theater|theatre|classroom|boardroom|u-shape|banquet|cabaret|standing)\b`)
	priceRe     = regexp.MustCompile(`(?:€|\$|eur|usd)\s*(\d+(?:[.,]\d{1,2})?)|(\d+(?:[.,]\d{1,2})?)\s*(?:€|\$|eur|usd)`)
	emailRe     = regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.]+\b`)
	phoneRe     = regexp.MustCompile(`\+?\d[\d\s-]{7,}\d`)
)

var monthNumbers = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

var productKeywords = []string{
	"catering", "lunch", "dinner", "coffee", "drinks",
	"projector", "flipchart", "microphone", "stage", "av",
}

// Extract runs all extraction rules over the message.
func (e *LocalExtractor) Extract(_ context.Context, text string, snapshot models.StateSnapshot) (models.ExtractedFields, error) {
	lower := strings.ToLower(text)
	var fields models.ExtractedFields

	if date, ok := extractDate(lower); ok {
		// "visit on <date>" binds the date to the site visit, not the event.
		if strings.Contains(lower, "visit") || strings.Contains(lower, "tour") {
			fields.SiteVisitDate = &date
		} else {
			fields.Date = &date
		}
	}

	if m := roomRe.FindStringSubmatch(lower); m != nil {
		room := m[1]
		fields.RoomID = &room
	}

	if m := headcountRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			fields.ParticipantCount = &n
		}
	}

	if m := layoutRe.FindStringSubmatch(lower); m != nil {
		layout := m[1]
		fields.SeatingLayout = &layout
	}

	if m := priceRe.FindStringSubmatch(lower); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if amount, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err == nil {
			if strings.Contains(lower, "deposit") {
				fields.DepositAmount = &amount
			} else {
				fields.PriceAmount = &amount
			}
		}
	}

	for _, kw := range productKeywords {
		if strings.Contains(lower, kw) {
			fields.Products = append(fields.Products, kw)
		}
	}

	if m := emailRe.FindString(text); m != "" {
		fields.ContactEmail = &m
	}
	if m := phoneRe.FindString(text); m != "" {
		phone := strings.TrimSpace(m)
		fields.ContactPhone = &phone
	}

	return fields, nil
}

// extractDate recognizes ISO dates and "march 15" style mentions, resolving
// month names into the next occurrence.
func extractDate(lower string) (string, bool) {
	if m := isoDateRe.FindStringSubmatch(lower); m != nil {
		return m[1], true
	}
	if m := monthDayRe.FindStringSubmatch(lower); m != nil {
		month := monthNumbers[m[1]]
		day, err := strconv.Atoi(m[2])
		if err != nil || day < 1 || day > 31 {
			return "", false
		}
		now := time.Now()
		year := now.Year()
		if month < now.Month() || (month == now.Month() && day < now.Day()) {
			year++
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}
	return "", false
}
