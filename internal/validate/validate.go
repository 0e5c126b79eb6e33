package validate

import (
	"regexp"
	"strconv"
	"strings"

	"shinyshoes/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a product identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Size parses a shoe size such as "9" or "9.5".
func Size(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 || f > 30 {
		return 0, false
	}
	return f, true
}

// Category accepts the three catalog categories plus the "all" sentinel; empty means all.
func Category(s string) (domain.Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return domain.CategoryAll, true
	}
	c := domain.Category(s)
	if c == domain.CategoryAll || c.Valid() {
		return c, true
	}
	return "", false
}

// Sort maps a sort key to a known option; unknown keys mean NEWEST.
func Sort(s string) domain.SortOption {
	switch o := domain.SortOption(strings.ToUpper(strings.TrimSpace(s))); o {
	case domain.SortPriceLow, domain.SortPriceHigh, domain.SortPopular:
		return o
	}
	return domain.SortNewest
}

// Price parses a non-negative price bound; empty returns def.
func Price(s string, def float64) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

// Delta clamps a quantity change to something a single click could produce.
func Delta(n int) (int, bool) {
	return n, n != 0 && n >= -50 && n <= 50
}

// ShippingForm returns the JSON names of fields that are missing or malformed.
// Card fields only need to be present.
func ShippingForm(f domain.ShippingForm) []string {
	var bad []string
	required := []struct {
		name, value string
	}{
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"email", f.Email},
		{"address", f.Address},
		{"city", f.City},
		{"zipCode", f.ZipCode},
		{"cardNumber", f.CardNumber},
		{"expiry", f.Expiry},
		{"cvc", f.CVC},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			bad = append(bad, r.name)
			continue
		}
		if r.name == "email" {
			if _, ok := Email(r.value); !ok {
				bad = append(bad, r.name)
			}
		}
	}
	return bad
}

// ProductName validates the admin form's name field.
func ProductName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 120
}
