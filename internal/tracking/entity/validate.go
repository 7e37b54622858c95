package entity

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	MinWeight = 0.001
	MaxWeight = 999999.999
)

var (
	countryPattern = regexp.MustCompile(`^[A-Z]{2}$`)
	slugPattern    = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Normalize trims the text fields, upper-cases the countries and lower-cases the slug.
func (s Shipment) Normalize() Shipment {
	s.OriginCountryID = strings.ToUpper(strings.TrimSpace(s.OriginCountryID))
	s.DestinationCountryID = strings.ToUpper(strings.TrimSpace(s.DestinationCountryID))
	s.CustomerName = strings.TrimSpace(s.CustomerName)
	s.CustomerSlug = strings.ToLower(strings.TrimSpace(s.CustomerSlug))
	return s
}

// Validate reports every broken field rule, joined with "; ".
func (s Shipment) Validate() error {
	var problems []string
	for _, msg := range []string{
		CountryProblem("origin_country_id", s.OriginCountryID),
		CountryProblem("destination_country_id", s.DestinationCountryID),
		WeightProblem(s.Weight),
		CustomerIDProblem(s.CustomerID),
		CustomerNameProblem(s.CustomerName),
		CustomerSlugProblem(s.CustomerSlug),
	} {
		if msg != "" {
			problems = append(problems, msg)
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func CountryProblem(field, value string) string {
	if value == "" {
		return field + " is required"
	}
	if !countryPattern.MatchString(value) {
		return field + " must be a 2-letter ISO 3166-1 alpha-2 code"
	}
	return ""
}

// WeightProblem rejects NaN and infinities as well as out-of-range values.
func WeightProblem(w float64) string {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return "weight must be a number"
	}
	if w < MinWeight || w > MaxWeight {
		return "weight must be between 0.001 and 999999.999"
	}
	return ""
}

func CustomerIDProblem(id uuid.UUID) string {
	if id == uuid.Nil {
		return "customer_id is required"
	}
	return ""
}

func CustomerNameProblem(name string) string {
	if name == "" {
		return "customer_name is required"
	}
	return ""
}

func CustomerSlugProblem(slug string) string {
	if slug == "" {
		return "customer_slug is required"
	}
	if !slugPattern.MatchString(slug) {
		return "customer_slug must contain only lowercase letters, digits and hyphens"
	}
	return ""
}
