package inbound

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/diasna/tng/internal/pkg/pkgerror"
	"github.com/diasna/tng/internal/tracking/entity"
	"github.com/google/uuid"
)

// parseShipment reads and validates the next-tracking-number query. Every
// problem is reported, joined with "; ". A value that cannot be parsed at all
// makes the whole request malformed (400); otherwise broken rules are 422.
func parseShipment(query url.Values) (entity.Shipment, error) {
	var (
		problems  []string
		malformed bool
	)

	add := func(msg string) {
		if msg != "" {
			problems = append(problems, msg)
		}
	}

	shipment := entity.Shipment{
		OriginCountryID:      query.Get("origin_country_id"),
		DestinationCountryID: query.Get("destination_country_id"),
		CustomerName:         query.Get("customer_name"),
		CustomerSlug:         query.Get("customer_slug"),
	}.Normalize()

	add(entity.CountryProblem("origin_country_id", shipment.OriginCountryID))
	add(entity.CountryProblem("destination_country_id", shipment.DestinationCountryID))

	if raw := strings.TrimSpace(query.Get("weight")); raw == "" {
		add("weight is required")
	} else if w, err := strconv.ParseFloat(raw, 64); err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		add("weight must be a number")
		malformed = true
	} else {
		add(entity.WeightProblem(w))
		shipment.Weight = w
	}

	if raw := strings.TrimSpace(query.Get("customer_id")); raw == "" {
		add("customer_id is required")
	} else if id, err := uuid.Parse(raw); err != nil {
		add("customer_id must be a valid UUID")
		malformed = true
	} else {
		add(entity.CustomerIDProblem(id))
		shipment.CustomerID = id
	}

	add(entity.CustomerNameProblem(shipment.CustomerName))
	add(entity.CustomerSlugProblem(shipment.CustomerSlug))

	if len(problems) == 0 {
		return shipment, nil
	}

	err := errors.New(strings.Join(problems, "; "))
	if malformed {
		return entity.Shipment{}, pkgerror.NewInvalidFormat(err)
	}
	return entity.Shipment{}, pkgerror.NewInvalidInput(err)
}
