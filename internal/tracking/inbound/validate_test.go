package inbound

import (
	"net/url"
	"testing"

	"github.com/diasna/tng/internal/pkg/pkgerror"
)

func TestParseShipmentNormalizes(t *testing.T) {
	shipment, err := parseShipment(validQuery())
	if err != nil {
		t.Fatalf("parseShipment: %v", err)
	}
	if shipment.OriginCountryID != "MY" || shipment.DestinationCountryID != "ID" {
		t.Fatalf("countries not upper-cased: %+v", shipment)
	}
	if shipment.CustomerSlug != "redbox-logistics" {
		t.Fatalf("slug not lower-cased: %q", shipment.CustomerSlug)
	}
	if shipment.Weight != 1.234 || shipment.CustomerID.String() != testCustomerID {
		t.Fatalf("unexpected shipment %+v", shipment)
	}
}

func TestParseShipmentWeight(t *testing.T) {
	tests := []struct {
		weight string
		code   pkgerror.Code
		ok     bool
	}{
		{weight: "0.001", ok: true},
		{weight: "999999.999", ok: true},
		{weight: "0.0009", code: pkgerror.CodeInvalidInput},
		{weight: "1000000", code: pkgerror.CodeInvalidInput},
		{weight: "-1", code: pkgerror.CodeInvalidInput},
		{weight: "", code: pkgerror.CodeInvalidInput},
		{weight: "heavy", code: pkgerror.CodeInvalidFormat},
		{weight: "NaN", code: pkgerror.CodeInvalidFormat},
		{weight: "nan", code: pkgerror.CodeInvalidFormat},
		{weight: "Inf", code: pkgerror.CodeInvalidFormat},
		{weight: "-Infinity", code: pkgerror.CodeInvalidFormat},
		{weight: "1e400", code: pkgerror.CodeInvalidFormat},
	}

	for _, tc := range tests {
		q := validQuery()
		q.Set("weight", tc.weight)
		shipment, err := parseShipment(q)
		if tc.ok {
			if err != nil {
				t.Fatalf("weight %q: unexpected error %v", tc.weight, err)
			}
			continue
		}
		if !pkgerror.IsCode(err, tc.code) {
			t.Fatalf("weight %q: expected %s, got %v", tc.weight, tc.code, err)
		}
		if shipment.Weight != 0 {
			t.Fatalf("weight %q: rejected shipment carries weight %v", tc.weight, shipment.Weight)
		}
	}
}

func TestParseShipmentMalformedCustomerID(t *testing.T) {
	q := validQuery()
	q.Set("customer_id", "not-a-uuid")
	q.Set("customer_slug", "bad slug")

	_, err := parseShipment(q)
	if !pkgerror.IsCode(err, pkgerror.CodeInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	want := "customer_id must be a valid UUID; customer_slug must contain only lowercase letters, digits and hyphens"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestParseShipmentMissingEverything(t *testing.T) {
	_, err := parseShipment(url.Values{})
	if !pkgerror.IsCode(err, pkgerror.CodeInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	want := "origin_country_id is required; destination_country_id is required; weight is required; " +
		"customer_id is required; customer_name is required; customer_slug is required"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}
