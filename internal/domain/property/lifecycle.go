package property

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

// Price and size are stored as numeric(15,2).
const (
	maxDecimalPlaces = 2
	maxWholeDigits   = 13
)

var wholeDigitsLimit = decimal.New(1, maxWholeDigits)

// ===============================
// Derivations
// ===============================

func DeriveStatus(mapURL *string) Status {
	if mapURL != nil && strings.TrimSpace(*mapURL) != "" {
		return StatusActive
	}
	return StatusPending
}

// ApplyAction updates the transaction date when the action changes.
// previous is nil for a record that has never been saved.
func ApplyAction(p *models.Property, previous *Action, today time.Time) {
	current := Action(p.Action)
	if previous != nil && *previous == current {
		return
	}

	switch {
	case current == ActionSold:
		d := today
		p.TransactionDate = &d
	case current == ActionOngoing && previous != nil && *previous == ActionSold:
		p.TransactionDate = nil
	}
}

// ===============================
// Validations
// ===============================

func Validate(p *models.Property) error {
	fe := httperr.FieldErrors{}

	if !Type(p.PropertyType).Valid() {
		fe.Add("property_type", "Must be one of House, Apartment, Land.")
	}

	required := map[string]string{
		"title":          p.Title,
		"seller_name":    p.SellerName,
		"phone_number":   p.PhoneNumber,
		"email":          p.Email,
		"street_address": p.StreetAddress,
		"city":           p.City,
		"state":          p.State,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			fe.Add(field, "This field is required.")
		}
	}

	checkAmount(fe, "price", p.Price)
	checkAmount(fe, "size", p.Size)

	if !Action(p.Action).Valid() {
		fe.Add("action", "Must be one of Ongoing, Sold.")
	}

	if Type(p.PropertyType) == TypeHouse {
		if p.Bedrooms == nil {
			fe.Add("bedrooms", "Number of bedrooms is required for houses.")
		}
		if p.Bathrooms == nil {
			fe.Add("bathrooms", "Number of bathrooms is required for houses.")
		}
		if p.BuiltYear == nil {
			fe.Add("built_year", "Built year is required for houses.")
		}
	}

	return fe.Err()
}

func checkAmount(fe httperr.FieldErrors, field string, v decimal.Decimal) {
	switch {
	case v.IsNegative():
		fe.Add(field, "Ensure this value is greater than or equal to 0.")
	case !v.Equal(v.Round(maxDecimalPlaces)):
		fe.Add(field, "Ensure that there are no more than 2 decimal places.")
	case v.GreaterThanOrEqual(wholeDigitsLimit):
		fe.Add(field, "Ensure that there are no more than 13 digits before the decimal point.")
	}
}

// Prepare runs the save-path rules on p before it is written: validation,
// status and transaction date. created_date is stamped on first save, which
// is also the only time a missing action defaults to Ongoing.
func Prepare(p *models.Property, previous *Action, today time.Time) error {
	if previous == nil && p.Action == "" {
		p.Action = string(ActionOngoing)
	}
	if p.Map != nil && strings.TrimSpace(*p.Map) == "" {
		p.Map = nil
	}

	if err := Validate(p); err != nil {
		return err
	}

	p.Status = string(DeriveStatus(p.Map))
	ApplyAction(p, previous, today)

	if previous == nil && p.CreatedDate == nil {
		d := today
		p.CreatedDate = &d
	}
	return nil
}
