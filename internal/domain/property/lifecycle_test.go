package property

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

func uintPtr(v uint) *uint { return &v }
func strPtr(v string) *string { return &v }
func actionPtr(a Action) *Action { return &a }

func validHouse() *models.Property {
	return &models.Property{
		PropertyType:  string(TypeHouse),
		Title:         "Family house",
		SellerName:    "Ana",
		PhoneNumber:   "555-0100",
		Email:         "ana@example.com",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		State:         "IL",
		Price:         decimal.NewFromInt(100000),
		Size:          decimal.NewFromInt(120),
		Bedrooms:      uintPtr(3),
		Bathrooms:     uintPtr(2),
		BuiltYear:     uintPtr(2010),
	}
}

var today = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

func TestFormatPID(t *testing.T) {
	assert.Equal(t, "H000007", FormatPID(TypeHouse, 7))
	assert.Equal(t, "A000001", FormatPID(TypeApartment, 1))
	assert.Equal(t, "L123456", FormatPID(TypeLand, 123456))
	assert.Equal(t, "H1000000", FormatPID(TypeHouse, 1000000))
}

func TestMaxPIDNumber_IsNumeric(t *testing.T) {
	// "H999999" sorts after "H1000000" lexicographically.
	assert.Equal(t, int64(1000000), MaxPIDNumber([]string{"H999999", "H1000000", "bogus"}))
	assert.Equal(t, int64(0), MaxPIDNumber(nil))
}

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, StatusPending, DeriveStatus(nil))
	assert.Equal(t, StatusPending, DeriveStatus(strPtr("  ")))
	assert.Equal(t, StatusActive, DeriveStatus(strPtr("https://maps.example.com/x")))
}

func TestApplyAction(t *testing.T) {
	earlier := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		previous *Action
		current  Action
		date     *time.Time
		want     *time.Time
	}{
		{"new ongoing", nil, ActionOngoing, nil, nil},
		{"new sold", nil, ActionSold, nil, &today},
		{"ongoing to sold", actionPtr(ActionOngoing), ActionSold, nil, &today},
		{"sold to ongoing", actionPtr(ActionSold), ActionOngoing, &earlier, nil},
		{"sold to sold", actionPtr(ActionSold), ActionSold, &earlier, &earlier},
		{"ongoing to ongoing", actionPtr(ActionOngoing), ActionOngoing, nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &models.Property{Action: string(tc.current), TransactionDate: tc.date}
			ApplyAction(p, tc.previous, today)
			if tc.want == nil {
				assert.Nil(t, p.TransactionDate)
				return
			}
			require.NotNil(t, p.TransactionDate)
			assert.True(t, tc.want.Equal(*p.TransactionDate))
		})
	}
}

func TestValidate_HouseRequiresRooms(t *testing.T) {
	for _, field := range []string{"bedrooms", "bathrooms", "built_year"} {
		t.Run(field, func(t *testing.T) {
			p := validHouse()
			switch field {
			case "bedrooms":
				p.Bedrooms = nil
			case "bathrooms":
				p.Bathrooms = nil
			case "built_year":
				p.BuiltYear = nil
			}
			p.Action = string(ActionOngoing)

			err := Validate(p)
			be, ok := httperr.As(err)
			require.True(t, ok)
			assert.Equal(t, httperr.KindValidation, be.Kind)
			assert.Contains(t, be.Fields, field)
		})
	}
}

func TestValidate_LandNeedsNoRooms(t *testing.T) {
	p := validHouse()
	p.PropertyType = string(TypeLand)
	p.Bedrooms, p.Bathrooms, p.BuiltYear = nil, nil, nil
	p.Action = string(ActionOngoing)

	assert.NoError(t, Validate(p))
}

func TestValidate_Fields(t *testing.T) {
	p := validHouse()
	p.PropertyType = "Castle"
	p.Title = ""
	p.Price = decimal.NewFromInt(-1)
	p.Action = "Rented"

	be, ok := httperr.As(Validate(p))
	require.True(t, ok)
	for _, f := range []string{"property_type", "title", "price", "action"} {
		assert.Contains(t, be.Fields, f)
	}
}

func TestValidate_AmountsFitNumericColumn(t *testing.T) {
	cases := []struct {
		name  string
		value string
		msg   string
	}{
		{"three decimals", "10.125", "Ensure that there are no more than 2 decimal places."},
		{"fourteen whole digits", "10000000000000", "Ensure that there are no more than 13 digits before the decimal point."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validHouse()
			p.Price = decimal.RequireFromString(tc.value)
			p.Size = decimal.RequireFromString(tc.value)

			be, ok := httperr.As(Validate(p))
			require.True(t, ok)
			assert.Equal(t, tc.msg, be.Fields["price"])
			assert.Equal(t, tc.msg, be.Fields["size"])
		})
	}

	p := validHouse()
	p.Price = decimal.RequireFromString("9999999999999.99")
	p.Size = decimal.RequireFromString("0.50")
	assert.NoError(t, Validate(p))
}

func TestPrepare_EmptyActionOnlyDefaultsOnCreate(t *testing.T) {
	p := validHouse()
	prev := ActionSold

	assert.Error(t, Prepare(p, &prev, today))
	assert.Empty(t, p.Action)
}

func TestPrepare_NewHouse(t *testing.T) {
	p := validHouse()

	require.NoError(t, Prepare(p, nil, today))

	assert.Equal(t, string(StatusPending), p.Status)
	assert.Equal(t, string(ActionOngoing), p.Action)
	assert.Nil(t, p.TransactionDate)
	require.NotNil(t, p.CreatedDate)
	assert.True(t, today.Equal(*p.CreatedDate))
}

func TestPrepare_MapTogglesStatus(t *testing.T) {
	p := validHouse()
	p.Map = strPtr("https://maps.example.com/p/1")
	require.NoError(t, Prepare(p, nil, today))
	assert.Equal(t, string(StatusActive), p.Status)

	p.Map = strPtr("")
	prev := ActionOngoing
	require.NoError(t, Prepare(p, &prev, today))
	assert.Equal(t, string(StatusPending), p.Status)
	assert.Nil(t, p.Map)
}

func TestPrepare_InvalidLeavesRecordUntouched(t *testing.T) {
	p := validHouse()
	p.Bedrooms = nil
	p.Action = string(ActionSold)

	assert.Error(t, Prepare(p, nil, today))
	assert.Empty(t, p.Status)
	assert.Nil(t, p.TransactionDate)
	assert.Nil(t, p.CreatedDate)
}
