package property

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	"github.com/BruksfildServices01/realty-api/internal/domain/account"
	domain "github.com/BruksfildServices01/realty-api/internal/domain/property"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/models"
	"github.com/BruksfildServices01/realty-api/internal/nullable"
	"github.com/BruksfildServices01/realty-api/internal/timezone"
)

// UpdatePropertyInput is a partial update; nil fields keep their value.
// The nullable fields tell an absent key from an explicit null, which clears
// the column. Images are appended after the existing ones.
type UpdatePropertyInput struct {
	PropertyType  *string
	Title         *string
	SellerName    *string
	PhoneNumber   *string
	Email         *string
	StreetAddress *string
	City          *string
	State         *string
	Price         *decimal.Decimal
	Size          *decimal.Decimal
	LegalDocument *bool
	Map           nullable.Value[string]
	Action        *string

	Bedrooms  nullable.Value[uint]
	Bathrooms nullable.Value[uint]
	BuiltYear nullable.Value[uint]

	Images []io.Reader
}

type UpdateProperty struct {
	repo   domain.Repository
	images *Images
	clock  *timezone.Clock
	audit  *audit.Dispatcher
}

func NewUpdateProperty(
	repo domain.Repository,
	images *Images,
	clock *timezone.Clock,
	audit *audit.Dispatcher,
) *UpdateProperty {
	return &UpdateProperty{
		repo:   repo,
		images: images,
		clock:  clock,
		audit:  audit,
	}
}

func (uc *UpdateProperty) Execute(
	ctx context.Context,
	actor account.Actor,
	pid string,
	in UpdatePropertyInput,
) (*models.Property, error) {

	images, err := uc.images.Prepare(in.Images)
	if err != nil {
		return nil, err
	}

	var (
		uploaded []string
		changed  []string
	)
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		p, err := lockByPID(ctx, tx, pid)
		if err != nil {
			return err
		}
		if err := account.Check(actor, account.CapEditProperty, account.PropertyTarget(p)); err != nil {
			return err
		}

		if in.PropertyType != nil && strings.TrimSpace(*in.PropertyType) != p.PropertyType {
			return httperr.Validation("property_type", "Property type cannot be changed once the property is created.")
		}

		previous := domain.Action(p.Action)
		changed = applyPatch(p, in)

		if err := domain.Prepare(p, &previous, uc.clock.Today()); err != nil {
			return err
		}
		if err := tx.Update(ctx, p); err != nil {
			return err
		}
		return uc.images.attach(ctx, tx, p, images, &uploaded)
	})
	if err != nil {
		uc.images.remove(context.WithoutCancel(ctx), uploaded)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   audit.ActionPropertyUpdated,
		Entity:   audit.EntityProperty,
		EntityID: pid,
		Metadata: map[string]any{"fields": changed, "images": len(images)},
	})

	return uc.repo.FindByPID(ctx, pid)
}

func applyPatch(p *models.Property, in UpdatePropertyInput) []string {
	var changed []string

	setString := func(field string, dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
			changed = append(changed, field)
		}
	}
	setString("title", &p.Title, in.Title)
	setString("seller_name", &p.SellerName, in.SellerName)
	setString("phone_number", &p.PhoneNumber, in.PhoneNumber)
	setString("email", &p.Email, in.Email)
	setString("street_address", &p.StreetAddress, in.StreetAddress)
	setString("city", &p.City, in.City)
	setString("state", &p.State, in.State)
	setString("action", &p.Action, in.Action)

	if in.Price != nil {
		p.Price = *in.Price
		changed = append(changed, "price")
	}
	if in.Size != nil {
		p.Size = *in.Size
		changed = append(changed, "size")
	}
	if in.LegalDocument != nil {
		p.LegalDocument = *in.LegalDocument
		changed = append(changed, "legal_document")
	}
	setNullable(&changed, "map", &p.Map, in.Map)
	setNullable(&changed, "bedrooms", &p.Bedrooms, in.Bedrooms)
	setNullable(&changed, "bathrooms", &p.Bathrooms, in.Bathrooms)
	setNullable(&changed, "built_year", &p.BuiltYear, in.BuiltYear)
	return changed
}

func setNullable[T any](changed *[]string, field string, dst **T, v nullable.Value[T]) {
	if v.Set() {
		*dst = v.Ptr()
		*changed = append(*changed, field)
	}
}
