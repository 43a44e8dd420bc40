package property

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	domain "github.com/BruksfildServices01/realty-api/internal/domain/property"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/models"
	"github.com/BruksfildServices01/realty-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreatePropertyInput struct {
	PropertyType  string
	Title         string
	SellerName    string
	PhoneNumber   string
	Email         string
	StreetAddress string
	City          string
	State         string
	Price         *decimal.Decimal
	Size          *decimal.Decimal
	LegalDocument bool
	Map           *string
	Action        string

	Bedrooms  *uint
	Bathrooms *uint
	BuiltYear *uint

	Images []io.Reader
}

// ======================================================
// USE CASE
// ======================================================

type CreateProperty struct {
	repo   domain.Repository
	images *Images
	clock  *timezone.Clock
	audit  *audit.Dispatcher
}

func NewCreateProperty(
	repo domain.Repository,
	images *Images,
	clock *timezone.Clock,
	audit *audit.Dispatcher,
) *CreateProperty {
	return &CreateProperty{
		repo:   repo,
		images: images,
		clock:  clock,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateProperty) Execute(
	ctx context.Context,
	owner *models.User,
	in CreatePropertyInput,
) (*models.Property, error) {

	// --------------------------------------------------
	// 1. Fields
	// --------------------------------------------------
	p := &models.Property{
		PropertyType:  strings.TrimSpace(in.PropertyType),
		Title:         strings.TrimSpace(in.Title),
		SellerName:    strings.TrimSpace(in.SellerName),
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		Email:         strings.TrimSpace(in.Email),
		StreetAddress: strings.TrimSpace(in.StreetAddress),
		City:          strings.TrimSpace(in.City),
		State:         strings.TrimSpace(in.State),
		LegalDocument: in.LegalDocument,
		Map:           in.Map,
		Action:        strings.TrimSpace(in.Action),
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		BuiltYear:     in.BuiltYear,
	}
	if owner != nil {
		p.UserID = &owner.ID
	}

	fe := httperr.FieldErrors{}
	if in.Price == nil {
		fe.Add("price", "This field is required.")
	} else {
		p.Price = *in.Price
	}
	if in.Size == nil {
		fe.Add("size", "This field is required.")
	} else {
		p.Size = *in.Size
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	// validated up front so a bad request never touches the counter
	if err := domain.Prepare(p, nil, uc.clock.Today()); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Images are decoded before the transaction
	// --------------------------------------------------
	images, err := uc.images.Prepare(in.Images)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. pid + row + images, all or nothing
	// --------------------------------------------------
	var uploaded []string
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		n, err := tx.NextSequence(ctx, domain.Type(p.PropertyType))
		if err != nil {
			return err
		}
		p.PID = domain.FormatPID(domain.Type(p.PropertyType), n)

		if err := tx.Create(ctx, p); err != nil {
			return err
		}
		return uc.images.attach(ctx, tx, p, images, &uploaded)
	})
	if err != nil {
		uc.images.remove(context.WithoutCancel(ctx), uploaded)
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit + fresh copy with relations
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   p.UserID,
		Action:   audit.ActionPropertyCreated,
		Entity:   audit.EntityProperty,
		EntityID: p.PID,
		Metadata: map[string]any{"images": len(images)},
	})

	return uc.repo.FindByPID(ctx, p.PID)
}
