package dto

import "github.com/BruksfildServices01/realty-api/internal/models"

type PropertyImageDTO struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

type PropertyDTO struct {
	PID           string  `json:"pid"`
	PropertyType  string  `json:"property_type"`
	Title         string  `json:"title"`
	SellerName    string  `json:"seller_name"`
	PhoneNumber   string  `json:"phone_number"`
	Email         string  `json:"email"`
	StreetAddress string  `json:"street_address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Price         string  `json:"price"`
	Size          string  `json:"size"`
	LegalDocument bool    `json:"legal_document"`
	Map           *string `json:"map"`

	Status          string  `json:"status"`
	Action          string  `json:"action"`
	CreatedDate     *string `json:"created_date"`
	TransactionDate *string `json:"transaction_date"`

	Bedrooms  *uint `json:"bedrooms"`
	Bathrooms *uint `json:"bathrooms"`
	BuiltYear *uint `json:"built_year"`

	// User is the owner's username, null once the owner is deleted.
	User   *string            `json:"user"`
	Images []PropertyImageDTO `json:"images"`
}

func Property(p *models.Property, url URLFunc) PropertyDTO {
	out := PropertyDTO{
		PID:             p.PID,
		PropertyType:    p.PropertyType,
		Title:           p.Title,
		SellerName:      p.SellerName,
		PhoneNumber:     p.PhoneNumber,
		Email:           p.Email,
		StreetAddress:   p.StreetAddress,
		City:            p.City,
		State:           p.State,
		Price:           p.Price.StringFixed(2),
		Size:            p.Size.StringFixed(2),
		LegalDocument:   p.LegalDocument,
		Map:             p.Map,
		Status:          p.Status,
		Action:          p.Action,
		CreatedDate:     formatDate(p.CreatedDate),
		TransactionDate: formatDate(p.TransactionDate),
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		BuiltYear:       p.BuiltYear,
		Images:          make([]PropertyImageDTO, 0, len(p.Images)),
	}

	if p.User != nil {
		name := p.User.Username
		out.User = &name
	}
	for _, img := range p.Images {
		if img.Image == "" {
			continue
		}
		out.Images = append(out.Images, PropertyImageDTO{ID: img.ID, Image: url(img.Image)})
	}
	return out
}

func Properties(props []models.Property, url URLFunc) []PropertyDTO {
	out := make([]PropertyDTO, 0, len(props))
	for i := range props {
		out = append(out, Property(&props[i], url))
	}
	return out
}
