package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/realty-api/internal/domain/property"
	"github.com/BruksfildServices01/realty-api/internal/dto"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/httpresp"
	"github.com/BruksfildServices01/realty-api/internal/infra/storage"
	"github.com/BruksfildServices01/realty-api/internal/middleware"
	"github.com/BruksfildServices01/realty-api/internal/nullable"
	ucProperty "github.com/BruksfildServices01/realty-api/internal/usecase/property"
)

// ======================================================
// HANDLER
// ======================================================

type PropertyHandler struct {
	create      *ucProperty.CreateProperty
	update      *ucProperty.UpdateProperty
	get         *ucProperty.GetProperty
	list        *ucProperty.ListProperties
	delete      *ucProperty.DeleteProperty
	deleteImage *ucProperty.DeletePropertyImage
	storage     storage.Storage
}

func NewPropertyHandler(
	create *ucProperty.CreateProperty,
	update *ucProperty.UpdateProperty,
	get *ucProperty.GetProperty,
	list *ucProperty.ListProperties,
	del *ucProperty.DeleteProperty,
	deleteImage *ucProperty.DeletePropertyImage,
	st storage.Storage,
) *PropertyHandler {
	return &PropertyHandler{
		create:      create,
		update:      update,
		get:         get,
		list:        list,
		delete:      del,
		deleteImage: deleteImage,
		storage:     st,
	}
}

// ======================================================
// REQUEST
// ======================================================

// CreatePropertyRequest carries images under image_files on multipart
// requests. Rules that depend on the whole record, such as rooms on houses,
// run in the domain after binding.
type CreatePropertyRequest struct {
	PropertyType  string                 `json:"property_type" form:"property_type" binding:"required,oneof=House Apartment Land"`
	Title         string                 `json:"title" form:"title" binding:"required,max=200"`
	SellerName    string                 `json:"seller_name" form:"seller_name" binding:"required,max=100"`
	PhoneNumber   string                 `json:"phone_number" form:"phone_number" binding:"required,max=15"`
	Email         string                 `json:"email" form:"email" binding:"required,email,max=254"`
	StreetAddress string                 `json:"street_address" form:"street_address" binding:"required,max=200"`
	City          string                 `json:"city" form:"city" binding:"required,max=100"`
	State         string                 `json:"state" form:"state" binding:"required,max=100"`
	Price         *decimal.Decimal       `json:"price" form:"price" binding:"required"`
	Size          *decimal.Decimal       `json:"size" form:"size" binding:"required"`
	LegalDocument bool                   `json:"legal_document" form:"legal_document"`
	Map           nullable.Value[string] `json:"map" form:"map" binding:"omitempty,max=500,http_url"`
	Action        *string                `json:"action" form:"action" binding:"omitempty,oneof=Ongoing Sold"`

	Bedrooms  *uint `json:"bedrooms" form:"bedrooms"`
	Bathrooms *uint `json:"bathrooms" form:"bathrooms"`
	BuiltYear *uint `json:"built_year" form:"built_year"`
}

// UpdatePropertyRequest is a partial update: absent keys keep their value,
// an explicit null on map or the room counts clears it.
type UpdatePropertyRequest struct {
	PropertyType  *string                `json:"property_type" form:"property_type" binding:"omitempty,oneof=House Apartment Land"`
	Title         *string                `json:"title" form:"title" binding:"omitempty,max=200"`
	SellerName    *string                `json:"seller_name" form:"seller_name" binding:"omitempty,max=100"`
	PhoneNumber   *string                `json:"phone_number" form:"phone_number" binding:"omitempty,max=15"`
	Email         *string                `json:"email" form:"email" binding:"omitempty,email,max=254"`
	StreetAddress *string                `json:"street_address" form:"street_address" binding:"omitempty,max=200"`
	City          *string                `json:"city" form:"city" binding:"omitempty,max=100"`
	State         *string                `json:"state" form:"state" binding:"omitempty,max=100"`
	Price         *decimal.Decimal       `json:"price" form:"price"`
	Size          *decimal.Decimal       `json:"size" form:"size"`
	LegalDocument *bool                  `json:"legal_document" form:"legal_document"`
	Map           nullable.Value[string] `json:"map" form:"map" binding:"omitempty,max=500,http_url"`
	Action        *string                `json:"action" form:"action" binding:"omitempty,oneof=Ongoing Sold"`

	Bedrooms  nullable.Value[uint] `json:"bedrooms" form:"bedrooms"`
	Bathrooms nullable.Value[uint] `json:"bathrooms" form:"bathrooms"`
	BuiltYear nullable.Value[uint] `json:"built_year" form:"built_year"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ======================================================
// READ
// ======================================================

func (h *PropertyHandler) List(c *gin.Context) {
	page := httpresp.ParsePage(c)

	filter := domain.ListFilter{
		Action: domain.Action(strings.TrimSpace(c.Query("action"))),
		Type:   domain.Type(strings.TrimSpace(c.Query("property_type"))),
		Status: domain.Status(strings.TrimSpace(c.Query("status"))),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if c.Query("mine") == "true" {
		if u := middleware.CurrentUser(c); u != nil {
			filter.OwnerID = &u.ID
		}
	}

	props, total, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, dto.Properties(props, urlsFor(c.Request.Context(), h.storage)), total, page)
}

func (h *PropertyHandler) listByAction(c *gin.Context, action domain.Action) {
	page := httpresp.ParsePage(c)

	props, total, err := h.list.ListByAction(c.Request.Context(), action, page.Limit, page.Offset)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, dto.Properties(props, urlsFor(c.Request.Context(), h.storage)), total, page)
}

func (h *PropertyHandler) Ongoing(c *gin.Context) {
	h.listByAction(c, domain.ActionOngoing)
}

func (h *PropertyHandler) Sold(c *gin.Context) {
	h.listByAction(c, domain.ActionSold)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.get.Execute(c.Request.Context(), c.Param("pid"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.Property(p, urlsFor(c.Request.Context(), h.storage)))
}

// ======================================================
// WRITE
// ======================================================

func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := bind(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	images, closeFiles, err := openFiles(c, "image_files")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer closeFiles()

	in := ucProperty.CreatePropertyInput{
		PropertyType:  req.PropertyType,
		Title:         req.Title,
		SellerName:    req.SellerName,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		Price:         req.Price,
		Size:          req.Size,
		LegalDocument: req.LegalDocument,
		Map:           req.Map.Ptr(),
		Action:        deref(req.Action),
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		BuiltYear:     req.BuiltYear,
		Images:        images,
	}

	p, err := h.create.Execute(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.Property(p, urlsFor(c.Request.Context(), h.storage)))
}

func (h *PropertyHandler) Update(c *gin.Context) {
	var req UpdatePropertyRequest
	if err := bind(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	images, closeFiles, err := openFiles(c, "image_files")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer closeFiles()

	p, err := h.update.Execute(c.Request.Context(), actorOf(c), c.Param("pid"), ucProperty.UpdatePropertyInput{
		PropertyType:  req.PropertyType,
		Title:         req.Title,
		SellerName:    req.SellerName,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		Price:         req.Price,
		Size:          req.Size,
		LegalDocument: req.LegalDocument,
		Map:           req.Map,
		Action:        req.Action,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		BuiltYear:     req.BuiltYear,
		Images:        images,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.Property(p, urlsFor(c.Request.Context(), h.storage)))
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), actorOf(c), c.Param("pid")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *PropertyHandler) DeleteImage(c *gin.Context) {
	imageID, ok := parseUintParam(c, "imageID")
	if !ok {
		return
	}

	if err := h.deleteImage.Execute(c.Request.Context(), actorOf(c), c.Param("pid"), imageID); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
