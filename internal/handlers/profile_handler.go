package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/realty-api/internal/dto"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/httpresp"
	"github.com/BruksfildServices01/realty-api/internal/infra/storage"
	"github.com/BruksfildServices01/realty-api/internal/middleware"
	"github.com/BruksfildServices01/realty-api/internal/nullable"
	ucAccount "github.com/BruksfildServices01/realty-api/internal/usecase/account"
)

type ProfileHandler struct {
	update  *ucAccount.UpdateProfile
	storage storage.Storage
}

func NewProfileHandler(update *ucAccount.UpdateProfile, st storage.Storage) *ProfileHandler {
	return &ProfileHandler{update: update, storage: st}
}

// UpdateProfileRequest ignores email, role and digital_id; those are
// read-only for the owner.
type UpdateProfileRequest struct {
	Username    *string                `json:"username" form:"username" binding:"omitempty,username"`
	FirstName   *string                `json:"first_name" form:"first_name" binding:"omitempty,max=150"`
	LastName    *string                `json:"last_name" form:"last_name" binding:"omitempty,max=150"`
	PhoneNumber nullable.Value[string] `json:"phone_number" form:"phone_number" binding:"omitempty,max=15"`
	DateOfBirth nullable.Value[string] `json:"date_of_birth" form:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Bio         *string                `json:"bio" form:"bio" binding:"omitempty,max=500"`
	Address     nullable.Value[string] `json:"address" form:"address" binding:"omitempty,max=100"`
	City        nullable.Value[string] `json:"city" form:"city" binding:"omitempty,max=100"`
}

// clearable maps an explicit null to "", which the profile update stores
// as NULL.
func clearable(v nullable.Value[string]) *string {
	if !v.Set() {
		return nil
	}
	s := ""
	if p := v.Ptr(); p != nil {
		s = *p
	}
	return &s
}

func (h *ProfileHandler) Get(c *gin.Context) {
	httpresp.OK(c, dto.User(middleware.CurrentUser(c), urlsFor(c.Request.Context(), h.storage)))
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	picture, closeFiles, err := openFile(c, "profile_picture")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer closeFiles()

	user, err := h.update.Execute(c.Request.Context(), middleware.CurrentUser(c), ucAccount.UpdateProfileInput{
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PhoneNumber:    clearable(req.PhoneNumber),
		DateOfBirth:    clearable(req.DateOfBirth),
		Bio:            req.Bio,
		Address:        clearable(req.Address),
		City:           clearable(req.City),
		ProfilePicture: picture,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.User(user, urlsFor(c.Request.Context(), h.storage)))
}
