package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/realty-api/internal/dto"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/httpresp"
	"github.com/BruksfildServices01/realty-api/internal/infra/storage"
	ucAccount "github.com/BruksfildServices01/realty-api/internal/usecase/account"
)

type UserHandler struct {
	list       *ucAccount.ListUsers
	get        *ucAccount.GetUser
	adminPatch *ucAccount.AdminUpdateUser
	delete     *ucAccount.DeleteUser
	storage    storage.Storage
}

func NewUserHandler(
	list *ucAccount.ListUsers,
	get *ucAccount.GetUser,
	adminPatch *ucAccount.AdminUpdateUser,
	del *ucAccount.DeleteUser,
	st storage.Storage,
) *UserHandler {
	return &UserHandler{
		list:       list,
		get:        get,
		adminPatch: adminPatch,
		delete:     del,
		storage:    st,
	}
}

type AdminUpdateUserRequest struct {
	Role      *string `json:"role" form:"role"`
	DigitalID *string `json:"digital_id" form:"digital_id" binding:"omitempty,max=50"`
	IsActive  *bool   `json:"is_active" form:"is_active"`
}

func (h *UserHandler) List(c *gin.Context) {
	page := httpresp.ParsePage(c)

	users, total, err := h.list.Execute(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, dto.Users(users, urlsFor(c.Request.Context(), h.storage)), total, page)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	user, err := h.get.Execute(c.Request.Context(), actorOf(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.AdminUser(user, urlsFor(c.Request.Context(), h.storage)))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req AdminUpdateUserRequest
	if err := bind(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	user, err := h.adminPatch.Execute(c.Request.Context(), actorOf(c), id, ucAccount.AdminUpdateUserInput{
		Role:      req.Role,
		DigitalID: req.DigitalID,
		IsActive:  req.IsActive,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.AdminUser(user, urlsFor(c.Request.Context(), h.storage)))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), actorOf(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
