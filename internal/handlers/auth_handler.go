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

type AuthHandler struct {
	register       *ucAccount.Register
	login          *ucAccount.Login
	logout         *ucAccount.Logout
	changePassword *ucAccount.ChangePassword
	storage        storage.Storage
}

func NewAuthHandler(
	register *ucAccount.Register,
	login *ucAccount.Login,
	logout *ucAccount.Logout,
	changePassword *ucAccount.ChangePassword,
	st storage.Storage,
) *AuthHandler {
	return &AuthHandler{
		register:       register,
		login:          login,
		logout:         logout,
		changePassword: changePassword,
		storage:        st,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email     string `json:"email" form:"email" binding:"required,email,max=254"`
	Username  string `json:"username" form:"username" binding:"required,username"`
	Password  string `json:"password" form:"password" binding:"required"`
	Password2 string `json:"password2" form:"password2" binding:"required"`

	FirstName   string                 `json:"first_name" form:"first_name" binding:"max=150"`
	LastName    string                 `json:"last_name" form:"last_name" binding:"max=150"`
	PhoneNumber *string                `json:"phone_number" form:"phone_number" binding:"omitempty,max=15"`
	DateOfBirth nullable.Value[string] `json:"date_of_birth" form:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Bio         string                 `json:"bio" form:"bio" binding:"max=500"`
	DigitalID   *string                `json:"digital_id" form:"digital_id" binding:"omitempty,max=50"`
	Address     *string                `json:"address" form:"address" binding:"omitempty,max=100"`
	City        *string                `json:"city" form:"city" binding:"omitempty,max=100"`
	Role        string                 `json:"role" form:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" form:"old_password" binding:"required"`
	NewPassword        string `json:"new_password" form:"new_password" binding:"required,min=8"`
	NewPasswordConfirm string `json:"new_password_confirm" form:"new_password_confirm" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
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

	res, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Email:          req.Email,
		Username:       req.Username,
		Password:       req.Password,
		Password2:      req.Password2,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PhoneNumber:    req.PhoneNumber,
		DateOfBirth:    req.DateOfBirth.Ptr(),
		Bio:            req.Bio,
		DigitalID:      req.DigitalID,
		Address:        req.Address,
		City:           req.City,
		Role:           req.Role,
		ProfilePicture: picture,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.AuthDTO{
		User:  dto.User(res.User, urlsFor(c.Request.Context(), h.storage)),
		Token: res.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.AuthDTO{
		User:  dto.User(res.User, urlsFor(c.Request.Context(), h.storage)),
		Token: res.Token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.logout.Execute(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"detail": "Successfully logged out."})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	token, err := h.changePassword.Execute(
		c.Request.Context(),
		middleware.CurrentUser(c),
		ucAccount.ChangePasswordInput{
			OldPassword:        req.OldPassword,
			NewPassword:        req.NewPassword,
			NewPasswordConfirm: req.NewPasswordConfirm,
		},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":   "Password changed successfully",
		"new_token": token,
	})
}
