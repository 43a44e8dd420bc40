package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/models"
	ucAccount "github.com/BruksfildServices01/realty-api/internal/usecase/account"
)

const (
	ContextUser  = "authUser"
	ContextToken = "authToken"
)

// bearer extracts the token from "Bearer <t>" or the DRF style "Token <t>".
func bearer(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") && !strings.EqualFold(parts[0], "Token") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func authenticate(c *gin.Context, uc *ucAccount.Authenticate, header string) bool {
	token, ok := bearer(header)
	if !ok {
		httperr.Respond(c, httperr.Authentication("invalid_authorization_header", "Invalid authorization header."))
		return false
	}

	user, err := uc.Execute(c.Request.Context(), token)
	if err != nil {
		httperr.Respond(c, err)
		return false
	}

	c.Set(ContextUser, user)
	c.Set(ContextToken, token)
	return true
}

// AuthMiddleware rejects requests without a valid token.
func AuthMiddleware(uc *ucAccount.Authenticate) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			httperr.Respond(c, httperr.Authentication("not_authenticated", "Authentication credentials were not provided."))
			return
		}
		if !authenticate(c, uc, header) {
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware lets anonymous requests through but still rejects
// a bad token.
func OptionalAuthMiddleware(uc *ucAccount.Authenticate) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" && !authenticate(c, uc, header) {
			return
		}
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			httperr.Respond(c, httperr.Permission("admin_only", "You do not have permission to perform this action."))
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextToken)
}
