package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:     http.StatusBadRequest,
		KindAuthentication: http.StatusUnauthorized,
		KindPermission:     http.StatusForbidden,
		KindNotFound:       http.StatusNotFound,
		KindConflict:       http.StatusConflict,
		Kind(0):            http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.Status())
	}
}

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("save: %w", Permission("not_owner", "nope"))

	assert.True(t, IsBusiness(err, "not_owner"))
	assert.True(t, IsKind(err, KindPermission))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsBusiness(errors.New("plain"), "not_owner"))
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	assert.NoError(t, fe.Err())

	fe.Add("bedrooms", "first")
	fe.Add("bedrooms", "second")
	fe.Add("bathrooms", "required")

	be, ok := As(fe.Err())
	require.True(t, ok)
	assert.Equal(t, KindValidation, be.Kind)
	assert.Equal(t, "first", be.Fields["bedrooms"])
	assert.Len(t, be.Fields, 2)
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("business error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, Validation("email", "Email already exists"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "validation_error", body.Code)
		assert.Equal(t, "Email already exists", body.Fields["email"])
	})

	t.Run("unknown error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, errors.New("db down"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Len(t, c.Errors, 1)
	})
}
