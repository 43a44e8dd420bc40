package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/dto"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/storage"
	"github.com/BruksfildServices01/realty-api/internal/middleware"
)

// bind decodes JSON, form or multipart bodies into req and runs its
// binding tags. An empty body is not an error so partial updates may send
// nothing.
func bind(c *gin.Context, req any) error {
	setupValidatorOnce.Do(setupValidator)

	err := c.ShouldBind(req)
	if errors.Is(err, io.EOF) {
		// empty body: nothing decoded, but required fields still apply
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return nil
	}
	if verr, ok := validationError(err); ok {
		return verr
	}
	return httperr.ErrBusiness(httperr.KindValidation, "invalid_request", err.Error())
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// openFiles opens every file sent under field. The returned func closes
// them.
func openFiles(c *gin.Context, field string) ([]io.Reader, func(), error) {
	noop := func() {}
	if !isMultipart(c) {
		return nil, noop, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, httperr.ErrBusiness(httperr.KindValidation, "invalid_request", err.Error())
	}

	var (
		readers []io.Reader
		files   []multipart.File
	)
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	for _, fh := range form.File[field] {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, noop, err
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return readers, closeAll, nil
}

func openFile(c *gin.Context, field string) (io.Reader, func(), error) {
	readers, closeAll, err := openFiles(c, field)
	if err != nil || len(readers) == 0 {
		return nil, closeAll, err
	}
	return readers[0], closeAll, nil
}

func urlsFor(ctx context.Context, st storage.Storage) dto.URLFunc {
	return func(key string) string {
		u, err := st.URL(ctx, key)
		if err != nil {
			return key
		}
		return u
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.NotFound(c, "not_found", "Not found.")
		return 0, false
	}
	return uint(id), true
}

func actorOf(c *gin.Context) account.Actor {
	if u := middleware.CurrentUser(c); u != nil {
		return account.ActorOf(u)
	}
	return account.Actor{}
}
