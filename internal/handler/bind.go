package handler

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
	"github.com/noah-isme/classroom-seating-api/pkg/response"
)

const maxUploadBytes = 5 << 20

// bindJSON decodes and validates a JSON body, writing the error response on failure.
func bindJSON(c *gin.Context, validate *validator.Validate, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	if validate != nil {
		if err := validate.Struct(dest); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
			return false
		}
	}
	return true
}

// readUpload returns the "file" multipart part when present, otherwise the raw body.
func readUpload(c *gin.Context) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if mediaType == "multipart/form-data" {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close() //nolint:errcheck
		return readLimited(file)
	}
	return readLimited(c.Request.Body)
}

// readLimited refuses payloads over maxUploadBytes instead of truncating them.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("upload exceeds %d bytes", maxUploadBytes)
	}
	return data, nil
}
