package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
)

// BindRequest decodes the request body into T and validates it.
func BindRequest[T any](c echo.Context) (T, error) {
	var v T

	if err := (&echo.DefaultBinder{}).BindBody(c, &v); err != nil {
		return v, httperror.WrapError(http.StatusBadRequest, err)
	}

	if v, err := Validate(v); err != nil {
		return v, httperror.WrapError(http.StatusBadRequest, err)
	}

	return v, nil
}

// BindPatch decodes a merge patch body into T and validates the fields it sets.
// Both application/json and application/merge-patch+json bodies are accepted.
func BindPatch[T any](c echo.Context) (T, error) {
	var v T

	if err := json.NewDecoder(c.Request().Body).Decode(&v); err != nil {
		return v, httperror.WrapError(http.StatusBadRequest, err)
	}

	if v, err := ValidatePartial(v); err != nil {
		return v, httperror.WrapError(http.StatusBadRequest, err)
	}

	return v, nil
}

// PeekBody decodes the JSON body into T without consuming it, so the next
// handler can bind it again.
func PeekBody[T any](c echo.Context) (T, error) {
	var v T

	req := c.Request()
	if req.Body == nil {
		return v, nil
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return v, httperror.WrapError(http.StatusBadRequest, err)
	}
	req.Body = io.NopCloser(bytes.NewReader(data))

	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, httperror.WrapError(http.StatusBadRequest, err)
	}
	return v, nil
}
