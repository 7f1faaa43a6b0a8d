package http

import (
	"context"
	"errors"
	"net/http"

	"case-analysis/internal/analysis"
	"case-analysis/pkg/llmprovider"
	"case-analysis/pkg/response"
)

// mapError translates domain/use-case errors into HTTP errors.
func (h *handler) mapError(err error) *response.HTTPError {
	var authErr *llmprovider.AuthenticationError
	var tooLarge *llmprovider.PayloadTooLargeError
	var provErr *llmprovider.ProviderError

	switch {
	case errors.Is(err, analysis.ErrEmptyRequest),
		errors.Is(err, analysis.ErrTooManyFiles),
		errors.Is(err, analysis.ErrInvalidFile),
		errors.Is(err, llmprovider.ErrUnsupportedProvider),
		errors.Is(err, llmprovider.ErrInvalidAttachment):
		return response.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, analysis.ErrFileTooLarge):
		return response.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
	case errors.As(err, &authErr):
		return response.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.As(err, &tooLarge):
		return response.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return response.NewHTTPError(http.StatusGatewayTimeout, "the provider did not answer in time")
	case errors.As(err, &provErr):
		return response.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return response.NewHTTPError(http.StatusInternalServerError, response.DefaultErrorMessage)
	}
}
