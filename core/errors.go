package core

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	goerrors "github.com/goliatone/go-errors"
)

const (
	ChannelErrorBadInput        = "CHANNEL_BAD_INPUT"
	ChannelErrorConfiguration   = "CHANNEL_CONFIGURATION"
	ChannelErrorUnauthorized    = "CHANNEL_UNAUTHORIZED"
	ChannelErrorInvalidTarget   = "CHANNEL_INVALID_TARGET"
	ChannelErrorExternalFailure = "CHANNEL_EXTERNAL_FAILURE"
	ChannelErrorNotFound        = "CHANNEL_NOT_FOUND"
	ChannelErrorRouteConflict   = "CHANNEL_ROUTE_CONFLICT"
	ChannelErrorInternal        = "CHANNEL_INTERNAL_ERROR"
)

type ErrorMapper func(err error) *goerrors.Error

// MapError turns any error into a go-errors envelope with an HTTP code and a
// channel text code.
func MapError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureChannelErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "secret mismatch"):
		return newChannelError(err.Error(), goerrors.CategoryAuth, ChannelErrorUnauthorized)
	case strings.Contains(msg, "already registered"):
		return newChannelError(err.Error(), goerrors.CategoryConflict, ChannelErrorRouteConflict)
	case strings.Contains(msg, "not configured"):
		return newChannelError(err.Error(), goerrors.CategoryBadInput, ChannelErrorConfiguration)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newChannelError(err.Error(), goerrors.CategoryBadInput, ChannelErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureChannelErrorEnvelope(mapped)
}

func newChannelError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureChannelErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureChannelErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = channelHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultChannelTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultChannelTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ChannelErrorBadInput
	case goerrors.CategoryNotFound:
		return ChannelErrorNotFound
	case goerrors.CategoryConflict:
		return ChannelErrorRouteConflict
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ChannelErrorUnauthorized
	case goerrors.CategoryExternal:
		return ChannelErrorExternalFailure
	default:
		return ChannelErrorInternal
	}
}

func channelHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func configError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ChannelErrorConfiguration)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func configValidationError(source error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(source, &fieldErrs) {
		return goerrors.Wrap(source, goerrors.CategoryValidation, "core: account settings validation failed").
			WithCode(http.StatusBadRequest).
			WithTextCode(ChannelErrorConfiguration)
	}
	fields := make([]goerrors.FieldError, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		fields = append(fields, goerrors.FieldError{
			Field:   fieldErr.Field(),
			Message: "failed " + fieldErr.Tag() + " validation",
		})
	}
	return goerrors.NewValidation("core: account settings validation failed", fields...).
		WithCode(http.StatusBadRequest).
		WithTextCode(ChannelErrorConfiguration)
}
