package command

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-whatsapp-kapso/core"
)

func commandDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.ChannelErrorInternal)
}

func commandValidationError(field string, message string) error {
	return goerrors.NewValidation("command: validation failed", goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ChannelErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}

func commandInvalidTargetError(target string) error {
	return goerrors.New("command: target is not a valid phone number", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ChannelErrorInvalidTarget).
		WithMetadata(map[string]any{"target": target})
}

func commandSendError(result core.SendResult, accountID string) error {
	return goerrors.New(result.Error, goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(core.ChannelErrorExternalFailure).
		WithMetadata(map[string]any{"account_id": accountID})
}
