package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

var kindStatus = map[commands.Kind]int{
	commands.KindValidation:           http.StatusBadRequest,
	commands.KindInventoryUnavailable: http.StatusConflict,
	commands.KindNoCarrierAvailable:   http.StatusUnprocessableEntity,
	commands.KindPersistenceFailure:   http.StatusServiceUnavailable,
	commands.KindTimeout:              http.StatusServiceUnavailable,
	commands.KindNotFound:             http.StatusNotFound,
	commands.KindInvalidTransition:    http.StatusConflict,
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind commands.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func respondError(ctx echo.Context, err error) error {
	orderErr := commands.Classify(err)
	status := StatusFor(orderErr.Kind)

	if status >= http.StatusInternalServerError {
		ctx.Logger().Errorf("%s %s: %v", ctx.Request().Method, ctx.Path(), orderErr)
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Kind:    string(orderErr.Kind),
		Message: orderErr.PublicMessage(),
	})
}

func badRequest(ctx echo.Context, err error) error {
	ctx.Logger().Debugf("bind %s: %v", ctx.Path(), err)
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    string(commands.KindValidation),
		Message: "invalid request body",
	})
}
