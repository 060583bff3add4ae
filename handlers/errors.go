package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"expense-tracker-go-be/apperror"
	"expense-tracker-go-be/logging"
)

// ErrorHandler is the central converter: every error returned by a handler
// or middleware is written as {success, message, extraDetails} with its
// status. Anything unrecognised becomes a 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	log = logging.Component(log, logging.ComponentHTTP)

	return func(c *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		var fiberErr *fiber.Error
		if !errors.As(err, &appErr) && errors.As(err, &fiberErr) {
			appErr = &apperror.Error{
				Status:       fiberErr.Code,
				Message:      fiberErr.Message,
				ExtraDetails: http.StatusText(fiberErr.Code),
			}
		} else {
			appErr = apperror.From(err)
		}

		var event *zerolog.Event
		if appErr.Status >= fiber.StatusInternalServerError {
			event = log.Error().Err(err)
		} else {
			event = log.Warn()
		}
		event.
			Str(logging.FieldRequestID, c.GetRespHeader(fiber.HeaderXRequestID)).
			Str(logging.FieldMethod, c.Method()).
			Str(logging.FieldPath, c.Path()).
			Int(logging.FieldStatusCode, appErr.Status).
			Str(logging.FieldErrorKind, string(appErr.Kind)).
			Msg(appErr.Message)

		return c.Status(appErr.Status).JSON(fiber.Map{
			"success":      false,
			"message":      appErr.Message,
			"extraDetails": appErr.ExtraDetails,
		})
	}
}
