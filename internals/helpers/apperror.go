package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

/* =======================================================
   App errors

   One type per failure condition the ingestion/aggregation
   layer can surface. Services return these; controllers
   hand them to Respond() which picks the HTTP status.
   Internal detail never crosses the boundary.
   ======================================================= */

type AppError struct {
	Code    int    // HTTP status
	Message string // short, user-visible
}

func (e *AppError) Error() string { return e.Message }

func InvalidInput(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: fiber.StatusForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}

// StoreFailure wraps a persistence/blob error. The cause is logged, never
// returned to the client.
func StoreFailure(cause error, message string) *AppError {
	if cause != nil {
		log.Println("[ERROR] store failure:", cause)
	}
	return &AppError{Code: fiber.StatusInternalServerError, Message: message}
}

// Respond maps a service error onto the JSON envelope.
func Respond(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return Error(c, appErr.Code, appErr.Message)
	}
	log.Println("[ERROR] unhandled:", err)
	return Error(c, fiber.StatusInternalServerError, "Internal server error")
}
