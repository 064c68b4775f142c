package handlers

import (
	"errors"
	"strconv"

	"finance-tracker/internal/service"
	"finance-tracker/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError writes the JSON error body for one of the service error kinds.
// Anything that is not a validation or lookup failure is logged and hidden.
func respondError(c *fiber.Ctx, logger *zap.Logger, op string, err error) error {
	var (
		verr *service.ValidationError
		nf   *service.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verr.Error(),
			"field": verr.Field,
		})
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": nf.Error(),
		})
	}

	logger.Error("Request failed",
		zap.String("op", op),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &service.ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}

func getUserID(c *fiber.Ctx) (int64, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(int64)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	return userID, nil
}
