package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"finance-tracker/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func TestAuthMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, time.Hour)
	app := fiber.New()
	app.Get("/me", AuthMiddleware(jwtManager, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals(UserIDKey).(int64)})
	})

	access, _ := jwtManager.GenerateToken(3, "user3@example.com")
	refresh, _ := jwtManager.GenerateRefreshToken(3)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"garbage", "Bearer nope", fiber.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, fiber.StatusUnauthorized},
		{"access token", "Bearer " + access, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(RequestTimeout(2 * time.Second))
	app.Get("/", func(c *fiber.Ctx) error {
		if _, ok := c.UserContext().Deadline(); !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	generated := resp.Header.Get(RequestIDHeader)
	if len(generated) != 36 {
		t.Errorf("generated id = %q, want a uuid", generated)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("echoed id = %q, want abc-123", got)
	}
}
