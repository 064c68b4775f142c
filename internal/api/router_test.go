package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"finance-tracker/internal/api/handlers"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type okHealth struct{}

func (okHealth) Check(context.Context) error { return nil }

func newTestApp() *fiber.App {
	logger := zap.NewNop()
	h := Handlers{
		Auth:     handlers.NewAuthHandler(nil, logger),
		Web:      handlers.NewWebHandler(nil, nil, nil, nil, nil, okHealth{}, 1, logger),
		Accounts: handlers.NewAccountHandler(nil, nil, nil, nil, logger),
		Planning: handlers.NewPlanningHandler(nil, nil, nil, nil, logger),
	}
	jwtManager := auth.NewJWTManager("router-test", time.Hour, time.Hour)
	return SetupRouter(h, jwtManager, Options{RequestTimeout: time.Second}, logger)
}

func TestRouter(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", fiber.MethodGet, "/health", fiber.StatusOK},
		{"swagger doc", fiber.MethodGet, "/swagger/doc.json", fiber.StatusOK},
		{"api requires token", fiber.MethodGet, "/api/v1/accounts", fiber.StatusUnauthorized},
		{"recurring run requires token", fiber.MethodPost, "/api/v1/recurring/run", fiber.StatusUnauthorized},
		{"unknown route", fiber.MethodGet, "/nope", fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if resp.Header.Get(middleware.RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
		})
	}
}

func TestSwaggerDocServed(t *testing.T) {
	resp, err := newTestApp().Test(httptest.NewRequest(fiber.MethodGet, "/swagger/doc.json", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("doc.json is not JSON: %v", err)
	}
	if doc.Info.Title != "Finance Tracker API" {
		t.Errorf("title = %q", doc.Info.Title)
	}
	if _, ok := doc.Paths["/transactions/add"]; !ok {
		t.Error("doc.json is missing /transactions/add")
	}
}
