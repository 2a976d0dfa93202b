package fiber_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/pluserman/pluserman/internal/logger/adapter/fiber"

	"github.com/pluserman/pluserman/internal/logger"
)

// accessLine is the json format written per request.
type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Route  string `json:"route"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Error  string `json:"error"`
}

func newTestApp(cfg adapter.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(cfg))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})
	app.Get("/users/:userid", func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Params("userid"))
	})
	app.Get("/checkalive", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	app.Get("/broken", func(_ *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "already exists")
	})
	app.Get("/panic-free-error", func(_ *fiber.Ctx) error {
		return errors.New("store down") //nolint:goerr113
	})

	return app
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		targetPath string
		disableCA  bool
		want       *accessLine
	}{
		{
			name:       "root",
			targetPath: "/",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/", Route: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "route with params and query",
			targetPath: "/users/admin?verbose=1",
			want: &accessLine{
				Status: fiber.StatusOK,
				URI:    "/users/admin?verbose=1",
				Route:  "/users/:userid",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name:       "unknown path",
			targetPath: "/nope",
			want: &accessLine{
				Status: fiber.StatusNotFound,
				URI:    "/nope",
				Method: fiber.MethodGet,
				Host:   "example.com",
				Error:  "Cannot GET /nope",
			},
		},
		{
			name:       "fiber error keeps its status",
			targetPath: "/broken",
			want: &accessLine{
				Status: fiber.StatusConflict,
				URI:    "/broken",
				Route:  "/broken",
				Method: fiber.MethodGet,
				Host:   "example.com",
				Error:  "already exists",
			},
		},
		{
			name:       "plain error becomes 500",
			targetPath: "/panic-free-error",
			want: &accessLine{
				Status: fiber.StatusInternalServerError,
				URI:    "/panic-free-error",
				Route:  "/panic-free-error",
				Method: fiber.MethodGet,
				Host:   "example.com",
				Error:  "store down",
			},
		},
		{
			name:       "check alive logged by default",
			targetPath: "/checkalive",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/checkalive", Route: "/checkalive", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "check alive suppressed",
			targetPath: "/checkalive",
			disableCA:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			app := newTestApp(adapter.Config{
				Config:        logger.Log{DisableCheckAlive: tt.disableCA},
				CheckAliveURI: "/checkalive",
				Output:        &out,
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.targetPath, nil))
			require.NoError(t, err)
			_ = resp.Body.Close()

			if tt.want == nil {
				assert.Empty(t, out.String())
				return
			}

			var got accessLine
			require.NoError(t, json.Unmarshal(out.Bytes(), &got), "output: %s", out.String())

			assert.Equal(t, tt.want.Status, resp.StatusCode)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.URI, got.URI)
			assert.Equal(t, tt.want.Method, got.Method)
			assert.Equal(t, tt.want.Host, got.Host)
			assert.Equal(t, tt.want.Error, got.Error)

			if tt.want.Route != "" {
				assert.Equal(t, tt.want.Route, got.Route)
			}
		})
	}
}

func TestNewWithoutOutput(t *testing.T) {
	// nothing enabled, requests still pass through
	app := newTestApp(adapter.Config{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestNext(t *testing.T) {
	var out bytes.Buffer

	app := newTestApp(adapter.Config{
		Next:   func(c *fiber.Ctx) bool { return c.Path() == "/" },
		Output: &out,
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Empty(t, out.String())
}
