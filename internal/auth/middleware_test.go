package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestJWTMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/private", JWTMiddleware("secret"), func(c *fiber.Ctx) error {
		if c.Locals("user_id") == nil || c.Locals("role") != "driver" {
			return fiber.NewError(fiber.StatusUnauthorized)
		}
		return c.SendStatus(http.StatusOK)
	})

	svc := NewService("secret", nil, nil)

	// missing token
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized")
	}

	// wrong secret
	other := NewService("other", nil, nil)
	bad, _ := other.signToken("driver-1", "driver", TokenTypeAccess, accessTokenTTL)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for foreign token")
	}

	// refresh token used as a bearer
	refresh, _ := svc.signToken("driver-1", "driver", TokenTypeRefresh, refreshTokenTTL)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for refresh token")
	}

	// valid token
	token, _ := svc.signToken("driver-1", "driver", TokenTypeAccess, accessTokenTTL)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok")
	}
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	app.Post("/admin", JWTMiddleware("secret"), RequireRole("admin", "driver"), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	svc := NewService("secret", nil, nil)
	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusNoContent},
		{"driver", http.StatusNoContent},
		{"student", http.StatusForbidden},
	}
	for _, tc := range cases {
		token, err := svc.signToken("user-1", tc.role, TokenTypeAccess, accessTokenTTL)
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("role %s: expected %d, got %d", tc.role, tc.want, resp.StatusCode)
		}
	}
}
