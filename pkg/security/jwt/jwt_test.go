package jwt

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobboard/pkg/auth"
)

const (
	testSecret = "test-secret"
	testIssuer = "jobboard"
)

func testUser() auth.User {
	return auth.User{
		ID:    uuid.New(),
		Email: "alice@example.com",
		Role:  auth.RoleApplicant,
	}
}

func newApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":    c.Locals("userId"),
			"email": c.Locals("userEmail"),
			"role":  c.Locals("userRole"),
		})
	})
	return app
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, time.Minute)
	user := testUser()
	token, err := gen.Generate(context.Background(), user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	app := newApp(testSecret, testIssuer)
	for _, header := range []string{"Bearer " + token, token} {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("header %q: expected 200, got %d", header, resp.StatusCode)
		}
	}
}

func TestMiddlewareRejects(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, time.Minute)
	user := testUser()
	good, err := gen.Generate(context.Background(), user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	otherSecret, err := NewGenerator("other-secret", testIssuer, time.Minute).Generate(context.Background(), user)
	if err != nil {
		t.Fatalf("generate foreign: %v", err)
	}
	expired, err := NewGenerator(testSecret, testIssuer, -time.Minute).Generate(context.Background(), user)
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}
	wrongIssuer, err := NewGenerator(testSecret, "someone-else", time.Minute).Generate(context.Background(), user)
	if err != nil {
		t.Fatalf("generate wrong issuer: %v", err)
	}

	app := newApp(testSecret, testIssuer)
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"garbage", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + otherSecret},
		{"expired", "Bearer " + expired},
		{"wrong issuer", "Bearer " + wrongIssuer},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request: %v", tc.name, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", tc.name, resp.StatusCode)
		}
	}

	// Sanity: the good token still passes against the same app.
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+good)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", resp.StatusCode)
	}
}

func TestGenerateClaims(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, time.Minute)
	user := testUser()
	token, err := gen.Generate(context.Background(), user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	app := fiber.New()
	var gotID, gotEmail, gotRole string
	app.Get("/claims", NewAuthMiddleware(testSecret, testIssuer), func(c *fiber.Ctx) error {
		gotID, _ = c.Locals("userId").(string)
		gotEmail, _ = c.Locals("userEmail").(string)
		gotRole, _ = c.Locals("userRole").(string)
		return c.SendStatus(fiber.StatusOK)
	})
	req := httptest.NewRequest("GET", "/claims", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("request: %v", err)
	}
	if gotID != user.ID.String() || gotEmail != user.Email || gotRole != string(user.Role) {
		t.Fatalf("claims = (%s, %s, %s)", gotID, gotEmail, gotRole)
	}
}
