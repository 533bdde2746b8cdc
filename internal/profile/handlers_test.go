package profile

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func passthrough(c *fiber.Ctx) error { return c.Next() }

func as(userID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

func TestProfileHandlersCreateGet(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs("uid-1", "Neha Bansal", "102304204", "", "NEERAM", "student").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(`SELECT uid, name, roll, email, hostel, role, created_at, updated_at`).
		WithArgs("uid-1").
		WillReturnRows(pgxmock.NewRows(profileColumns).
			AddRow("uid-1", "Neha Bansal", "102304204", "", "NEERAM", "student", now, now))

	app := fiber.New()
	RegisterRoutes(app.Group("/profiles"), NewService(mock), as("uid-1", "student"))

	body, _ := json.Marshal(Profile{Name: "Neha Bansal", Roll: "102304204", Hostel: "NEERAM"})
	req := httptest.NewRequest(http.MethodPost, "/profiles/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/profiles/uid-1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}
	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil || p.Hostel != "NEERAM" {
		t.Fatalf("unexpected body: %v %+v", err, p)
	}
}

func TestProfileHandlersCreateBadRequest(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/profiles"), NewService(nil), passthrough)

	req := httptest.NewRequest(http.MethodPost, "/profiles/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}

	body, _ := json.Marshal(Profile{UID: "uid-1", Role: "pilot"})
	req = httptest.NewRequest(http.MethodPost, "/profiles/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for role")
	}
}

func TestProfileHandlersForbidden(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/profiles"), NewService(nil), as("uid-2", "student"))

	body, _ := json.Marshal(Profile{UID: "uid-1"})
	req := httptest.NewRequest(http.MethodPost, "/profiles/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected forbidden create")
	}

	req = httptest.NewRequest(http.MethodPut, "/profiles/uid-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected forbidden update")
	}
}

func TestProfileHandlersGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT uid, name, roll, email, hostel, role, created_at, updated_at`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	app := fiber.New()
	RegisterRoutes(app.Group("/profiles"), NewService(mock), passthrough)

	req := httptest.NewRequest(http.MethodGet, "/profiles/missing", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestProfileHandlersUpdateRoleOnlyByAdmin(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT uid, name, roll, email, hostel, role, created_at, updated_at`).
		WithArgs("uid-1").
		WillReturnRows(pgxmock.NewRows(profileColumns).
			AddRow("uid-1", "Kabir", "", "", "", "student", now, now))
	// The role in the body is dropped for a non-admin caller.
	mock.ExpectQuery(`UPDATE profiles`).
		WithArgs("uid-1", "Kabir Malhotra", "", "", "", "student").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	app := fiber.New()
	RegisterRoutes(app.Group("/profiles"), NewService(mock), as("uid-1", "student"))

	body, _ := json.Marshal(Profile{Name: "Kabir Malhotra", Role: "admin"})
	req := httptest.NewRequest(http.MethodPut, "/profiles/uid-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProfileHandlersUpdateNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT uid, name, roll, email, hostel, role, created_at, updated_at`).
		WithArgs("uid-9").
		WillReturnError(pgx.ErrNoRows)

	app := fiber.New()
	RegisterRoutes(app.Group("/profiles"), NewService(mock), as("admin-1", "admin"))

	body, _ := json.Marshal(Profile{Name: "x"})
	req := httptest.NewRequest(http.MethodPut, "/profiles/uid-9", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestProfileHandlersCreateUsesCallerRole(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	// A student asking for admin gets their account role.
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs("uid-1", "Priya Gill", "", "", "", "student").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	app := fiber.New()
	RegisterRoutes(app.Group("/profiles"), NewService(mock), as("uid-1", "student"))

	body, _ := json.Marshal(Profile{Name: "Priya Gill", Role: "admin"})
	req := httptest.NewRequest(http.MethodPost, "/profiles/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}
	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil || p.Role != RoleStudent {
		t.Fatalf("expected student profile: %v %+v", err, p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProfileHandlersAdminRoleChangeReachesAccount(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT uid, name, roll, email, hostel, role, created_at, updated_at`).
		WithArgs("uid-7").
		WillReturnRows(pgxmock.NewRows(profileColumns).
			AddRow("uid-7", "Gopal", "", "", "", "student", now, now))
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE profiles`).
		WithArgs("uid-7", "Gopal", "", "", "", "driver").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectExec(`UPDATE users SET role`).
		WithArgs("uid-7", "driver").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	app := fiber.New()
	RegisterRoutes(app.Group("/profiles"), NewService(mock), as("admin-1", "admin"))

	body, _ := json.Marshal(Profile{Role: "driver"})
	req := httptest.NewRequest(http.MethodPut, "/profiles/uid-7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
