package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finoffice/constants"
	"finoffice/database"
	"finoffice/models/user"
	"finoffice/routes"
	"finoffice/utils"
)

func setupApp(t *testing.T, name string) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, username, email, password, role string) user.User {
	t.Helper()
	u := user.User{Username: username, Email: email, Password: password, Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func doJSON(t *testing.T, app *fiber.App, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestUserLifecycle(t *testing.T) {
	t.Setenv("ORG_EMAIL_DOMAIN", "dwinsoft.in")
	app, db := setupApp(t, "auth_lifecycle")

	admin := createUser(t, db, "admin", "admin@dwinsoft.in", "secret123", constants.RoleAdmin)
	adminToken, err := utils.GenerateToken(admin.ID)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	// Admin creates an HR user.
	resp := doJSON(t, app, http.MethodPost, "/api/auth/create-user", adminToken, map[string]interface{}{
		"username": "hr1",
		"email":    "hr1@dwinsoft.in",
		"password": "p@ss1234",
		"role":     "HR",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create-user status = %d, want 201", resp.StatusCode)
	}

	// Non-organization email is rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/create-user", adminToken, map[string]interface{}{
		"username": "mallory",
		"email":    "mallory@gmail.com",
		"password": "p@ss1234",
		"role":     "Employee",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("outside-domain create status = %d, want 400", resp.StatusCode)
	}

	// Wrong password.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "hr1@dwinsoft.in", "password": "wrong",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("wrong-password login status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["message"] != "Invalid Credentials" {
		t.Errorf("wrong-password message = %v", body["message"])
	}

	// Unknown email.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@dwinsoft.in", "password": "p@ss1234",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("unknown-email login status = %d, want 403", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["message"] != "Access denied. Contact Admin." {
		t.Errorf("unknown-email message = %v", body["message"])
	}

	// Successful login returns token, role and username.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "hr1@dwinsoft.in", "password": "p@ss1234",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	hrToken, _ := body["token"].(string)
	if hrToken == "" {
		t.Fatal("login response missing token")
	}
	if body["role"] != "HR" || body["username"] != "hr1" {
		t.Errorf("login response = %v", body)
	}

	// HR cannot list users.
	resp = doJSON(t, app, http.MethodGet, "/api/auth/users", hrToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("HR users list status = %d, want 403", resp.StatusCode)
	}

	// No token at all.
	resp = doJSON(t, app, http.MethodGet, "/api/auth/users", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous users list status = %d, want 401", resp.StatusCode)
	}

	// Admin can.
	resp = doJSON(t, app, http.MethodGet, "/api/auth/users", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin users list status = %d, want 200", resp.StatusCode)
	}
}

func TestDeletedUserTokenIsRejected(t *testing.T) {
	app, db := setupApp(t, "auth_deleted")

	ghost := createUser(t, db, "ghost", "ghost@dwinsoft.in", "secret123", constants.RoleAdmin)
	token, err := utils.GenerateToken(ghost.ID)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if err := db.Delete(&user.User{}, ghost.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/auth/profile", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("deleted-user token status = %d, want 401", resp.StatusCode)
	}
}

func TestUpdateUserKeepsOrgDomain(t *testing.T) {
	t.Setenv("ORG_EMAIL_DOMAIN", "dwinsoft.in")
	app, db := setupApp(t, "auth_domain")

	admin := createUser(t, db, "admin", "admin@dwinsoft.in", "secret123", constants.RoleAdmin)
	adminToken, _ := utils.GenerateToken(admin.ID)
	emp := createUser(t, db, "emp", "emp@dwinsoft.in", "secret123", constants.RoleEmployee)

	// Out-of-domain email is rejected on update, same as on create.
	resp := doJSON(t, app, http.MethodPut, "/api/auth/users/"+itoa(emp.ID), adminToken, map[string]string{
		"email": "emp@evil.example",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("out-of-domain email update status = %d, want 400", resp.StatusCode)
	}
	var stored user.User
	if err := db.First(&stored, emp.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Email != "emp@dwinsoft.in" {
		t.Errorf("email escaped the org domain: %s", stored.Email)
	}

	// An in-domain change still works.
	resp = doJSON(t, app, http.MethodPut, "/api/auth/users/"+itoa(emp.ID), adminToken, map[string]string{
		"email": "emp2@dwinsoft.in",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("in-domain email update status = %d, want 200", resp.StatusCode)
	}
	if err := db.First(&stored, emp.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Email != "emp2@dwinsoft.in" {
		t.Errorf("in-domain update not applied: %s", stored.Email)
	}
}

func TestPasswordRehashOnlyWhenChanged(t *testing.T) {
	app, db := setupApp(t, "auth_rehash")

	admin := createUser(t, db, "admin", "admin@dwinsoft.in", "secret123", constants.RoleAdmin)
	adminToken, _ := utils.GenerateToken(admin.ID)
	emp := createUser(t, db, "emp", "emp@dwinsoft.in", "original1", constants.RoleEmployee)

	var before user.User
	if err := db.First(&before, emp.ID).Error; err != nil {
		t.Fatal(err)
	}

	// Update without password: hash untouched.
	resp := doJSON(t, app, http.MethodPut, "/api/auth/users/"+itoa(emp.ID), adminToken, map[string]string{
		"phone": "12345",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	var after user.User
	if err := db.First(&after, emp.ID).Error; err != nil {
		t.Fatal(err)
	}
	if after.Password != before.Password {
		t.Error("password hash changed on non-password update")
	}

	// Update with password: hash replaced and old password stops working.
	resp = doJSON(t, app, http.MethodPut, "/api/auth/users/"+itoa(emp.ID), adminToken, map[string]string{
		"password": "changed12",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("password update status = %d", resp.StatusCode)
	}
	if err := db.First(&after, emp.ID).Error; err != nil {
		t.Fatal(err)
	}
	if after.Password == before.Password {
		t.Error("password hash not replaced")
	}
	if !after.CheckPassword("changed12") {
		t.Error("new password does not verify")
	}
	if after.CheckPassword("original1") {
		t.Error("old password still verifies")
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
