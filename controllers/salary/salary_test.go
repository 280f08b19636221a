package salary_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finoffice/constants"
	"finoffice/database"
	salaryModel "finoffice/models/salary"
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

func newUser(t *testing.T, db *gorm.DB, username, role string) user.User {
	t.Helper()
	u := user.User{Username: username, Email: username + "@dwinsoft.in", Password: "secret123", Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func tokenFor(t *testing.T, u user.User) string {
	t.Helper()
	token, err := utils.GenerateToken(u.ID)
	if err != nil {
		t.Fatalf("token for %s: %v", u.Username, err)
	}
	return token
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

func TestUpsertReplacesExistingRecord(t *testing.T) {
	app, db := setupApp(t, "salary_upsert")
	hrUser := newUser(t, db, "hr_pay", constants.RoleHR)
	hrToken := tokenFor(t, hrUser)
	emp := newUser(t, db, "emp_pay", constants.RoleEmployee)

	// HR lacks manage_salaries; Admin carries it.
	resp := doJSON(t, app, http.MethodPost, "/api/salary/records", hrToken, map[string]interface{}{
		"userId": emp.ID, "month": 6, "year": 2025, "basicSalary": 50000.0,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("HR upsert status = %d, want 403", resp.StatusCode)
	}
	admin := newUser(t, db, "admin_pay", constants.RoleAdmin)
	adminToken := tokenFor(t, admin)

	resp = doJSON(t, app, http.MethodPost, "/api/salary/records", adminToken, map[string]interface{}{
		"userId": emp.ID, "month": 6, "year": 2025,
		"basicSalary": 50000.0, "bonus": 2000.0, "deductions": 500.0,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first upsert status = %d, want 200", resp.StatusCode)
	}
	var record salaryModel.SalaryRecord
	if err := db.First(&record, "user_id = ? AND month = ? AND year = ?", emp.ID, 6, 2025).Error; err != nil {
		t.Fatalf("record missing: %v", err)
	}
	if record.NetSalary != 51500 {
		t.Errorf("netSalary = %v, want 51500", record.NetSalary)
	}
	if record.Status != "Pending" || record.PaidDate != nil {
		t.Errorf("unexpected status/paidDate: %s %v", record.Status, record.PaidDate)
	}

	// Second write for the same period replaces the whole row.
	resp = doJSON(t, app, http.MethodPost, "/api/salary/records", adminToken, map[string]interface{}{
		"userId": emp.ID, "month": 6, "year": 2025,
		"basicSalary": 50000.0, "bonus": 1500.0, "deductions": 500.0, "status": "Paid",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second upsert status = %d, want 200", resp.StatusCode)
	}
	var count int64
	if err := db.Model(&salaryModel.SalaryRecord{}).
		Where("user_id = ? AND month = ? AND year = ?", emp.ID, 6, 2025).
		Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("record count = %d, want 1", count)
	}
	if err := db.First(&record, "user_id = ? AND month = ? AND year = ?", emp.ID, 6, 2025).Error; err != nil {
		t.Fatal(err)
	}
	if record.NetSalary != 51000 {
		t.Errorf("replaced netSalary = %v, want 51000", record.NetSalary)
	}
	if record.Status != "Paid" || record.PaidDate == nil {
		t.Errorf("paid record status=%s paidDate=%v", record.Status, record.PaidDate)
	}

	// Flipping back to Pending clears paidDate.
	resp = doJSON(t, app, http.MethodPost, "/api/salary/records", adminToken, map[string]interface{}{
		"userId": emp.ID, "month": 6, "year": 2025,
		"basicSalary": 50000.0, "bonus": 1500.0, "deductions": 500.0, "status": "Pending",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("third upsert status = %d", resp.StatusCode)
	}
	// Reload into a fresh struct: GORM's scan leaves a stale non-nil
	// *time.Time in a reused dest when the column comes back NULL.
	record = salaryModel.SalaryRecord{}
	if err := db.First(&record, "user_id = ? AND month = ? AND year = ?", emp.ID, 6, 2025).Error; err != nil {
		t.Fatal(err)
	}
	if record.PaidDate != nil {
		t.Error("paidDate not cleared on Pending")
	}

	// Unknown employee.
	resp = doJSON(t, app, http.MethodPost, "/api/salary/records", adminToken, map[string]interface{}{
		"userId": 9999, "month": 6, "year": 2025, "basicSalary": 1000.0,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", resp.StatusCode)
	}
}

func TestOwnRecordsScopedToCaller(t *testing.T) {
	app, db := setupApp(t, "salary_scope")
	admin := newUser(t, db, "admin_scope", constants.RoleAdmin)
	adminToken := tokenFor(t, admin)
	empA := newUser(t, db, "emp_a", constants.RoleEmployee)
	empB := newUser(t, db, "emp_b", constants.RoleEmployee)

	for _, target := range []user.User{empA, empB} {
		resp := doJSON(t, app, http.MethodPost, "/api/salary/records", adminToken, map[string]interface{}{
			"userId": target.ID, "month": 7, "year": 2025, "basicSalary": 40000.0,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("seed upsert for %s status = %d", target.Username, resp.StatusCode)
		}
	}

	resp := doJSON(t, app, http.MethodGet, "/api/salary/my-records", tokenFor(t, empA), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("my-records status = %d, want 200", resp.StatusCode)
	}
	var out struct {
		Data []salaryModel.SalaryRecord `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode my-records: %v", err)
	}
	if len(out.Data) != 1 || out.Data[0].UserID != empA.ID {
		t.Errorf("my-records rows = %+v", out.Data)
	}

	// Employee cannot read the staff-wide listing.
	resp = doJSON(t, app, http.MethodGet, "/api/salary/records", tokenFor(t, empA), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("employee staff listing status = %d, want 403", resp.StatusCode)
	}

	// Admin sees both, and the month filter holds.
	resp = doJSON(t, app, http.MethodGet, "/api/salary/records?month=7&year=2025", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("staff listing status = %d", resp.StatusCode)
	}
	out.Data = nil
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode staff listing: %v", err)
	}
	if len(out.Data) != 2 {
		t.Errorf("staff listing rows = %d, want 2", len(out.Data))
	}
}
