package stats_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func tokenFor(t *testing.T, db *gorm.DB, username, role string) string {
	t.Helper()
	u := user.User{Username: username, Email: username + "@dwinsoft.in", Password: "secret123", Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	token, err := utils.GenerateToken(u.ID)
	if err != nil {
		t.Fatalf("token for %s: %v", username, err)
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

func mustStatus(t *testing.T, resp *http.Response, want int, what string) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s status = %d, want %d", what, resp.StatusCode, want)
	}
}

func TestDashboardStats(t *testing.T) {
	app, db := setupApp(t, "stats_dash")
	token := tokenFor(t, db, "acct_stats", constants.RoleAccountant)

	today := time.Now().Format(time.RFC3339)
	lastYear := time.Now().AddDate(-1, 0, 0).Format(time.RFC3339)

	mustStatus(t, doJSON(t, app, http.MethodPost, "/api/transactions/", token, map[string]interface{}{
		"description": "Retainer", "amount": 60000.0, "type": "Income", "category": "Services", "date": today,
	}), http.StatusCreated, "income tx")
	mustStatus(t, doJSON(t, app, http.MethodPost, "/api/transactions/", token, map[string]interface{}{
		"description": "Rent", "amount": 20000.0, "type": "Expense", "category": "Rent", "date": today,
	}), http.StatusCreated, "expense tx")
	mustStatus(t, doJSON(t, app, http.MethodPost, "/api/transactions/", token, map[string]interface{}{
		"description": "Old sale", "amount": 5000.0, "type": "Income", "category": "Services", "date": lastYear,
	}), http.StatusCreated, "old income tx")

	mustStatus(t, doJSON(t, app, http.MethodPost, "/api/bank-accounts/", token, map[string]interface{}{
		"name": "Operating", "accountNumber": "0011223344", "bankName": "SBI", "balance": 150000.0,
	}), http.StatusCreated, "bank account")

	mustStatus(t, doJSON(t, app, http.MethodPost, "/api/hand-cash/", token, map[string]interface{}{
		"holder": "Front desk", "amount": 3000.0, "type": "Income",
	}), http.StatusCreated, "hand cash in")
	mustStatus(t, doJSON(t, app, http.MethodPost, "/api/hand-cash/", token, map[string]interface{}{
		"holder": "Front desk", "amount": 1200.0, "type": "Expense",
	}), http.StatusCreated, "hand cash out")

	mustStatus(t, doJSON(t, app, http.MethodPost, "/api/debts/", token, map[string]interface{}{
		"debtor": "K. Rao", "amount": 7500.0,
	}), http.StatusCreated, "debt")

	resp := doJSON(t, app, http.MethodGet, "/api/stats", token, nil)
	mustStatus(t, resp, http.StatusOK, "stats")

	var out struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	num := func(key string) float64 {
		t.Helper()
		raw, ok := out.Data[key]
		if !ok {
			t.Fatalf("stats missing %q", key)
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			t.Fatalf("stats %q not numeric: %v", key, err)
		}
		return v
	}

	if got := num("totalIncome"); got != 65000 {
		t.Errorf("totalIncome = %v, want 65000", got)
	}
	if got := num("totalExpense"); got != 20000 {
		t.Errorf("totalExpense = %v, want 20000", got)
	}
	if got := num("netBalance"); got != 45000 {
		t.Errorf("netBalance = %v, want 45000", got)
	}
	if got := num("monthIncome"); got != 60000 {
		t.Errorf("monthIncome = %v, want 60000", got)
	}
	if got := num("monthExpense"); got != 20000 {
		t.Errorf("monthExpense = %v, want 20000", got)
	}
	if got := num("bankBalance"); got != 150000 {
		t.Errorf("bankBalance = %v, want 150000", got)
	}
	if got := num("handCashBalance"); got != 1800 {
		t.Errorf("handCashBalance = %v, want 1800", got)
	}
	if got := num("pendingDebts"); got != 1 {
		t.Errorf("pendingDebts = %v, want 1", got)
	}
	if got := num("pendingDebtAmount"); got != 7500 {
		t.Errorf("pendingDebtAmount = %v, want 7500", got)
	}
}

func TestStatsRequiresReportPermission(t *testing.T) {
	app, db := setupApp(t, "stats_perm")
	empToken := tokenFor(t, db, "emp_stats", constants.RoleEmployee)

	resp := doJSON(t, app, http.MethodGet, "/api/stats", empToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("employee stats status = %d, want 403", resp.StatusCode)
	}
}
