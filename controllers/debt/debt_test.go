package debt_test

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
	debtModel "finoffice/models/debt"
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

func TestDebtMarkPaid(t *testing.T) {
	app, db := setupApp(t, "debt_paid")
	token := tokenFor(t, db, "acct_debt", constants.RoleAccountant)

	resp := doJSON(t, app, http.MethodPost, "/api/debts/", token, map[string]interface{}{
		"debtor": "R. Sharma", "amount": 5000.0, "dueDate": "2025-09-30",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create debt status = %d, want 201", resp.StatusCode)
	}
	var out struct {
		Data debtModel.Debt `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if out.Data.Status != "Pending" {
		t.Errorf("new debt status = %s, want Pending", out.Data.Status)
	}
	if out.Data.DueDate == nil {
		t.Error("due date not stored")
	}
	path := strconv.Itoa(int(out.Data.ID))

	// Mark paid twice; second call is a no-op with the same outcome.
	for i := 0; i < 2; i++ {
		resp = doJSON(t, app, http.MethodPut, "/api/debts/mark-paid/"+path, token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("mark-paid #%d status = %d, want 200", i+1, resp.StatusCode)
		}
	}
	var stored debtModel.Debt
	if err := db.First(&stored, out.Data.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Status != "Paid" {
		t.Errorf("status after mark-paid = %s", stored.Status)
	}

	// Status filter on the listing.
	resp = doJSON(t, app, http.MethodGet, "/api/debts/?status=Pending", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var list struct {
		Data []debtModel.Debt `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Data) != 0 {
		t.Errorf("pending filter rows = %d, want 0", len(list.Data))
	}

	resp = doJSON(t, app, http.MethodPut, "/api/debts/mark-paid/9999", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing debt mark-paid status = %d, want 404", resp.StatusCode)
	}
}
