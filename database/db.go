package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"finoffice/logger"
	"finoffice/models/bankaccount"
	"finoffice/models/debt"
	"finoffice/models/handcash"
	"finoffice/models/invoice"
	logModel "finoffice/models/log"
	"finoffice/models/salary"
	"finoffice/models/transaction"
	"finoffice/models/user"
)

var DB *gorm.DB

// InitDB opens the Postgres connection, runs migrations and returns the handle.
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	dbUser := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, dbUser, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	return DB, nil
}

// Migrate runs auto migration for all models plus the extra indexes. Tests
// call it directly against an in-memory database.
func Migrate(db *gorm.DB) error {
	// Stage 1: models without cross references.
	stage1Models := []interface{}{
		&user.User{},
		&bankaccount.BankAccount{},
		&handcash.HandCash{},
		&debt.Debt{},
		&logModel.Log{},
	}
	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: models referencing users and each other.
	stage2Models := []interface{}{
		&transaction.Transaction{},
		&transaction.DeletedTransaction{},
		&invoice.Invoice{},
		&invoice.InvoiceItem{},
		&invoice.InvoiceCounter{},
		&salary.SalaryRecord{},
	}
	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return createIndexes(db)
}

// createIndexes creates additional indexes for hot list queries.
func createIndexes(db *gorm.DB) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_type_category ON transactions(type, category)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)",
		"CREATE INDEX IF NOT EXISTS idx_invoices_customer_email ON invoices(customer_email)",
		"CREATE INDEX IF NOT EXISTS idx_salary_records_year_month ON salary_records(year, month)",
		"CREATE INDEX IF NOT EXISTS idx_deleted_transactions_deleted_at ON deleted_transactions(deleted_at)",
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
