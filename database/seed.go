package database

import (
	"errors"
	"os"

	"gorm.io/gorm"

	"finoffice/constants"
	"finoffice/logger"
	"finoffice/models/user"
)

// SeedData seeds the bootstrap records. Safe to run on every startup.
func SeedData(db *gorm.DB) error {
	logger.Info("Starting database seeding...")

	if err := seedAdminUser(db); err != nil {
		return err
	}

	logger.Success("Database seeding completed successfully")
	return nil
}

// seedAdminUser creates the initial Admin. There is no self-registration path;
// without this seed nobody could log in to create the first accounts.
func seedAdminUser(db *gorm.DB) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Debug("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing user.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		logger.Debug("Seed admin already exists, skipping...")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Error checking for existing admin", err)
		return err
	}

	admin := user.User{
		Username: "admin",
		Email:    email,
		Password: password, // hashed by the model hook
		Role:     constants.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		logger.Error("Failed to create seed admin", err)
		return err
	}
	logger.Success("Seed admin created: " + email)
	return nil
}
