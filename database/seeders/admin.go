package seeders

import (
	"log"
	"os"

	"medcare/models/admin"
	"medcare/utils"

	"gorm.io/gorm"
)

// SeedAdmin ensures the back-office account from ADMIN_USERNAME and
// ADMIN_PASSWORD exists, creating it with a bcrypt hash on first run.
func SeedAdmin(db *gorm.DB) {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	var existing admin.Admin
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("❌ Failed to check admin account: %v", err)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("❌ Failed to hash admin password: %v", err)
		return
	}

	if err := db.Create(&admin.Admin{Username: username, PasswordHash: hash}).Error; err != nil {
		log.Printf("❌ Failed to seed admin account: %v", err)
		return
	}
	log.Printf("✅ Seeded admin account: %s", username)
}
