package seeders

import (
	"log"

	"medcare/models/insurance"

	"gorm.io/gorm"
)

// SeedInsurancePlans inserts the supported insurance plans if missing.
func SeedInsurancePlans(db *gorm.DB) {
	log.Printf("🔍 Checking insurance plans data integrity...")

	plans := []insurance.Insurance{
		{CompName: "Blue Cross", Coverage: 80},
		{CompName: "Aetna", Coverage: 75},
		{CompName: "United Healthcare", Coverage: 85},
		{CompName: "Medicare", Coverage: 90},
	}

	for _, plan := range plans {
		var existing insurance.Insurance
		err := db.Where("comp_name = ?", plan.CompName).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&plan).Error; err != nil {
				log.Printf("❌ Failed to seed insurance plan %s: %v", plan.CompName, err)
			} else {
				log.Printf("✅ Seeded insurance plan: %s (%.0f%% coverage)", plan.CompName, plan.Coverage)
			}
		} else if err != nil {
			log.Printf("❌ Failed to check insurance plan %s: %v", plan.CompName, err)
		}
	}
}
