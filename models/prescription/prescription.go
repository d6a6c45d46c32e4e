package prescription

import (
	"time"
)

// Prescription is a doctor's prescription for a customer, identified by the
// customer's SSN. It owns its drug lines.
type Prescription struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SSN      string    `gorm:"type:varchar(20);not null;index" json:"ssn"`
	DoctorID uint      `gorm:"not null" json:"doctor_id"`
	Date     time.Time `gorm:"type:date;not null" json:"date"`

	Drugs []PrescriptionDrug `gorm:"foreignKey:PrescriptionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"drugs"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PrescriptionDrug is one prescribed drug line. A drug appears at most once
// per prescription.
type PrescriptionDrug struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PrescriptionID uint   `gorm:"not null;index;uniqueIndex:idx_prescription_drug" json:"prescription_id"`
	DrugName       string `gorm:"type:varchar(100);not null;uniqueIndex:idx_prescription_drug" json:"drug_name"`
	Quantity       int    `gorm:"not null" json:"quantity"`
	RefillLimit    int    `gorm:"not null" json:"refill_limit"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the PrescriptionDrug model
func (PrescriptionDrug) TableName() string {
	return "prescription_drugs"
}
