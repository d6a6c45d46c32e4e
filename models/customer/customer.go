package customer

import (
	"medcare/models/insurance"
	"time"
)

// Customer represents a registered pharmacy customer. Email is the natural
// key used at login; SSN is optional and only required for prescriptions.
type Customer struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid         string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Name         string  `gorm:"type:varchar(50);not null" json:"name"`
	PasswordHash string  `gorm:"type:varchar(100);not null" json:"-"`
	Email        string  `gorm:"type:varchar(50);not null;unique" json:"email"`
	State        string  `gorm:"type:varchar(50);not null" json:"state"`
	Phone        string  `gorm:"type:varchar(15);not null" json:"phone"`
	SSN          *string `gorm:"type:varchar(20);unique" json:"ssn,omitempty"`

	// Foreign key for insurance relationship, nullable
	InsuranceID *uint                `gorm:"index" json:"insurance_id,omitempty"`
	Insurance   *insurance.Insurance `gorm:"foreignKey:InsuranceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"insurance,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"` // Soft delete field
}
