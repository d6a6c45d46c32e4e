package agent

import (
	"time"
)

// AgentStatus is the self-reported availability of a delivery agent.
type AgentStatus string

const (
	AgentStatusAvailable AgentStatus = "Available"
	AgentStatusBusy      AgentStatus = "Busy"
	AgentStatusOffline   AgentStatus = "Offline"
)

func (as AgentStatus) String() string {
	return string(as)
}

func (as AgentStatus) IsValid() bool {
	switch as {
	case AgentStatusAvailable, AgentStatusBusy, AgentStatusOffline:
		return true
	default:
		return false
	}
}

// DeliveryAgent represents a delivery rider. Phone is the natural key used
// at login and on order assignment.
type DeliveryAgent struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid         string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Name         string  `gorm:"type:varchar(50);not null" json:"name"`
	Phone        string  `gorm:"type:varchar(15);not null;unique" json:"phone"`
	PasswordHash string  `gorm:"type:varchar(100);not null" json:"-"`
	Address      string  `gorm:"type:text;not null" json:"address"`
	BikeNumber   *string `gorm:"type:varchar(20)" json:"bike_number,omitempty"`

	Status AgentStatus `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the DeliveryAgent model
func (DeliveryAgent) TableName() string {
	return "delivery_agents"
}
