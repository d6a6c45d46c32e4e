package prescription

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// SlipParseRequest represents one prescription-slip parsing request and its
// outcome. The parsed drug lines are stored as a JSON blob since the row is
// an audit record, not the prescription itself.
type SlipParseRequest struct {
	ID               uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID        string `json:"request_id" gorm:"type:varchar(24);uniqueIndex;not null"`
	OriginalFileName string `json:"original_file_name" gorm:"type:varchar(255);not null"`
	SavedFileName    string `json:"saved_file_name" gorm:"type:varchar(255)"`
	FileHash         string `json:"file_hash" gorm:"type:varchar(128);index"` // SHA256 hash
	FilePath         string `json:"file_path" gorm:"type:varchar(500)"`
	FileSize         int64  `json:"file_size" gorm:"not null"`
	MimeType         string `json:"mime_type" gorm:"type:varchar(100);not null"`
	Status           string `json:"status" gorm:"type:varchar(50);not null;default:'processing';index"` // processing, success, failed
	ProcessingTimeMs int64  `json:"processing_time_ms" gorm:"default:0"`

	// Parsed data fields
	SSN       string `json:"ssn" gorm:"type:varchar(20);index;default:''"`
	DoctorID  uint   `json:"doctor_id" gorm:"default:0"`
	DrugsJSON string `json:"drugs_json" gorm:"type:text;default:''"`

	// Error information
	ErrorMessage string `json:"error_message" gorm:"type:text;default:''"`

	// Metadata
	IPAddress string `json:"ip_address" gorm:"type:varchar(45);index;default:''"` // Support IPv6
	UserAgent string `json:"user_agent" gorm:"type:text;default:''"`

	// Timestamps
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TableName returns the table name for SlipParseRequest
func (SlipParseRequest) TableName() string {
	return "slip_parse_requests"
}

// BeforeCreate hook to set default values
func (spr *SlipParseRequest) BeforeCreate(tx *gorm.DB) error {
	if spr.Status == "" {
		spr.Status = "processing"
	}
	return nil
}

// IsProcessing checks if the request is still processing
func (spr *SlipParseRequest) IsProcessing() bool {
	return spr.Status == "processing"
}

// MarkAsSuccess marks the request as successful and saves parsed data
func (spr *SlipParseRequest) MarkAsSuccess(db *gorm.DB, parsed *SlipParseResult) error {
	spr.Status = "success"
	spr.SSN = parsed.SSN
	spr.DoctorID = parsed.DoctorID
	spr.ProcessingTimeMs = parsed.ProcessingTimeMs

	if data, err := json.Marshal(parsed.Drugs); err == nil {
		spr.DrugsJSON = string(data)
	}

	return db.Save(spr).Error
}

// MarkAsFailed marks the request as failed with error message
func (spr *SlipParseRequest) MarkAsFailed(db *gorm.DB, errorMsg string, processingTime int64) error {
	spr.Status = "failed"
	spr.ErrorMessage = errorMsg
	spr.ProcessingTimeMs = processingTime

	return db.Save(spr).Error
}

// SlipParseResult represents the data extracted from a prescription slip.
type SlipParseResult struct {
	RequestID        string          `json:"request_id"`
	SSN              string          `json:"ssn"`
	DoctorID         uint            `json:"doctor_id"`
	Drugs            []SlipParseDrug `json:"drugs"`
	ProcessingTimeMs int64           `json:"processing_time_ms"`
}

// SlipParseDrug is one drug line extracted from a prescription slip.
type SlipParseDrug struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	RefillLimit int    `json:"refill_limit"`
}
