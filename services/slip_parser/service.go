package slip_parser

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"medcare/logger"
	prescriptionModel "medcare/models/prescription"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SlipParserService handles prescription slip parsing requests: audit rows,
// file persistence and result storage.
type SlipParserService struct {
	DB        *gorm.DB
	UploadDir string
}

// NewSlipParserService creates a new slip parser service
func NewSlipParserService(db *gorm.DB) *SlipParserService {
	return &SlipParserService{
		DB:        db,
		UploadDir: "uploaded_slips",
	}
}

// GenerateRequestID generates a 24 character unique request ID
func (s *SlipParserService) GenerateRequestID() string {
	bytes := make([]byte, 12)
	rand.Read(bytes)
	requestID := hex.EncodeToString(bytes)

	// Last 6 hex characters of the unix time plus 18 random hex characters
	timestamp := time.Now().Unix()
	return fmt.Sprintf("%06x%s", timestamp&0xffffff, requestID[:18])
}

// CreateInitialRequest creates the audit row before parsing starts.
func (s *SlipParserService) CreateInitialRequest(c *fiber.Ctx, requestID, originalFileName string, fileSize int64, mimeType string) (*prescriptionModel.SlipParseRequest, error) {
	ipAddress := c.IP()
	if ipAddress == "" {
		ipAddress = "unknown"
	}

	request := &prescriptionModel.SlipParseRequest{
		RequestID:        requestID,
		OriginalFileName: originalFileName,
		FileSize:         fileSize,
		MimeType:         mimeType,
		Status:           "processing",
		IPAddress:        ipAddress,
		UserAgent:        c.Get("User-Agent"),
	}

	if err := s.DB.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create initial request: %w", err)
	}
	return request, nil
}

// SaveFileAsync saves the uploaded slip asynchronously so the parse response
// is not blocked on disk IO.
func (s *SlipParserService) SaveFileAsync(requestID string, fileBytes []byte, originalFileName string) {
	go func() {
		if err := s.saveFile(requestID, fileBytes, originalFileName); err != nil {
			logger.Error(fmt.Sprintf("Failed to save file for request %s", requestID), err)
			s.updateRequestWithFileError(requestID, err.Error())
		}
	}()
}

func (s *SlipParserService) saveFile(requestID string, fileBytes []byte, originalFileName string) error {
	if err := s.ensureUploadDir(); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	hash := sha256.Sum256(fileBytes)
	fileHash := hex.EncodeToString(hash[:])

	ext := filepath.Ext(originalFileName)
	savedFileName := fmt.Sprintf("%s_%d%s", requestID, time.Now().Unix(), ext)
	filePath := filepath.Join(s.UploadDir, savedFileName)

	if err := os.WriteFile(filePath, fileBytes, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	updates := map[string]interface{}{
		"saved_file_name": savedFileName,
		"file_hash":       fileHash,
		"file_path":       filePath,
	}
	if err := s.DB.Model(&prescriptionModel.SlipParseRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
		os.Remove(filePath)
		return fmt.Errorf("failed to update request with file info: %w", err)
	}

	logger.Success(fmt.Sprintf("File saved successfully for request %s: %s", requestID, savedFileName))
	return nil
}

// SaveSuccessResultAsync persists the parsed slip data in the background.
func (s *SlipParserService) SaveSuccessResultAsync(requestID string, result *prescriptionModel.SlipParseResult) {
	go func() {
		var request prescriptionModel.SlipParseRequest
		if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to find request %s", requestID), err)
			return
		}
		if err := request.MarkAsSuccess(s.DB, result); err != nil {
			logger.Error(fmt.Sprintf("Failed to save success result for request %s", requestID), err)
			return
		}
		logger.Success(fmt.Sprintf("Parsing result saved for request %s", requestID))
	}()
}

// SaveFailureResultAsync records a failed parse in the background.
func (s *SlipParserService) SaveFailureResultAsync(requestID, errorMsg string, processingTime int64) {
	go func() {
		var request prescriptionModel.SlipParseRequest
		if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to find request %s", requestID), err)
			return
		}
		if err := request.MarkAsFailed(s.DB, errorMsg, processingTime); err != nil {
			logger.Error(fmt.Sprintf("Failed to save failure result for request %s", requestID), err)
			return
		}
		logger.Info(fmt.Sprintf("Failure result saved for request %s: %s", requestID, errorMsg))
	}()
}

func (s *SlipParserService) updateRequestWithFileError(requestID, errorMsg string) {
	updates := map[string]interface{}{
		"status":        "failed",
		"error_message": fmt.Sprintf("File saving error: %s", errorMsg),
	}
	if err := s.DB.Model(&prescriptionModel.SlipParseRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to update request %s with file error", requestID), err)
	}
}

func (s *SlipParserService) ensureUploadDir() error {
	if _, err := os.Stat(s.UploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(s.UploadDir, 0755); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Created upload directory: %s", s.UploadDir))
	}
	return nil
}

// GetRequestByID retrieves a parse request audit row by its request id.
func (s *SlipParserService) GetRequestByID(requestID string) (*prescriptionModel.SlipParseRequest, error) {
	var request prescriptionModel.SlipParseRequest
	if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}
