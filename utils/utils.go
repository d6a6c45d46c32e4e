package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"medcare/types"

	"github.com/gofiber/fiber/v2"
)

// ValidateEmail checks the address against the usual user@domain.tld shape.
func ValidateEmail(email string) bool {
	pattern := `^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`

	re := regexp.MustCompile(pattern)
	return re.MatchString(email)
}

// ValidatePhoneNumber validates an Indian mobile number.
// Allows: 10 digits starting 6-9, optionally prefixed with +91, 91 or 0.
// Separator characters (spaces, dashes, parentheses) are stripped first.
func ValidatePhoneNumber(phone string) bool {
	phone = strings.TrimSpace(phone)
	phone = regexp.MustCompile(`[\s\-\(\)]`).ReplaceAllString(phone, "")

	pattern := `^(\+91|91|0)?[6-9]\d{9}$`

	re := regexp.MustCompile(pattern)
	if !re.MatchString(phone) {
		return false
	}

	switch len(phone) {
	case 10, 11, 12, 13:
		return true
	default:
		return false
	}
}

// ValidateSSN checks the XXX-XX-XXXX format. An empty SSN is accepted since
// the field is optional.
func ValidateSSN(ssn string) bool {
	if ssn == "" {
		return true
	}
	pattern := `^\d{3}-\d{2}-\d{4}$`

	re := regexp.MustCompile(pattern)
	return re.MatchString(ssn)
}

// indianStateCodes are the two-letter registration prefixes accepted on a
// bike number plate.
var indianStateCodes = map[string]bool{
	"AN": true, "AP": true, "AR": true, "AS": true, "BR": true, "CH": true,
	"CG": true, "DD": true, "DL": true, "GA": true, "GJ": true, "HR": true,
	"HP": true, "JK": true, "JH": true, "KA": true, "KL": true, "LA": true,
	"LD": true, "MP": true, "MH": true, "MN": true, "ML": true, "MZ": true,
	"NL": true, "OD": true, "PY": true, "PB": true, "RJ": true, "SK": true,
	"TN": true, "TS": true, "TR": true, "UP": true, "UK": true, "WB": true,
}

// ValidateBikeNumber checks an Indian vehicle plate: state code + series +
// number, e.g. TNKAAB1234. Returns a descriptive error so callers can show
// the reason inline.
func ValidateBikeNumber(bikeNumber string) error {
	bikeNumber = strings.ToUpper(strings.ReplaceAll(bikeNumber, " ", ""))

	if len(bikeNumber) < 2 {
		return fmt.Errorf("bike number is too short")
	}
	if !indianStateCodes[bikeNumber[:2]] {
		return fmt.Errorf("invalid state code in bike number")
	}

	pattern := `^[A-Z]{2}[A-Z]{2}\d{4}$`

	re := regexp.MustCompile(pattern)
	if !re.MatchString(bikeNumber) {
		return fmt.Errorf("bike number should be in format: StateCode + Series + Number (e.g., TNKAAB1234)")
	}
	return nil
}

// NormalizeBikeNumber returns the canonical upper-cased, space-free plate.
func NormalizeBikeNumber(bikeNumber string) string {
	return strings.ToUpper(strings.ReplaceAll(bikeNumber, " ", ""))
}

// sanitizeRequestBody sanitizes request body for file uploads and large content
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		// For multipart requests, create a sanitized representation
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}

			// Add file field information without content
			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return body
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for
// the async logger. File uploads and large payloads are replaced with
// placeholders.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Deep copies prevent fasthttp buffer reuse from corrupting the entry
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
