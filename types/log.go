package types

import "time"

// LogEntry is one sanitized HTTP exchange queued for the async logger.
// Bodies and headers are deep copies; see utils.CreateSanitizedLogEntry.
type LogEntry struct {
	Method          string
	URL             string
	StatusCode      int
	RequestBody     string
	RequestHeaders  string
	ResponseBody    string
	ResponseHeaders string
	CreatedAt       time.Time
}
