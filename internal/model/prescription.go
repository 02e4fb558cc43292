package model

// Prescription is one uploaded prescription file's metadata.
// This is a pure domain model with no database-specific dependencies;
// the JSON field names are the public wire contract of the query endpoint.
//
// FileLink embeds a time-limited access token issued at upload time.
// The link is resolvable at creation but expires after the presign window;
// the row itself is immutable and outlives the token.
type Prescription struct {
	ID          int64  `json:"prescription_id"`
	UserID      int64  `json:"user_id"`
	ClinicName  string `json:"clinic_name"`
	Filename    string `json:"filename"`
	Description string `json:"description"`
	Date        Date   `json:"date"`
	FileLink    string `json:"file_link"`
}
