package constants

// Dataset Provider Error Codes
// These constants define specific failure scenarios for the remote dataset host

const (
	ErrCodeMissingCredentials   = "MISSING_CREDENTIALS"
	ErrCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	ErrCodeDatasetNotFound      = "DATASET_NOT_FOUND"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeNetworkError         = "NETWORK_ERROR"
	ErrCodeArchiveCorrupt       = "ARCHIVE_CORRUPT"
	ErrCodeExtractionFailed     = "EXTRACTION_FAILED"
)

// Human-readable messages corresponding to error codes
var providerErrorMessages = map[string]string{
	ErrCodeMissingCredentials:   "Dataset provider credentials are not configured",
	ErrCodeAuthenticationFailed: "Authentication with the dataset provider failed",
	ErrCodeDatasetNotFound:      "The requested dataset was not found on the provider",
	ErrCodeRateLimited:          "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:         "Unable to reach the dataset provider. Please check your internet connection",
	ErrCodeArchiveCorrupt:       "The downloaded archive could not be opened",
	ErrCodeExtractionFailed:     "The downloaded archive could not be extracted",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := providerErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
