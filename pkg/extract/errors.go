package extract

import "fmt"

// Category classifies upstream extraction failures so callers can decide
// whether to retry, back off, or surface the error.
type Category string

const (
	CategoryAuth      Category = "AUTH"
	CategoryRateLimit Category = "RATE_LIMIT"
	CategorySafety    Category = "SAFETY"
	CategoryServer    Category = "SERVER"
	CategoryParsing   Category = "PARSING"
	CategoryUnknown   Category = "UNKNOWN"
)

// UpstreamError wraps a failure from the extraction service with its category.
type UpstreamError struct {
	Category Category
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Retryable reports whether a retry with backoff could plausibly succeed.
func (e *UpstreamError) Retryable() bool {
	return e.Category == CategoryRateLimit || e.Category == CategoryServer
}

func newUpstreamError(category Category, message string, err error) *UpstreamError {
	return &UpstreamError{Category: category, Message: message, Err: err}
}

// categorizeStatus maps an HTTP status code from the extraction service to an
// error category.
func categorizeStatus(status int) Category {
	switch {
	case status == 400 || status == 401 || status == 403:
		return CategoryAuth
	case status == 429:
		return CategoryRateLimit
	case status >= 500:
		return CategoryServer
	default:
		return CategoryUnknown
	}
}
