package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrLoginRequired    = fmt.Errorf("login required")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrSessionNotFound  = fmt.Errorf("no saved session")

	// API and service errors
	ErrAPIRequest      = fmt.Errorf("API request failed")
	ErrUnauthorized    = fmt.Errorf("not authorized")
	ErrForbidden       = fmt.Errorf("forbidden")
	ErrVideoNotFound   = fmt.Errorf("video not found")
	ErrCommentNotFound = fmt.Errorf("comment not found")
	ErrNetwork         = fmt.Errorf("request never completed")

	// Input validation errors
	ErrEmptyComment    = fmt.Errorf("comment cannot be empty")
	ErrEmptyTitle      = fmt.Errorf("title cannot be empty")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
