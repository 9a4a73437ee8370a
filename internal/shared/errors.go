package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Generation errors
	ErrGenerationFailed = fmt.Errorf("generation failed")
	ErrQuotaExceeded    = fmt.Errorf("generation quota exceeded")

	// Lookup errors
	ErrUnknownSample     = fmt.Errorf("unknown sample")
	ErrUnknownStyle      = fmt.Errorf("unknown style")
	ErrPreferenceMissing = fmt.Errorf("preference not set")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
