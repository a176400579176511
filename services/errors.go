package services

import "errors"

var (
	// ErrNotFound: the day, meal bucket, or log entry does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a concurrent mutation changed the entry between the read
	// and the guarded write.
	ErrConflict = errors.New("conflicting concurrent update")

	ErrInvalidMeal  = errors.New("invalid meal")
	ErrNameRequired = errors.New("log must include name")
	ErrInvalidDate  = errors.New("invalid date")

	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
)

// ValidationError carries field-level problems for a 400 response.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Problems[0]
}
