package extract

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when the attempt budget is not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")

	// ErrAuditLogRequired is returned when an audit log sink is not provided.
	ErrAuditLogRequired = errors.New("audit log required")
)
