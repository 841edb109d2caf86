package pipeline

import "errors"

var (
	// ErrAuditLogRequired is returned when an audit log sink is not provided.
	ErrAuditLogRequired = errors.New("audit log required")

	// ErrExtractorRequired is returned when an extractor is not provided.
	ErrExtractorRequired = errors.New("extractor required")

	// ErrValidatorRequired is returned when a validator is not provided.
	ErrValidatorRequired = errors.New("validator required")

	// ErrWriterRequired is returned when a bronze writer is not provided.
	ErrWriterRequired = errors.New("bronze writer required")
)
