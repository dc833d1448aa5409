package domain

import "go.trai.ch/zerr"

var (
	// ErrStageNotFound is returned when a query names a build stage that is not defined.
	ErrStageNotFound = zerr.New("build stage not found")

	// ErrGroupNotFound is returned when a query names an artifact group that is not defined.
	ErrGroupNotFound = zerr.New("artifact group not found")

	// ErrSourceSetNotFound is returned when a query names a source set that is not defined.
	ErrSourceSetNotFound = zerr.New("source set not found")

	// ErrArtifactNotFound is returned when a query names an artifact that is not defined.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrDuplicateEntity is returned when the same name is defined twice within a section.
	ErrDuplicateEntity = zerr.New("entity already defined")

	// ErrInvalidFieldType is returned by the loader when a field that must be a
	// list carries a different shape.
	ErrInvalidFieldType = zerr.New("field must be a list")

	// ErrInvalidTopology is returned when validation reported one or more errors.
	// The individual messages are surfaced separately; this sentinel only
	// carries the failure out to the process exit code.
	ErrInvalidTopology = zerr.New("topology validation failed")
)
