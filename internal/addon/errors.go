package addon

import "errors"

var (
	// ErrDuplicateMarker is returned when a marker is applied twice to one class.
	ErrDuplicateMarker = errors.New("marker already applied")

	// ErrNilClass is returned when a nil class is passed where one is required.
	ErrNilClass = errors.New("class is nil")

	// ErrUnknownCapability is returned for capability names outside the recognized set.
	ErrUnknownCapability = errors.New("unknown capability")
)
