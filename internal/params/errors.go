package params

import "errors"

// Domain errors for parameter sources.
var (
	// ErrSourceConfig indicates a Source was constructed with unusable settings.
	ErrSourceConfig = errors.New("params: invalid source configuration")

	// ErrUnknownKind indicates a request for a visualizer the source cannot serve.
	ErrUnknownKind = errors.New("params: unknown visualizer kind")

	// ErrMalformed indicates the raw payload is not a key/value document.
	ErrMalformed = errors.New("params: malformed payload")
)
