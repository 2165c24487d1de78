package animator

import "errors"

var (
	ErrDisposed     = errors.New("animator: disposed")
	ErrNilScheduler = errors.New("animator: nil scheduler")
	ErrNilField     = errors.New("animator: nil field")
)
