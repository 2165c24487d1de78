package sim

import "errors"

var ErrInvalidConfig = errors.New("sim: invalid config")
