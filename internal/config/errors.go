package config

import "errors"

var ErrInvalid = errors.New("config: invalid")
