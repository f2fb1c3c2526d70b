package observe

import "errors"

var ErrInvalidArgument = errors.New("invalid argument")
