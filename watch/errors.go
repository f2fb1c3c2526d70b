package watch

import "errors"

var ErrBufferFull = errors.New("notification buffer full")
