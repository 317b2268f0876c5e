package client

import "errors"

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrServer      = errors.New("server error")
)
