package domain

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTimeout         = errors.New("analysis timed out")
)
