package domain

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrCompanyNotFound = errors.New("company not found")
)
