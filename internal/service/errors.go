package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrRunInProgress    = errors.New("run already in progress")
	ErrNoProjects       = errors.New("no projects for selected year")
)
