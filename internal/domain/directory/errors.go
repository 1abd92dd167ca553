package directory

import "errors"

var (
	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrTeamNotFound     = errors.New("Team not found")
)
