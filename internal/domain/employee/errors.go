package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrEmployeeIDExists   = errors.New("employee id already exists")
	ErrEmployeeInactive   = errors.New("employee is inactive")
	ErrInvalidBalanceType = errors.New("invalid balance column")
)
