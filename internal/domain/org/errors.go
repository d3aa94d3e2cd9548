package org

import "hrportal/internal/platform/apperror"

var (
	ErrEmployeeNotFound   = apperror.NotFound("employee not found")
	ErrManagerNotFound    = apperror.NotFound("manager not found")
	ErrDepartmentNotFound = apperror.NotFound("department not found")
	ErrPositionNotFound   = apperror.NotFound("position not found")

	ErrDuplicateNationalID = apperror.Conflict("an employee with this national id already exists")
	ErrDuplicateEmail      = apperror.Conflict("an employee with this email already exists")
	ErrDepartmentCycle     = apperror.Conflict("department cycle detected")
	ErrDepartmentInUse     = apperror.Conflict("department still has employees or child departments")
	ErrPositionInUse       = apperror.Conflict("position is still referenced by employees or assignments")

	ErrSelfManager = apperror.Validation("employee cannot be their own manager")
	ErrSelfParent  = apperror.Validation("department cannot be parent of itself")
)
