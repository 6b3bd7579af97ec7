package assignment

import "errors"

var (
	ErrAlreadyAssigned    = errors.New("doctor is already assigned to this patient")
	ErrAssignmentNotFound = errors.New("doctor is not assigned to this patient")
	ErrDoctorNotFound     = errors.New("doctor not found")
)
