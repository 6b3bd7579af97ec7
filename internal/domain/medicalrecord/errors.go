package medicalrecord

import "errors"

var (
	ErrRecordNotFound = errors.New("medical record not found")

	// ErrRecordAccessDenied is raised when the acting user is not a doctor
	// currently assigned to the record's patient. The HTTP boundary reports
	// it as 404 so unauthorized callers cannot confirm a patient exists.
	ErrRecordAccessDenied = errors.New("no permission to access this patient's medical records")
)
