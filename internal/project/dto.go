package project

import (
	"time"

	"github.com/staffdesk/workforce-console/internal"
	"github.com/staffdesk/workforce-console/internal/core/common/validation"
)

type ProjectResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	ProjectCode  string  `json:"project_code"`
	DepartmentID *int64  `json:"department_id"`
}

// ProjectDTO is the payload for create and full replace. project_code is
// server-generated and never accepted from clients.
type ProjectDTO struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DepartmentID *int64 `json:"department_id"`
}

// AssignmentDTO is the body of the assign/unassign operations.
type AssignmentDTO struct {
	EmployeeID int64 `json:"employee_id"`
}

// Validate checks required fields and date ordering: an end date, when
// present, must not precede the start date (equal dates are fine).
func (dto ProjectDTO) Validate() (time.Time, *time.Time, error) {
	if dto.Title == "" || dto.Description == "" {
		return time.Time{}, nil, internal.NewValidationError("Title and description are required", internal.ErrCodeMissingField)
	}

	start, err := validation.ParseDate(dto.StartDate, "start_date")
	if err != nil {
		return time.Time{}, nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDate)
	}

	end, err := validation.ParseOptionalDate(dto.EndDate, "end_date")
	if err != nil {
		return time.Time{}, nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDate)
	}
	if end != nil && end.Before(start) {
		return time.Time{}, nil, internal.NewValidationError("end_date cannot be earlier than start_date", internal.ErrCodeInvalidDate)
	}

	return start, end, nil
}
