package employee

import (
	"time"

	"github.com/staffdesk/workforce-console/internal"
	"github.com/staffdesk/workforce-console/internal/core/common/validation"
)

// EmployeeResponse is the wire shape of an employee record. Projects are
// embedded only in the aggregate listing; the assignments screen flattens
// them into (employee, project) rows.
type EmployeeResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Salary       float64           `json:"salary"`
	JoinDate     string            `json:"join_date"`
	DepartmentID *int64            `json:"department_id"`
	Projects     *[]ProjectSummary `json:"projects,omitempty"`
}

// EmployeeDTO is the payload for both create (POST) and full replace (PUT).
type EmployeeDTO struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Salary       float64 `json:"salary"`
	JoinDate     string  `json:"join_date"`
	DepartmentID *int64  `json:"department_id"`
}

// Validate applies the field rules inherited from the legacy service; error
// text reaches API clients verbatim.
func (dto EmployeeDTO) Validate() (time.Time, error) {
	if !validation.ValidName(dto.Name) {
		return time.Time{}, internal.NewValidationError("Invalid name. Name should contain only Alphabets", internal.ErrCodeInvalidName)
	}
	if !validation.ValidEmail(dto.Email) {
		return time.Time{}, internal.NewValidationError("Invalid email format. Email must endswith .com", internal.ErrCodeInvalidEmail)
	}
	joinDate, err := validation.ParseDate(dto.JoinDate, "join_date")
	if err != nil {
		return time.Time{}, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDate)
	}
	if err := validation.NotFuture(joinDate, "join_date"); err != nil {
		return time.Time{}, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDate)
	}
	return joinDate, nil
}
