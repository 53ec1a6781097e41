package department

import (
	"github.com/staffdesk/workforce-console/internal"
)

type DepartmentResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location"`
	DeptCode string  `json:"dept_code"`
}

// DepartmentDTO is the payload for create and full replace. dept_code is
// server-generated and never accepted from clients.
type DepartmentDTO struct {
	Name     string  `json:"name"`
	Location *string `json:"location"`
}

func (dto DepartmentDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("Department name is required", internal.ErrCodeMissingField)
	}
	return nil
}
