package employee

import (
	"time"

	workforceDatamodel "github.com/staffdesk/workforce-console/internal/core/datamodel/workforce"
	"github.com/staffdesk/workforce-console/internal/core/common/validation"
)

type Employee struct {
	ID           int64
	Name         string
	Email        string
	Salary       float64
	JoinDate     time.Time
	DepartmentID *int64
	Projects     []ProjectSummary
}

type ProjectSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func (e *Employee) ToResponse(includeProjects bool) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Salary:       e.Salary,
		JoinDate:     e.JoinDate.Format(validation.DateLayout),
		DepartmentID: e.DepartmentID,
	}
	if includeProjects {
		projects := make([]ProjectSummary, len(e.Projects))
		copy(projects, e.Projects)
		resp.Projects = &projects
	}
	return resp
}

func ToDataModel(e *Employee) *workforceDatamodel.Employee {
	return &workforceDatamodel.Employee{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Salary:       e.Salary,
		JoinDate:     e.JoinDate,
		DepartmentID: e.DepartmentID,
	}
}

func FromDataModel(m *workforceDatamodel.Employee) *Employee {
	emp := &Employee{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Salary:       m.Salary,
		JoinDate:     m.JoinDate,
		DepartmentID: m.DepartmentID,
	}
	for _, p := range m.Projects {
		emp.Projects = append(emp.Projects, ProjectSummary{ID: p.ID, Title: p.Title})
	}
	return emp
}
