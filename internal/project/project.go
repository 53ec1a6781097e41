package project

import (
	"time"

	"github.com/staffdesk/workforce-console/internal/core/common/validation"
	workforceDatamodel "github.com/staffdesk/workforce-console/internal/core/datamodel/workforce"
)

type Project struct {
	ID           int64
	Title        string
	Description  string
	StartDate    time.Time
	EndDate      *time.Time
	ProjectCode  string
	DepartmentID *int64
}

func (p *Project) ToResponse() ProjectResponse {
	resp := ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		StartDate:    p.StartDate.Format(validation.DateLayout),
		ProjectCode:  p.ProjectCode,
		DepartmentID: p.DepartmentID,
	}
	if p.EndDate != nil {
		end := p.EndDate.Format(validation.DateLayout)
		resp.EndDate = &end
	}
	return resp
}

func ToDataModel(p *Project) *workforceDatamodel.Project {
	return &workforceDatamodel.Project{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		ProjectCode:  p.ProjectCode,
		DepartmentID: p.DepartmentID,
	}
}

func FromDataModel(m *workforceDatamodel.Project) *Project {
	return &Project{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		ProjectCode:  m.ProjectCode,
		DepartmentID: m.DepartmentID,
	}
}
