package department

import (
	workforceDatamodel "github.com/staffdesk/workforce-console/internal/core/datamodel/workforce"
)

type Department struct {
	ID       int64
	Name     string
	Location *string
	DeptCode string
}

func (d *Department) ToResponse() DepartmentResponse {
	return DepartmentResponse{
		ID:       d.ID,
		Name:     d.Name,
		Location: d.Location,
		DeptCode: d.DeptCode,
	}
}

func ToDataModel(d *Department) *workforceDatamodel.Department {
	return &workforceDatamodel.Department{
		ID:       d.ID,
		Name:     d.Name,
		Location: d.Location,
		DeptCode: d.DeptCode,
	}
}

func FromDataModel(m *workforceDatamodel.Department) *Department {
	return &Department{
		ID:       m.ID,
		Name:     m.Name,
		Location: m.Location,
		DeptCode: m.DeptCode,
	}
}
