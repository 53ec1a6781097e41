package workforce

import "time"

type Project struct {
	ID           int64      `gorm:"primaryKey"`
	Title        string     `gorm:"column:title;not null"`
	Description  string     `gorm:"column:description;not null"`
	StartDate    time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate      *time.Time `gorm:"column:end_date;type:date"`
	ProjectCode  string     `gorm:"column:project_code;uniqueIndex;not null"`
	DepartmentID *int64     `gorm:"column:department_id"`
	Employees    []Employee `gorm:"many2many:employee_projects;"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}
