package workforce

import "time"

type Employee struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Salary       float64   `gorm:"column:salary"`
	JoinDate     time.Time `gorm:"column:join_date;type:date;not null"`
	DepartmentID *int64    `gorm:"column:department_id"`
	Projects     []Project `gorm:"many2many:employee_projects;"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
