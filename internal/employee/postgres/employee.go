package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/staffdesk/workforce-console/internal"
	workforceDatamodel "github.com/staffdesk/workforce-console/internal/core/datamodel/workforce"
	"github.com/staffdesk/workforce-console/internal/employee"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

// GetAll preloads assigned projects so the listing can embed summaries;
// order is the insertion order by primary key.
func (r *EmployeeRepository) GetAll() ([]*workforceDatamodel.Employee, error) {
	var employees []*workforceDatamodel.Employee
	err := r.db.Preload("Projects").Order("id ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(id int64) (*workforceDatamodel.Employee, error) {
	var emp workforceDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) Create(emp *workforceDatamodel.Employee) error {
	err := r.db.Create(emp).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrDuplicateEmail
	}
	return err
}

func (r *EmployeeRepository) Update(emp *workforceDatamodel.Employee) error {
	err := r.db.Save(emp).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrDuplicateEmail
	}
	return err
}

func (r *EmployeeRepository) Delete(id int64) error {
	emp := workforceDatamodel.Employee{ID: id}
	// clear join rows first so no dangling assignments survive the employee
	if err := r.db.Model(&emp).Association("Projects").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&emp).Error
}
