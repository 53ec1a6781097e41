package postgres

import (
	"errors"

	"gorm.io/gorm"

	workforceDatamodel "github.com/staffdesk/workforce-console/internal/core/datamodel/workforce"
	"github.com/staffdesk/workforce-console/internal/department"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*workforceDatamodel.Department, error) {
	var departments []*workforceDatamodel.Department
	err := r.db.Order("id ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByID(id int64) (*workforceDatamodel.Department, error) {
	var dept workforceDatamodel.Department
	err := r.db.Where("id = ?", id).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&workforceDatamodel.Department{}).Where("dept_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *DepartmentRepository) Create(dept *workforceDatamodel.Department) error {
	return r.db.Create(dept).Error
}

func (r *DepartmentRepository) Update(dept *workforceDatamodel.Department) error {
	return r.db.Save(dept).Error
}

func (r *DepartmentRepository) Delete(id int64) error {
	// employees referencing the department keep a dangling department_id on
	// their side cleared here, matching the legacy nullable FK behavior
	if err := r.db.Model(&workforceDatamodel.Employee{}).
		Where("department_id = ?", id).
		Update("department_id", nil).Error; err != nil {
		return err
	}
	return r.db.Delete(&workforceDatamodel.Department{ID: id}).Error
}
