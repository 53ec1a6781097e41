package postgres

import (
	"errors"

	"gorm.io/gorm"

	workforceDatamodel "github.com/staffdesk/workforce-console/internal/core/datamodel/workforce"
	"github.com/staffdesk/workforce-console/internal/project"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.RepositoryAPI {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetAll() ([]*workforceDatamodel.Project, error) {
	var projects []*workforceDatamodel.Project
	err := r.db.Order("id ASC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByID(id int64) (*workforceDatamodel.Project, error) {
	var proj workforceDatamodel.Project
	err := r.db.Where("id = ?", id).First(&proj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &proj, nil
}

func (r *ProjectRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&workforceDatamodel.Project{}).Where("project_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *ProjectRepository) Create(proj *workforceDatamodel.Project) error {
	return r.db.Create(proj).Error
}

func (r *ProjectRepository) Update(proj *workforceDatamodel.Project) error {
	return r.db.Save(proj).Error
}

func (r *ProjectRepository) Delete(id int64) error {
	proj := workforceDatamodel.Project{ID: id}
	if err := r.db.Model(&proj).Association("Employees").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&proj).Error
}

func (r *ProjectRepository) GetEmployee(id int64) (*workforceDatamodel.Employee, error) {
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

func (r *ProjectRepository) IsAssigned(employeeID, projectID int64) (bool, error) {
	var count int64
	err := r.db.Table("employee_projects").
		Where("employee_id = ? AND project_id = ?", employeeID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *ProjectRepository) Assign(employeeID, projectID int64) error {
	proj := workforceDatamodel.Project{ID: projectID}
	return r.db.Model(&proj).Association("Employees").Append(&workforceDatamodel.Employee{ID: employeeID})
}

func (r *ProjectRepository) Unassign(employeeID, projectID int64) error {
	proj := workforceDatamodel.Project{ID: projectID}
	return r.db.Model(&proj).Association("Employees").Delete(&workforceDatamodel.Employee{ID: employeeID})
}
