package project

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/staffdesk/workforce-console/internal"
	"github.com/staffdesk/workforce-console/internal/core/common/codes"
	workforceDatamodel "github.com/staffdesk/workforce-console/internal/core/datamodel/workforce"
)

// ProjectCodeLength matches the legacy service's 5-char project codes.
const ProjectCodeLength = 5

type RepositoryAPI interface {
	GetAll() ([]*workforceDatamodel.Project, error)
	GetByID(id int64) (*workforceDatamodel.Project, error)
	ExistsByCode(code string) (bool, error)
	Create(proj *workforceDatamodel.Project) error
	Update(proj *workforceDatamodel.Project) error
	Delete(id int64) error

	GetEmployee(id int64) (*workforceDatamodel.Employee, error)
	IsAssigned(employeeID, projectID int64) (bool, error)
	Assign(employeeID, projectID int64) error
	Unassign(employeeID, projectID int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAllProjects() ([]ProjectResponse, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get projects from repository", "error", err)
		return nil, internal.NewInternalError("failed to list projects", err)
	}

	responses := make([]ProjectResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, FromDataModel(record).ToResponse())
	}

	s.logger.Info("retrieved projects", "count", len(responses))
	return responses, nil
}

func (s *Service) GetProject(id int64) (*ProjectResponse, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get project", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to get project", err)
	}
	if record == nil {
		return nil, internal.ErrProjectNotFound
	}
	resp := FromDataModel(record).ToResponse()
	return &resp, nil
}

func (s *Service) CreateProject(dto ProjectDTO) (int64, string, error) {
	start, end, err := dto.Validate()
	if err != nil {
		return 0, "", err
	}

	code, err := codes.Generate(ProjectCodeLength, s.repo.ExistsByCode)
	if err != nil {
		s.logger.Error("failed to generate project_code", "error", err)
		return 0, "", internal.NewInternalError("failed to create project", err)
	}

	record := &workforceDatamodel.Project{
		Title:        dto.Title,
		Description:  dto.Description,
		StartDate:    start,
		EndDate:      end,
		ProjectCode:  code,
		DepartmentID: dto.DepartmentID,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create project", "error", err)
		return 0, "", internal.NewInternalError("failed to create project", err)
	}

	s.logger.Info("created project", "id", record.ID, "project_code", code)
	return record.ID, code, nil
}

// UpdateProject performs a full replace of the writable fields; project_code
// never changes after creation.
func (s *Service) UpdateProject(id int64, dto ProjectDTO) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load project for update", "id", id, "error", err)
		return internal.NewInternalError("failed to update project", err)
	}
	if existing == nil {
		return internal.ErrProjectNotFound
	}

	start, end, err := dto.Validate()
	if err != nil {
		return err
	}

	same := existing.Title == dto.Title &&
		existing.Description == dto.Description &&
		existing.StartDate.Equal(start) &&
		equalDate(existing.EndDate, end) &&
		equalID(existing.DepartmentID, dto.DepartmentID)
	if same {
		return internal.NewConflictError("Same information, nothing to update", internal.ErrCodeNothingToUpdate)
	}

	existing.Title = dto.Title
	existing.Description = dto.Description
	existing.StartDate = start
	existing.EndDate = end
	existing.DepartmentID = dto.DepartmentID

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update project", "id", id, "error", err)
		return internal.NewInternalError("failed to update project", err)
	}

	s.logger.Info("updated project", "id", id)
	return nil
}

func (s *Service) DeleteProject(id int64) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load project for delete", "id", id, "error", err)
		return internal.NewInternalError("failed to delete project", err)
	}
	if existing == nil {
		return internal.ErrProjectNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete project", "id", id, "error", err)
		return internal.NewInternalError("failed to delete project", err)
	}

	s.logger.Info("deleted project", "id", id)
	return nil
}

// AssignEmployee links an employee to a project. The success message carries
// the employee email and project title, which the console surfaces as-is.
func (s *Service) AssignEmployee(projectID, employeeID int64) (string, error) {
	proj, emp, err := s.resolvePair(projectID, employeeID)
	if err != nil {
		return "", err
	}

	assigned, err := s.repo.IsAssigned(employeeID, projectID)
	if err != nil {
		s.logger.Error("failed to check assignment", "project_id", projectID, "employee_id", employeeID, "error", err)
		return "", internal.NewInternalError("failed to assign employee", err)
	}
	if assigned {
		return "", internal.NewConflictError("Employee already assigned", internal.ErrCodeAlreadyAssigned)
	}

	if err := s.repo.Assign(employeeID, projectID); err != nil {
		s.logger.Error("failed to assign employee", "project_id", projectID, "employee_id", employeeID, "error", err)
		return "", internal.NewInternalError("failed to assign employee", err)
	}

	s.logger.Info("assigned employee to project", "project_id", projectID, "employee_id", employeeID)
	return fmt.Sprintf("Employee %s assigned to %s", emp.Email, proj.Title), nil
}

func (s *Service) UnassignEmployee(projectID, employeeID int64) (string, error) {
	proj, emp, err := s.resolvePair(projectID, employeeID)
	if err != nil {
		return "", err
	}

	assigned, err := s.repo.IsAssigned(employeeID, projectID)
	if err != nil {
		s.logger.Error("failed to check assignment", "project_id", projectID, "employee_id", employeeID, "error", err)
		return "", internal.NewInternalError("failed to unassign employee", err)
	}
	if !assigned {
		return "", internal.NewConflictError("Employee not assigned", internal.ErrCodeNotAssigned)
	}

	if err := s.repo.Unassign(employeeID, projectID); err != nil {
		s.logger.Error("failed to unassign employee", "project_id", projectID, "employee_id", employeeID, "error", err)
		return "", internal.NewInternalError("failed to unassign employee", err)
	}

	s.logger.Info("unassigned employee from project", "project_id", projectID, "employee_id", employeeID)
	return fmt.Sprintf("Employee %s unassigned from %s", emp.Email, proj.Title), nil
}

func (s *Service) resolvePair(projectID, employeeID int64) (*workforceDatamodel.Project, *workforceDatamodel.Employee, error) {
	proj, err := s.repo.GetByID(projectID)
	if err != nil {
		return nil, nil, internal.NewInternalError("failed to resolve project", err)
	}
	emp, err := s.repo.GetEmployee(employeeID)
	if err != nil {
		return nil, nil, internal.NewInternalError("failed to resolve employee", err)
	}
	if proj == nil || emp == nil {
		return nil, nil, internal.NewNotFoundError("Invalid employee or project", internal.ErrCodeProjectNotFound)
	}
	return proj, emp, nil
}

func equalDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func equalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
