package employee

import (
	"log/slog"

	"github.com/staffdesk/workforce-console/internal"
	workforceDatamodel "github.com/staffdesk/workforce-console/internal/core/datamodel/workforce"
)

type RepositoryAPI interface {
	GetAll() ([]*workforceDatamodel.Employee, error)
	GetByID(id int64) (*workforceDatamodel.Employee, error)
	Create(emp *workforceDatamodel.Employee) error
	Update(emp *workforceDatamodel.Employee) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAllEmployees() ([]EmployeeResponse, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get employees from repository", "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}

	responses := make([]EmployeeResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, FromDataModel(record).ToResponse(true))
	}

	s.logger.Info("retrieved employees", "count", len(responses))
	return responses, nil
}

func (s *Service) GetEmployee(id int64) (*EmployeeResponse, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to get employee", err)
	}
	if record == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	resp := FromDataModel(record).ToResponse(false)
	return &resp, nil
}

func (s *Service) CreateEmployee(dto EmployeeDTO) (int64, error) {
	joinDate, err := dto.Validate()
	if err != nil {
		return 0, err
	}

	record := &workforceDatamodel.Employee{
		Name:         dto.Name,
		Email:        dto.Email,
		Salary:       dto.Salary,
		JoinDate:     joinDate,
		DepartmentID: dto.DepartmentID,
	}

	if err := s.repo.Create(record); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return 0, appErr
		}
		s.logger.Error("failed to create employee", "error", err)
		return 0, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("created employee", "id", record.ID, "email", record.Email)
	return record.ID, nil
}

// UpdateEmployee performs a full replace. A payload identical to the stored
// record is rejected with a "nothing to update" notice, matching the legacy
// behavior the console's edit short-circuit depends on.
func (s *Service) UpdateEmployee(id int64, dto EmployeeDTO) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load employee for update", "id", id, "error", err)
		return internal.NewInternalError("failed to update employee", err)
	}
	if existing == nil {
		return internal.ErrEmployeeNotFound
	}

	joinDate, err := dto.Validate()
	if err != nil {
		return err
	}

	same := existing.Name == dto.Name &&
		existing.Email == dto.Email &&
		existing.Salary == dto.Salary &&
		existing.JoinDate.Equal(joinDate) &&
		equalID(existing.DepartmentID, dto.DepartmentID)
	if same {
		return internal.NewConflictError("Same information, nothing to update", internal.ErrCodeNothingToUpdate)
	}

	existing.Name = dto.Name
	existing.Email = dto.Email
	existing.Salary = dto.Salary
	existing.JoinDate = joinDate
	existing.DepartmentID = dto.DepartmentID

	if err := s.repo.Update(existing); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to update employee", "id", id, "error", err)
		return internal.NewInternalError("failed to update employee", err)
	}

	s.logger.Info("updated employee", "id", id)
	return nil
}

func (s *Service) DeleteEmployee(id int64) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load employee for delete", "id", id, "error", err)
		return internal.NewInternalError("failed to delete employee", err)
	}
	if existing == nil {
		return internal.ErrEmployeeNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "id", id, "error", err)
		return internal.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("deleted employee", "id", id)
	return nil
}

func equalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
