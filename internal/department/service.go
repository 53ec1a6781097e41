package department

import (
	"log/slog"

	"github.com/staffdesk/workforce-console/internal"
	"github.com/staffdesk/workforce-console/internal/core/common/codes"
	workforceDatamodel "github.com/staffdesk/workforce-console/internal/core/datamodel/workforce"
)

// DeptCodeLength matches the legacy service's 4-char department codes.
const DeptCodeLength = 4

type RepositoryAPI interface {
	GetAll() ([]*workforceDatamodel.Department, error)
	GetByID(id int64) (*workforceDatamodel.Department, error)
	ExistsByCode(code string) (bool, error)
	Create(dept *workforceDatamodel.Department) error
	Update(dept *workforceDatamodel.Department) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAllDepartments() ([]DepartmentResponse, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments from repository", "error", err)
		return nil, internal.NewInternalError("failed to list departments", err)
	}

	responses := make([]DepartmentResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, FromDataModel(record).ToResponse())
	}

	s.logger.Info("retrieved departments", "count", len(responses))
	return responses, nil
}

func (s *Service) GetDepartment(id int64) (*DepartmentResponse, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get department", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to get department", err)
	}
	if record == nil {
		return nil, internal.ErrDepartmentNotFound
	}
	resp := FromDataModel(record).ToResponse()
	return &resp, nil
}

// CreateDepartment assigns a fresh dept_code; the code is returned so the
// console can surface it immediately.
func (s *Service) CreateDepartment(dto DepartmentDTO) (int64, string, error) {
	if err := dto.Validate(); err != nil {
		return 0, "", err
	}

	code, err := codes.Generate(DeptCodeLength, s.repo.ExistsByCode)
	if err != nil {
		s.logger.Error("failed to generate dept_code", "error", err)
		return 0, "", internal.NewInternalError("failed to create department", err)
	}

	record := &workforceDatamodel.Department{
		Name:     dto.Name,
		Location: dto.Location,
		DeptCode: code,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create department", "error", err)
		return 0, "", internal.NewInternalError("failed to create department", err)
	}

	s.logger.Info("created department", "id", record.ID, "dept_code", code)
	return record.ID, code, nil
}

// UpdateDepartment performs a full replace of the writable fields; dept_code
// never changes after creation.
func (s *Service) UpdateDepartment(id int64, dto DepartmentDTO) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load department for update", "id", id, "error", err)
		return internal.NewInternalError("failed to update department", err)
	}
	if existing == nil {
		return internal.ErrDepartmentNotFound
	}

	if err := dto.Validate(); err != nil {
		return err
	}

	if existing.Name == dto.Name && equalLocation(existing.Location, dto.Location) {
		return internal.NewConflictError("Same information, nothing to update", internal.ErrCodeNothingToUpdate)
	}

	existing.Name = dto.Name
	existing.Location = dto.Location

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update department", "id", id, "error", err)
		return internal.NewInternalError("failed to update department", err)
	}

	s.logger.Info("updated department", "id", id)
	return nil
}

func (s *Service) DeleteDepartment(id int64) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load department for delete", "id", id, "error", err)
		return internal.NewInternalError("failed to delete department", err)
	}
	if existing == nil {
		return internal.ErrDepartmentNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete department", "id", id, "error", err)
		return internal.NewInternalError("failed to delete department", err)
	}

	s.logger.Info("deleted department", "id", id)
	return nil
}

func equalLocation(a, b *string) bool {
	if a == nil || b == nil {
		// treat nil and empty string as the same stored value
		return (a == nil || *a == "") && (b == nil || *b == "")
	}
	return *a == *b
}
