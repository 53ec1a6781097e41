package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// AssignmentRow is one employee-project pairing. The backend has no
// assignments collection; rows are flattened out of the employee listing's
// embedded projects.
type AssignmentRow struct {
	EmployeeID   int64
	EmployeeName string
	ProjectID    int64
	ProjectTitle string
}

// AssignmentView drives the assignments section: a read model flattened from
// employees, plus the assign and unassign mutations, which are always POSTs
// against the project resource.
type AssignmentView struct {
	client *Client
	logger *slog.Logger
}

func NewAssignmentView(client *Client, logger *slog.Logger) *AssignmentView {
	return &AssignmentView{client: client, logger: logger}
}

// Load flattens the employee listing into assignment rows. An employee on
// three projects contributes three rows; employees without projects
// contribute none.
func (v *AssignmentView) Load(ctx context.Context, query string) ([]AssignmentRow, error) {
	employees, err := v.client.FetchList(ctx, "/employees")
	if err != nil {
		return nil, err
	}

	rows := make([]AssignmentRow, 0, len(employees))
	for _, emp := range employees {
		empID, ok := emp.Int64("id")
		if !ok {
			continue
		}
		projects, ok := emp["projects"].([]interface{})
		if !ok {
			continue
		}
		for _, raw := range projects {
			proj, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			pr := Record(proj)
			projID, ok := pr.Int64("id")
			if !ok {
				continue
			}
			rows = append(rows, AssignmentRow{
				EmployeeID:   empID,
				EmployeeName: emp.Str("name"),
				ProjectID:    projID,
				ProjectTitle: pr.Str("title"),
			})
		}
	}
	return filterAssignments(rows, query), nil
}

// Assign pairs an employee with a project.
func (v *AssignmentView) Assign(ctx context.Context, projectID, employeeID int64) Notice {
	return v.mutate(ctx, projectID, employeeID, "assign")
}

// Unassign removes a pairing. This is a POST to the project's unassign
// action, not a DELETE of any resource.
func (v *AssignmentView) Unassign(ctx context.Context, projectID, employeeID int64) Notice {
	return v.mutate(ctx, projectID, employeeID, "unassign")
}

func (v *AssignmentView) mutate(ctx context.Context, projectID, employeeID int64, action string) Notice {
	path := fmt.Sprintf("/projects/%d/%s", projectID, action)
	res, err := v.client.Send(ctx, path, "POST", map[string]interface{}{
		"employee_id": employeeID,
	})
	if err != nil {
		v.logger.Error("assignment mutation failed", "action", action, "project_id", projectID, "error", err)
		return Notice{Message: "could not reach workforce API", Kind: NoticeError}
	}
	return resultNotice(res)
}

// EmployeeOptions and ProjectOptions feed the assignment form's selects,
// fetched fresh each time the form opens.
func (v *AssignmentView) EmployeeOptions(ctx context.Context) ([]Option, error) {
	return v.listOptions(ctx, "/employees", "name")
}

func (v *AssignmentView) ProjectOptions(ctx context.Context) ([]Option, error) {
	return v.listOptions(ctx, "/projects", "title")
}

func (v *AssignmentView) listOptions(ctx context.Context, path, labelField string) ([]Option, error) {
	records, err := v.client.FetchList(ctx, path)
	if err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(records))
	for _, rec := range records {
		id, ok := rec.Int64("id")
		if !ok {
			continue
		}
		options = append(options, Option{
			Value: fmt.Sprintf("%d", id),
			Label: rec.Str(labelField),
		})
	}
	return options, nil
}

// filterAssignments searches over both sides of the pairing.
func filterAssignments(rows []AssignmentRow, query string) []AssignmentRow {
	if strings.TrimSpace(query) == "" {
		return rows
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	filtered := make([]AssignmentRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.EmployeeName), needle) ||
			strings.Contains(strings.ToLower(row.ProjectTitle), needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
