package console

import (
	"context"
	"fmt"
	"time"

	"github.com/staffdesk/workforce-console/internal"
	"github.com/staffdesk/workforce-console/internal/core/common/validation"
)

// EmployeeDescriptor declares the employees screen. The department column is
// denormalized at load time from the departments collection; the department
// select re-fetches its options every time the form opens.
func EmployeeDescriptor(client *Client) Descriptor {
	return Descriptor{
		Name:     SectionEmployees,
		Singular: "Employee",
		ListPath: "/employees",
		Columns: []Column{
			TextColumn("ID", "id"),
			TextColumn("Name", "name"),
			TextColumn("Email", "email"),
			TextColumn("Salary", "salary"),
			TextColumn("Join Date", "join_date"),
			TextColumn("Department", "department_name"),
		},
		SearchFields: []string{"name", "email"},
		FormFields: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "email", Label: "Email", Kind: FieldEmail, Required: true},
			{Name: "salary", Label: "Salary", Kind: FieldNumber, Required: true},
			{Name: "join_date", Label: "Join Date", Kind: FieldDate, Required: true},
			{
				Name:    "department_id",
				Label:   "Department",
				Kind:    FieldSelect,
				Options: departmentOptions(client),
			},
		},
		Enrich: attachDepartmentNames,
	}
}

func DepartmentDescriptor() Descriptor {
	return Descriptor{
		Name:     SectionDepartments,
		Singular: "Department",
		ListPath: "/departments",
		Columns: []Column{
			TextColumn("ID", "id"),
			TextColumn("Name", "name"),
			TextColumn("Location", "location"),
			TextColumn("Code", "dept_code"),
		},
		SearchFields: []string{"name", "location"},
		FormFields: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "location", Label: "Location", Kind: FieldText},
		},
	}
}

func ProjectDescriptor() Descriptor {
	return Descriptor{
		Name:     SectionProjects,
		Singular: "Project",
		ListPath: "/projects",
		Columns: []Column{
			TextColumn("ID", "id"),
			TextColumn("Title", "title"),
			TextColumn("Description", "description"),
			TextColumn("Start Date", "start_date"),
			TextColumn("End Date", "end_date"),
			TextColumn("Code", "project_code"),
		},
		SearchFields: []string{"title", "description"},
		FormFields: []Field{
			{Name: "title", Label: "Title", Kind: FieldText, Required: true},
			{Name: "description", Label: "Description", Kind: FieldTextarea, Required: true},
			{Name: "start_date", Label: "Start Date", Kind: FieldDate, Required: true},
			{Name: "end_date", Label: "End Date", Kind: FieldDate},
		},
		Validate: validateProjectDates,
	}
}

// validateProjectDates blocks submission when the end date precedes the start
// date. Equal dates pass: a one-day project is legitimate.
func validateProjectDates(payload map[string]interface{}) error {
	start, _ := payload["start_date"].(string)
	end, _ := payload["end_date"].(string)
	if start == "" || end == "" {
		return nil
	}
	startDate, err := time.Parse(validation.DateLayout, start)
	if err != nil {
		return nil
	}
	endDate, err := time.Parse(validation.DateLayout, end)
	if err != nil {
		return nil
	}
	if endDate.Before(startDate) {
		return internal.NewValidationError("end_date cannot be earlier than start_date", internal.ErrCodeInvalidDate)
	}
	return nil
}

// departmentOptions fetches the department list for the employee form's
// select, fresh on every form open.
func departmentOptions(client *Client) func(ctx context.Context) ([]Option, error) {
	return func(ctx context.Context) ([]Option, error) {
		departments, err := client.FetchList(ctx, "/departments")
		if err != nil {
			return nil, err
		}
		options := make([]Option, 0, len(departments))
		for _, dept := range departments {
			id, ok := dept.Int64("id")
			if !ok {
				continue
			}
			options = append(options, Option{
				Value: fmt.Sprintf("%d", id),
				Label: dept.Str("name"),
			})
		}
		return options, nil
	}
}

// attachDepartmentNames resolves each employee's department_id against the
// departments collection so the list can show a name instead of a number.
func attachDepartmentNames(ctx context.Context, client *Client, records []Record) error {
	departments, err := client.FetchList(ctx, "/departments")
	if err != nil {
		return err
	}
	names := make(map[int64]string, len(departments))
	for _, dept := range departments {
		if id, ok := dept.Int64("id"); ok {
			names[id] = dept.Str("name")
		}
	}
	for _, rec := range records {
		if deptID, ok := rec.Int64("department_id"); ok {
			rec["department_name"] = names[deptID]
		}
	}
	return nil
}
