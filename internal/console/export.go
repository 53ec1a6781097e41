package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Exporter renders the employee roster as a PDF, honoring the same search
// filter the list view applies on screen.
type Exporter struct {
	client *Client
	logger *slog.Logger
}

func NewExporter(client *Client, logger *slog.Logger) *Exporter {
	return &Exporter{client: client, logger: logger}
}

// EmployeeRoster writes the filtered roster to w as an A4 portrait PDF.
func (e *Exporter) EmployeeRoster(ctx context.Context, w io.Writer, query string) error {
	employees, err := e.client.FetchList(ctx, "/employees")
	if err != nil {
		return err
	}
	if err := attachDepartmentNames(ctx, e.client, employees); err != nil {
		e.logger.Warn("department lookup failed for export", "error", err)
	}
	employees = Filter(employees, query, []string{"name", "email"})

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Roster")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	headers := []string{"ID", "Name", "Email", "Salary", "Join Date", "Department"}
	widths := []float64{12, 38, 52, 24, 28, 36}

	pdf.SetFont("Helvetica", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, emp := range employees {
		cells := []string{
			emp.Str("id"),
			emp.Str("name"),
			emp.Str("email"),
			emp.Str("salary"),
			emp.Str("join_date"),
			emp.Str("department_name"),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render roster PDF: %w", err)
	}
	return nil
}
