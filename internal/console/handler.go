package console

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

// Handler serves the console UI. Each CRUD section shares the same generic
// list/form/confirm flow, parameterized by its descriptor; assignments get a
// dedicated flow because they are an action on projects, not a resource.
type Handler struct {
	templates   *Templates
	views       map[string]*ListView
	forms       map[string]*Form
	assignments *AssignmentView
	exporter    *Exporter
	logger      *slog.Logger
}

func NewHandler(client *Client, templates *Templates, logger *slog.Logger) *Handler {
	descriptors := []Descriptor{
		EmployeeDescriptor(client),
		DepartmentDescriptor(),
		ProjectDescriptor(),
	}

	views := make(map[string]*ListView, len(descriptors))
	forms := make(map[string]*Form, len(descriptors))
	for _, desc := range descriptors {
		views[desc.Name] = NewListView(client, desc, logger)
		forms[desc.Name] = NewForm(client, desc, logger)
	}

	return &Handler{
		templates:   templates,
		views:       views,
		forms:       forms,
		assignments: NewAssignmentView(client, logger),
		exporter:    NewExporter(client, logger),
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/sections/{section}", h.listSection)
	r.Get("/sections/assignments/new", h.assignmentForm)
	r.Post("/sections/assignments", h.assign)
	r.Post("/sections/assignments/remove", h.unassign)
	r.Get("/sections/{section}/new", h.newForm)
	r.Get("/sections/{section}/{id}/edit", h.editForm)
	r.Post("/sections/{section}", h.create)
	r.Post("/sections/{section}/{id}", h.update)
	r.Get("/sections/{section}/{id}/delete", h.confirmDelete)
	r.Post("/sections/{section}/{id}/delete", h.delete)
	r.Get("/sections/employees/export.pdf", h.exportEmployees)
}

type basePage struct {
	Title   string
	Section string
	Nav     []NavItem
	Notices []Notice
	Query   string
}

type rowData struct {
	Cells      []string
	EditPath   string
	DeletePath string
}

type listPage struct {
	basePage
	Singular   string
	Headers    []string
	Rows       []rowData
	ColSpan    int
	NewPath    string
	ExportPath string
}

type formField struct {
	Name      string
	Label     string
	Kind      FieldKind
	InputType string
	Required  bool
	Value     string
	Options   []Option
}

type formPage struct {
	basePage
	Heading    string
	Action     string
	Fields     []formField
	Original   string
	CancelPath string
}

type confirmPage struct {
	basePage
	Heading    string
	Prompt     string
	Action     string
	CancelPath string
}

type assignmentsPage struct {
	basePage
	Rows    []AssignmentRow
	NewPath string
}

type assignmentFormPage struct {
	basePage
	Employees []Option
	Projects  []Option
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/sections/"+DefaultSection, http.StatusSeeOther)
}

func (h *Handler) base(w http.ResponseWriter, r *http.Request, section, title string) basePage {
	return basePage{
		Title:   title,
		Section: section,
		Nav:     NavItems(section),
		Notices: PopNotices(w, r),
		Query:   r.URL.Query().Get("q"),
	}
}

func (h *Handler) listSection(w http.ResponseWriter, r *http.Request) {
	section := ResolveSection(chi.URLParam(r, "section"))
	if section != chi.URLParam(r, "section") {
		http.Redirect(w, r, "/sections/"+section, http.StatusSeeOther)
		return
	}
	if section == SectionAssignments {
		h.listAssignments(w, r)
		return
	}

	view := h.views[section]
	desc := view.Descriptor()
	query := r.URL.Query().Get("q")

	page := listPage{
		basePage: h.base(w, r, section, desc.Singular+"s"),
		Singular: desc.Singular,
		NewPath:  "/sections/" + section + "/new",
		ColSpan:  len(desc.Columns) + 1,
	}
	if section == SectionEmployees {
		page.ExportPath = "/sections/employees/export.pdf"
	}
	for _, col := range desc.Columns {
		page.Headers = append(page.Headers, col.Header)
	}

	records, err := view.Load(r.Context(), query)
	if err != nil {
		h.logger.Error("list load failed", "section", section, "error", err)
		page.Notices = append(page.Notices, Notice{Message: "could not reach workforce API", Kind: NoticeError})
	}
	for _, rec := range records {
		row := rowData{
			EditPath:   fmt.Sprintf("/sections/%s/%s/edit", section, rec.Str("id")),
			DeletePath: fmt.Sprintf("/sections/%s/%s/delete", section, rec.Str("id")),
		}
		for _, col := range desc.Columns {
			row.Cells = append(row.Cells, col.Value(rec))
		}
		page.Rows = append(page.Rows, row)
	}

	h.render(w, "list", page)
}

// crudView resolves the section's list view. Assignments resolve to a valid
// section but have no generic view; requests for one redirect to the section
// page instead of dereferencing a missing entry.
func (h *Handler) crudView(w http.ResponseWriter, r *http.Request, section string) (*ListView, bool) {
	view, ok := h.views[section]
	if !ok {
		http.Redirect(w, r, "/sections/"+section, http.StatusSeeOther)
		return nil, false
	}
	return view, true
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	section := ResolveSection(chi.URLParam(r, "section"))
	view, ok := h.crudView(w, r, section)
	if !ok {
		return
	}
	desc := view.Descriptor()

	page := formPage{
		basePage:   h.base(w, r, section, "Add "+desc.Singular),
		Heading:    "Add " + desc.Singular,
		Action:     "/sections/" + section,
		CancelPath: "/sections/" + section,
		Fields:     h.buildFields(r, desc, nil),
	}
	h.render(w, "form", page)
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	section := ResolveSection(chi.URLParam(r, "section"))
	id := chi.URLParam(r, "id")
	view, ok := h.crudView(w, r, section)
	if !ok {
		return
	}
	desc := view.Descriptor()

	// Edit always works on a freshly fetched record, never a list snapshot.
	record, err := view.FetchRecord(r.Context(), id)
	if err != nil {
		h.logger.Error("record fetch failed", "section", section, "id", id, "error", err)
		Flash(w, r, "could not reach workforce API", NoticeError)
		http.Redirect(w, r, "/sections/"+section, http.StatusSeeOther)
		return
	}

	original, err := json.Marshal(record)
	if err != nil {
		original = []byte("{}")
	}

	page := formPage{
		basePage:   h.base(w, r, section, "Edit "+desc.Singular),
		Heading:    "Edit " + desc.Singular,
		Action:     "/sections/" + section + "/" + id,
		CancelPath: "/sections/" + section,
		Original:   string(original),
		Fields:     h.buildFields(r, desc, record),
	}
	h.render(w, "form", page)
}

// buildFields resolves select options fresh for every form render; option
// lists are never cached between opens.
func (h *Handler) buildFields(r *http.Request, desc Descriptor, record Record) []formField {
	fields := make([]formField, 0, len(desc.FormFields))
	for _, f := range desc.FormFields {
		field := formField{
			Name:      f.Name,
			Label:     f.Label,
			Kind:      f.Kind,
			InputType: inputType(f.Kind),
			Required:  f.Required,
		}
		if record != nil {
			field.Value = record.Str(f.Name)
		}
		if f.Options != nil {
			options, err := f.Options(r.Context())
			if err != nil {
				h.logger.Warn("option fetch failed", "field", f.Name, "error", err)
			}
			field.Options = options
		}
		fields = append(fields, field)
	}
	return fields
}

func inputType(kind FieldKind) string {
	switch kind {
	case FieldEmail:
		return "email"
	case FieldNumber:
		return "number"
	case FieldDate:
		return "date"
	default:
		return "text"
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, ModeAdd)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, ModeEdit)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, mode FormMode) {
	section := ResolveSection(chi.URLParam(r, "section"))
	id := chi.URLParam(r, "id")
	view, ok := h.crudView(w, r, section)
	if !ok {
		return
	}
	form := h.forms[section]
	desc := view.Descriptor()

	if err := r.ParseForm(); err != nil {
		Flash(w, r, "invalid form submission", NoticeError)
		http.Redirect(w, r, "/sections/"+section, http.StatusSeeOther)
		return
	}

	outcome := form.Submit(r.Context(), mode, id, r.PostForm, r.PostForm.Get("_original"))
	if outcome.KeepOpen {
		// Validation failed before any network call; re-render with the
		// entered values so nothing the user typed is lost.
		heading := "Add " + desc.Singular
		action := "/sections/" + section
		if mode == ModeEdit {
			heading = "Edit " + desc.Singular
			action = "/sections/" + section + "/" + id
		}
		page := formPage{
			basePage:   h.base(w, r, section, heading),
			Heading:    heading,
			Action:     action,
			CancelPath: "/sections/" + section,
			Original:   r.PostForm.Get("_original"),
			Fields:     h.buildFields(r, desc, Record(form.BuildPayload(r.PostForm))),
		}
		page.Notices = append(page.Notices, outcome.Notice)
		h.render(w, "form", page)
		return
	}

	Flash(w, r, outcome.Notice.Message, outcome.Notice.Kind)
	http.Redirect(w, r, "/sections/"+section, http.StatusSeeOther)
}

func (h *Handler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	section := ResolveSection(chi.URLParam(r, "section"))
	id := chi.URLParam(r, "id")
	view, ok := h.crudView(w, r, section)
	if !ok {
		return
	}
	desc := view.Descriptor()

	page := confirmPage{
		basePage:   h.base(w, r, section, "Delete "+desc.Singular),
		Heading:    "Delete " + desc.Singular,
		Prompt:     fmt.Sprintf("Are you sure you want to delete this %s?", desc.Singular),
		Action:     fmt.Sprintf("/sections/%s/%s/delete", section, id),
		CancelPath: "/sections/" + section,
	}
	h.render(w, "confirm", page)
}

// delete issues the DELETE and redirects back to the list either way; the
// redirect is the reload that resynchronizes the table with the server.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	section := ResolveSection(chi.URLParam(r, "section"))
	id := chi.URLParam(r, "id")
	view, ok := h.crudView(w, r, section)
	if !ok {
		return
	}

	res, err := view.Delete(r.Context(), id)
	if err != nil {
		Flash(w, r, "could not reach workforce API", NoticeError)
	} else {
		notice := resultNotice(res)
		Flash(w, r, notice.Message, notice.Kind)
	}
	http.Redirect(w, r, "/sections/"+section, http.StatusSeeOther)
}

func (h *Handler) listAssignments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := assignmentsPage{
		basePage: h.base(w, r, SectionAssignments, "Assignments"),
		NewPath:  "/sections/assignments/new",
	}

	rows, err := h.assignments.Load(r.Context(), query)
	if err != nil {
		h.logger.Error("assignments load failed", "error", err)
		page.Notices = append(page.Notices, Notice{Message: "could not reach workforce API", Kind: NoticeError})
	}
	page.Rows = rows

	h.render(w, "assignments", page)
}

func (h *Handler) assignmentForm(w http.ResponseWriter, r *http.Request) {
	page := assignmentFormPage{
		basePage: h.base(w, r, SectionAssignments, "Assign Employee"),
	}

	employees, err := h.assignments.EmployeeOptions(r.Context())
	if err != nil {
		h.logger.Error("employee options failed", "error", err)
		page.Notices = append(page.Notices, Notice{Message: "could not reach workforce API", Kind: NoticeError})
	}
	projects, err := h.assignments.ProjectOptions(r.Context())
	if err != nil {
		h.logger.Error("project options failed", "error", err)
	}
	page.Employees = employees
	page.Projects = projects

	h.render(w, "assignment_form", page)
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	projectID, employeeID, ok := assignmentIDs(r)
	if !ok {
		Flash(w, r, "Please select both employee and project", NoticeError)
		http.Redirect(w, r, "/sections/assignments/new", http.StatusSeeOther)
		return
	}
	notice := h.assignments.Assign(r.Context(), projectID, employeeID)
	Flash(w, r, notice.Message, notice.Kind)
	http.Redirect(w, r, "/sections/assignments", http.StatusSeeOther)
}

func (h *Handler) unassign(w http.ResponseWriter, r *http.Request) {
	projectID, employeeID, ok := assignmentIDs(r)
	if !ok {
		Flash(w, r, "Please select both employee and project", NoticeError)
		http.Redirect(w, r, "/sections/assignments", http.StatusSeeOther)
		return
	}
	notice := h.assignments.Unassign(r.Context(), projectID, employeeID)
	Flash(w, r, notice.Message, notice.Kind)
	http.Redirect(w, r, "/sections/assignments", http.StatusSeeOther)
}

func assignmentIDs(r *http.Request) (projectID, employeeID int64, ok bool) {
	if err := r.ParseForm(); err != nil {
		return 0, 0, false
	}
	projectID, err := strconv.ParseInt(r.PostForm.Get("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		return 0, 0, false
	}
	employeeID, err = strconv.ParseInt(r.PostForm.Get("employee_id"), 10, 64)
	if err != nil || employeeID == 0 {
		return 0, 0, false
	}
	return projectID, employeeID, true
}

func (h *Handler) exportEmployees(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.pdf"`)
	if err := h.exporter.EmployeeRoster(r.Context(), w, r.URL.Query().Get("q")); err != nil {
		h.logger.Error("roster export failed", "error", err)
	}
}

func (h *Handler) render(w http.ResponseWriter, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, page, data); err != nil {
		h.logger.Error("template render failed", "page", page, "error", err)
	}
}
