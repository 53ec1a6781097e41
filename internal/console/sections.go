package console

// Section names. Employees is the landing section; unknown names route
// there as well so a stale bookmark never renders an empty console.
const (
	SectionEmployees   = "employees"
	SectionDepartments = "departments"
	SectionProjects    = "projects"
	SectionAssignments = "assignments"
	DefaultSection     = SectionEmployees
)

var sectionOrder = []string{
	SectionEmployees,
	SectionDepartments,
	SectionProjects,
	SectionAssignments,
}

// NavItem is one entry of the console's section switcher.
type NavItem struct {
	Name   string
	Label  string
	Active bool
}

var sectionLabels = map[string]string{
	SectionEmployees:   "Employees",
	SectionDepartments: "Departments",
	SectionProjects:    "Projects",
	SectionAssignments: "Assignments",
}

// ResolveSection maps a requested section name onto a known one.
func ResolveSection(name string) string {
	if _, ok := sectionLabels[name]; ok {
		return name
	}
	return DefaultSection
}

// NavItems builds the switcher with exactly one active entry. Re-activating
// the current section is a no-op by construction: the same name resolves to
// the same rendering.
func NavItems(active string) []NavItem {
	active = ResolveSection(active)
	items := make([]NavItem, 0, len(sectionOrder))
	for _, name := range sectionOrder {
		items = append(items, NavItem{
			Name:   name,
			Label:  sectionLabels[name],
			Active: name == active,
		})
	}
	return items
}
