package console_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-chi/chi"

	"github.com/staffdesk/workforce-console/internal/console"
)

var _ = Describe("Console Handler", func() {
	var (
		backend *fakeBackend
		router  *chi.Mux
	)

	BeforeEach(func() {
		backend = newFakeBackend()
		backend.On("GET", "/employees", 200, `[]`)
		backend.On("GET", "/departments", 200, `[]`)
		backend.On("GET", "/projects", 200, `[]`)

		templates, err := console.NewTemplates()
		Expect(err).NotTo(HaveOccurred())

		client := console.NewClient(backend.URL(), 2*time.Second, testLogger())
		handler := console.NewHandler(client, templates, testLogger())

		router = chi.NewRouter()
		handler.RegisterRoutes(router)
	})

	AfterEach(func() {
		backend.Close()
	})

	get := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	postForm := func(target string, values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	flashedNotices := func(w *httptest.ResponseRecorder) []console.Notice {
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name != "workforce_flash" || cookie.Value == "" {
				continue
			}
			decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
			Expect(err).NotTo(HaveOccurred())
			var notices []console.Notice
			Expect(json.Unmarshal(decoded, &notices)).To(Succeed())
			return notices
		}
		return nil
	}

	Describe("section routing", func() {
		It("should land on employees from the root", func() {
			w := get("/")

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/sections/employees"))
		})

		It("should route unknown sections to the default", func() {
			w := get("/sections/bogus")

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/sections/employees"))
		})

		It("should mark exactly one nav entry active", func() {
			w := get("/sections/projects")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(strings.Count(w.Body.String(), `class="active"`)).To(Equal(1))
			Expect(w.Body.String()).To(ContainSubstring(`/sections/projects" class="active"`))
		})

		It("should render the same section identically on repeat requests", func() {
			first := get("/sections/departments").Body.String()
			second := get("/sections/departments").Body.String()

			Expect(second).To(Equal(first))
		})
	})

	Describe("list rendering", func() {
		It("should show the placeholder row for an empty collection", func() {
			w := get("/sections/departments")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("No records found"))
		})

		It("should resolve department names on the employee list", func() {
			backend.On("GET", "/employees", 200,
				`[{"id":1,"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13","department_id":2,"projects":[]}]`)
			backend.On("GET", "/departments", 200,
				`[{"id":2,"name":"Engineering","dept_code":"ENG1"}]`)

			w := get("/sections/employees")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Anna de Vries"))
			Expect(w.Body.String()).To(ContainSubstring("Engineering"))
		})

		It("should surface a dash for empty optional cells", func() {
			backend.On("GET", "/departments", 200,
				`[{"id":1,"name":"Engineering","location":null,"dept_code":"ENG1"}]`)

			w := get("/sections/departments")

			Expect(w.Body.String()).To(ContainSubstring("<td>-</td>"))
		})
	})

	Describe("edit flow", func() {
		BeforeEach(func() {
			backend.On("GET", "/employees/1", 200,
				`{"id":1,"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13","department_id":null}`)
		})

		It("should fetch the record fresh and embed the original snapshot", func() {
			w := get("/sections/employees/1/edit")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`name="_original"`))
			Expect(w.Body.String()).To(ContainSubstring(`value="Anna de Vries"`))

			var fetchedRecord bool
			for _, call := range backend.Calls() {
				if call.Method == http.MethodGet && call.Path == "/employees/1" {
					fetchedRecord = true
				}
			}
			Expect(fetchedRecord).To(BeTrue())
		})

		It("should skip every mutation call for an unchanged submission", func() {
			original := `{"id":1,"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13","department_id":null}`
			backend.Reset()

			w := postForm("/sections/employees/1", url.Values{
				"name":          {"Anna de Vries"},
				"email":         {"anna@staffdesk.com"},
				"salary":        {"72000"},
				"join_date":     {"2023-02-13"},
				"department_id": {""},
				"_original":     {original},
			})

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(backend.CallsTo(http.MethodPost)).To(BeEmpty())
			Expect(backend.CallsTo(http.MethodPut)).To(BeEmpty())
			Expect(backend.CallsTo(http.MethodDelete)).To(BeEmpty())

			notices := flashedNotices(w)
			Expect(notices).To(HaveLen(1))
			Expect(notices[0].Message).To(Equal("Same information, nothing to update"))
			Expect(notices[0].Kind).To(Equal(console.NoticeInfo))
		})

		It("should PUT once for a changed submission", func() {
			backend.On("PUT", "/employees/1", 200, `{"message": "Employee updated successfully"}`)
			original := `{"id":1,"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13","department_id":null}`
			backend.Reset()

			w := postForm("/sections/employees/1", url.Values{
				"name":          {"Anna de Vries"},
				"email":         {"anna@staffdesk.com"},
				"salary":        {"75000"},
				"join_date":     {"2023-02-13"},
				"department_id": {""},
				"_original":     {original},
			})

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(backend.CallsTo(http.MethodPut)).To(HaveLen(1))
		})
	})

	Describe("create flow", func() {
		It("should POST the typed payload and flash the backend message", func() {
			backend.On("POST", "/departments", 201,
				`{"message": "Department created successfully", "id": 1, "dept_code": "ENG1"}`)

			w := postForm("/sections/departments", url.Values{
				"name":     {"Engineering"},
				"location": {"Amsterdam"},
			})

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/sections/departments"))

			posts := backend.CallsTo(http.MethodPost)
			Expect(posts).To(HaveLen(1))
			Expect(posts[0].Path).To(Equal("/departments"))
			Expect(posts[0].Body).To(HaveKeyWithValue("name", "Engineering"))

			notices := flashedNotices(w)
			Expect(notices).To(HaveLen(1))
			Expect(notices[0].Message).To(Equal("Department created successfully"))
			Expect(notices[0].Kind).To(Equal(console.NoticeSuccess))
		})

		It("should re-render the project form on a date-order failure without submitting", func() {
			w := postForm("/sections/projects", url.Values{
				"title":       {"Payroll Revamp"},
				"description": {"Rebuild the payroll pipeline"},
				"start_date":  {"2025-01-06"},
				"end_date":    {"2024-12-31"},
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("end_date cannot be earlier than start_date"))
			Expect(w.Body.String()).To(ContainSubstring(`value="Payroll Revamp"`))
			Expect(backend.CallsTo(http.MethodPost)).To(BeEmpty())
		})
	})

	Describe("delete flow", func() {
		It("should confirm first without touching the backend", func() {
			backend.Reset()

			w := get("/sections/employees/1/delete")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Are you sure you want to delete this Employee?"))
			Expect(backend.CallsTo(http.MethodDelete)).To(BeEmpty())
		})

		It("should issue exactly one DELETE and redirect to the reloaded list", func() {
			backend.On("DELETE", "/employees/1", 200, `{"message": "Employee deleted successfully"}`)

			w := postForm("/sections/employees/1/delete", url.Values{})

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/sections/employees"))

			deletes := backend.CallsTo(http.MethodDelete)
			Expect(deletes).To(HaveLen(1))
			Expect(deletes[0].Path).To(Equal("/employees/1"))
		})

		It("should still redirect to the list when the backend reports failure", func() {
			backend.On("DELETE", "/employees/1", 404, `{"error": "Employee not found"}`)

			w := postForm("/sections/employees/1/delete", url.Values{})

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/sections/employees"))

			notices := flashedNotices(w)
			Expect(notices).To(HaveLen(1))
			Expect(notices[0].Kind).To(Equal(console.NoticeError))
		})
	})

	Describe("assignments", func() {
		BeforeEach(func() {
			backend.On("GET", "/employees", 200,
				`[{"id":1,"name":"Anna de Vries","email":"anna@staffdesk.com","projects":[{"id":2,"title":"Payroll Revamp"},{"id":3,"title":"Onboarding Portal"}]},
				  {"id":4,"name":"Mark Jansen","email":"mark@staffdesk.com","projects":[]}]`)
		})

		It("should flatten embedded projects into one row per pairing", func() {
			w := get("/sections/assignments")

			Expect(w.Code).To(Equal(http.StatusOK))
			body := w.Body.String()
			Expect(strings.Count(body, `action="/sections/assignments/remove"`)).To(Equal(2))
			Expect(body).To(ContainSubstring("Anna de Vries"))
			Expect(body).To(ContainSubstring("Payroll Revamp"))
			Expect(body).To(ContainSubstring("Onboarding Portal"))
			Expect(body).NotTo(ContainSubstring("Mark Jansen"))
		})

		It("should assign through POST on the project resource", func() {
			backend.On("POST", "/projects/2/assign", 200,
				`{"message": "Employee anna@staffdesk.com assigned to Payroll Revamp"}`)

			w := postForm("/sections/assignments", url.Values{
				"employee_id": {"1"},
				"project_id":  {"2"},
			})

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			posts := backend.CallsTo(http.MethodPost)
			Expect(posts).To(HaveLen(1))
			Expect(posts[0].Path).To(Equal("/projects/2/assign"))
			Expect(posts[0].Body).To(HaveKeyWithValue("employee_id", 1.0))

			notices := flashedNotices(w)
			Expect(notices[0].Message).To(Equal("Employee anna@staffdesk.com assigned to Payroll Revamp"))
		})

		It("should unassign through POST, never DELETE", func() {
			backend.On("POST", "/projects/2/unassign", 200,
				`{"message": "Employee anna@staffdesk.com unassigned from Payroll Revamp"}`)

			w := postForm("/sections/assignments/remove", url.Values{
				"employee_id": {"1"},
				"project_id":  {"2"},
			})

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(backend.CallsTo(http.MethodDelete)).To(BeEmpty())
			posts := backend.CallsTo(http.MethodPost)
			Expect(posts).To(HaveLen(1))
			Expect(posts[0].Path).To(Equal("/projects/2/unassign"))
		})

		It("should redirect record-style URLs to the assignments page", func() {
			for _, target := range []string{
				"/sections/assignments/1/edit",
				"/sections/assignments/1/delete",
			} {
				w := get(target)

				Expect(w.Code).To(Equal(http.StatusSeeOther), target)
				Expect(w.Header().Get("Location")).To(Equal("/sections/assignments"), target)
			}
		})

		It("should never mutate through the generic record routes", func() {
			backend.Reset()

			update := postForm("/sections/assignments/1", url.Values{"name": {"x"}})
			Expect(update.Code).To(Equal(http.StatusSeeOther))
			Expect(update.Header().Get("Location")).To(Equal("/sections/assignments"))

			remove := postForm("/sections/assignments/1/delete", url.Values{})
			Expect(remove.Code).To(Equal(http.StatusSeeOther))
			Expect(remove.Header().Get("Location")).To(Equal("/sections/assignments"))

			Expect(backend.CallsTo(http.MethodPut)).To(BeEmpty())
			Expect(backend.CallsTo(http.MethodDelete)).To(BeEmpty())
		})

		It("should require both selections", func() {
			w := postForm("/sections/assignments", url.Values{"employee_id": {"1"}})

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(backend.CallsTo(http.MethodPost)).To(BeEmpty())

			notices := flashedNotices(w)
			Expect(notices[0].Message).To(Equal("Please select both employee and project"))
			Expect(notices[0].Kind).To(Equal(console.NoticeError))
		})
	})

	Describe("PDF export", func() {
		It("should stream the roster as a PDF attachment", func() {
			backend.On("GET", "/employees", 200,
				`[{"id":1,"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13","department_id":null,"projects":[]}]`)

			w := get("/sections/employees/export.pdf")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/pdf"))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("employees.pdf"))
			Expect(w.Body.String()).To(HavePrefix("%PDF"))
		})
	})
})
