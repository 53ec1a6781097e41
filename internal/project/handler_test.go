package project_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/go-chi/chi"

	workforceDatamodel "github.com/staffdesk/workforce-console/internal/core/datamodel/workforce"
	"github.com/staffdesk/workforce-console/internal/project"
	projectPostgres "github.com/staffdesk/workforce-console/internal/project/postgres"
	"github.com/staffdesk/workforce-console/internal/transport"
)

var _ = Describe("Project Handler Integration", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
	)

	doJSON := func(method, target, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, target, nil)
		} else {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&workforceDatamodel.Department{}, &workforceDatamodel.Employee{}, &workforceDatamodel.Project{})
		Expect(err).NotTo(HaveOccurred())

		repo := projectPostgres.NewProjectRepository(db)
		service := project.NewService(repo, slogger)
		handler := project.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		handler.RegisterRoutes(router)
	})

	Describe("POST /projects", func() {
		It("should create a project and return the generated code", func() {
			w := doJSON(http.MethodPost, "/projects",
				`{"title":"Payroll Revamp","description":"Rebuild the payroll pipeline","start_date":"2025-01-06"}`)

			Expect(w.Code).To(Equal(http.StatusCreated))
			body := decode(w)
			Expect(body["message"]).To(Equal("Project created successfully"))
			Expect(body["id"]).To(BeNumerically("==", 1))
			Expect(body["project_code"]).To(MatchRegexp(`^[A-Z0-9]{5}$`))
		})

		It("should reject inverted date ranges", func() {
			w := doJSON(http.MethodPost, "/projects",
				`{"title":"Payroll Revamp","description":"x","start_date":"2025-01-06","end_date":"2024-12-31"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("end_date cannot be earlier than start_date"))
		})
	})

	Describe("assignment operations", func() {
		BeforeEach(func() {
			w := doJSON(http.MethodPost, "/projects",
				`{"title":"Payroll Revamp","description":"Rebuild the payroll pipeline","start_date":"2025-01-06"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))

			emp := &workforceDatamodel.Employee{
				Name:     "Anna de Vries",
				Email:    "anna@staffdesk.com",
				Salary:   72000,
				JoinDate: time.Date(2023, 2, 13, 0, 0, 0, 0, time.UTC),
			}
			Expect(db.Create(emp).Error).To(Succeed())
		})

		It("should assign via POST and report the email-and-title message", func() {
			w := doJSON(http.MethodPost, "/projects/1/assign", `{"employee_id":1}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["message"]).To(Equal("Employee anna@staffdesk.com assigned to Payroll Revamp"))
		})

		It("should report an existing pairing with the message shape at 400", func() {
			first := doJSON(http.MethodPost, "/projects/1/assign", `{"employee_id":1}`)
			Expect(first.Code).To(Equal(http.StatusOK))

			second := doJSON(http.MethodPost, "/projects/1/assign", `{"employee_id":1}`)

			Expect(second.Code).To(Equal(http.StatusBadRequest))
			body := decode(second)
			Expect(body["message"]).To(Equal("Employee already assigned"))
			Expect(body).NotTo(HaveKey("error"))
		})

		It("should unassign via POST, not DELETE", func() {
			assign := doJSON(http.MethodPost, "/projects/1/assign", `{"employee_id":1}`)
			Expect(assign.Code).To(Equal(http.StatusOK))

			w := doJSON(http.MethodPost, "/projects/1/unassign", `{"employee_id":1}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["message"]).To(Equal("Employee anna@staffdesk.com unassigned from Payroll Revamp"))
		})

		It("should report unassigning a missing pairing at 400", func() {
			w := doJSON(http.MethodPost, "/projects/1/unassign", `{"employee_id":1}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["message"]).To(Equal("Employee not assigned"))
		})

		It("should require employee_id", func() {
			w := doJSON(http.MethodPost, "/projects/1/assign", `{}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("employee_id is required"))
		})

		It("should report unknown pairs as 404", func() {
			w := doJSON(http.MethodPost, "/projects/1/assign", `{"employee_id":99}`)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decode(w)["error"]).To(Equal("Invalid employee or project"))
		})
	})

	Describe("PUT /projects/{id}", func() {
		BeforeEach(func() {
			w := doJSON(http.MethodPost, "/projects",
				`{"title":"Payroll Revamp","description":"Rebuild the payroll pipeline","start_date":"2025-01-06"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("should reject an identical payload", func() {
			w := doJSON(http.MethodPut, "/projects/1",
				`{"title":"Payroll Revamp","description":"Rebuild the payroll pipeline","start_date":"2025-01-06"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["message"]).To(Equal("Same information, nothing to update"))
		})

		It("should replace the record when a field changed", func() {
			w := doJSON(http.MethodPut, "/projects/1",
				`{"title":"Payroll Revamp","description":"Rebuild the payroll pipeline","start_date":"2025-01-06","end_date":"2025-06-30"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["message"]).To(Equal("Project updated successfully"))

			get := decode(doJSON(http.MethodGet, "/projects/1", ""))
			Expect(get["end_date"]).To(Equal("2025-06-30"))
		})
	})
})
