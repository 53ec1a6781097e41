package employee_test

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
	"github.com/staffdesk/workforce-console/internal/employee"
	employeePostgres "github.com/staffdesk/workforce-console/internal/employee/postgres"
	"github.com/staffdesk/workforce-console/internal/transport"
)

var _ = Describe("Employee Handler Integration", func() {
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
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&workforceDatamodel.Department{}, &workforceDatamodel.Employee{}, &workforceDatamodel.Project{})
		Expect(err).NotTo(HaveOccurred())

		repo := employeePostgres.NewEmployeeRepository(db)
		service := employee.NewService(repo, slogger)
		handler := employee.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		handler.RegisterRoutes(router)
	})

	Describe("POST /employees", func() {
		It("should create an employee and return its id", func() {
			w := doJSON(http.MethodPost, "/employees",
				`{"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13"}`)

			Expect(w.Code).To(Equal(http.StatusCreated))
			body := decode(w)
			Expect(body["message"]).To(Equal("Employee created successfully"))
			Expect(body["id"]).To(BeNumerically("==", 1))
		})

		It("should report validation failures in the error field", func() {
			w := doJSON(http.MethodPost, "/employees",
				`{"name":"Anna 2","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("Invalid name. Name should contain only Alphabets"))
		})

		It("should reject a duplicate email", func() {
			first := doJSON(http.MethodPost, "/employees",
				`{"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13"}`)
			Expect(first.Code).To(Equal(http.StatusCreated))

			second := doJSON(http.MethodPost, "/employees",
				`{"name":"Other Anna","email":"anna@staffdesk.com","salary":50000,"join_date":"2024-01-02"}`)

			Expect(second.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(second)["error"]).To(Equal("Email already exists"))
		})

		It("should reject a non-JSON body", func() {
			w := doJSON(http.MethodPost, "/employees", "name=Anna")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("Request body must be JSON"))
		})
	})

	Describe("GET /employees", func() {
		It("should return an empty array when no employees exist", func() {
			w := doJSON(http.MethodGet, "/employees", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(strings.TrimSpace(w.Body.String())).To(Equal("[]"))
		})

		It("should embed assigned projects in each row", func() {
			w := doJSON(http.MethodPost, "/employees",
				`{"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))

			proj := &workforceDatamodel.Project{
				Title:       "Payroll Revamp",
				Description: "Rebuild the payroll pipeline",
				StartDate:   time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
				ProjectCode: "PAY01",
			}
			Expect(db.Create(proj).Error).To(Succeed())
			emp := workforceDatamodel.Employee{ID: 1}
			Expect(db.Model(&emp).Association("Projects").Append(proj)).To(Succeed())

			list := doJSON(http.MethodGet, "/employees", "")
			Expect(list.Code).To(Equal(http.StatusOK))

			var rows []map[string]interface{}
			Expect(json.NewDecoder(list.Body).Decode(&rows)).To(Succeed())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0]["join_date"]).To(Equal("2023-02-13"))

			projects, ok := rows[0]["projects"].([]interface{})
			Expect(ok).To(BeTrue())
			Expect(projects).To(HaveLen(1))
			Expect(projects[0].(map[string]interface{})["title"]).To(Equal("Payroll Revamp"))
		})
	})

	Describe("GET /employees/{id}", func() {
		It("should return a single record without the projects key", func() {
			w := doJSON(http.MethodPost, "/employees",
				`{"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))

			get := doJSON(http.MethodGet, "/employees/1", "")
			Expect(get.Code).To(Equal(http.StatusOK))

			body := decode(get)
			Expect(body["email"]).To(Equal("anna@staffdesk.com"))
			Expect(body).NotTo(HaveKey("projects"))
		})

		It("should return 404 for unknown ids", func() {
			w := doJSON(http.MethodGet, "/employees/42", "")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decode(w)["error"]).To(Equal("Employee not found"))
		})

		It("should return 404 for a non-numeric id", func() {
			w := doJSON(http.MethodGet, "/employees/abc", "")

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("PUT /employees/{id}", func() {
		BeforeEach(func() {
			w := doJSON(http.MethodPost, "/employees",
				`{"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("should reject an identical payload with the notice message shape", func() {
			w := doJSON(http.MethodPut, "/employees/1",
				`{"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			body := decode(w)
			Expect(body["message"]).To(Equal("Same information, nothing to update"))
			Expect(body).NotTo(HaveKey("error"))
		})

		It("should replace the record when a field changed", func() {
			w := doJSON(http.MethodPut, "/employees/1",
				`{"name":"Anna de Vries","email":"anna@staffdesk.com","salary":75000,"join_date":"2023-02-13"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["message"]).To(Equal("Employee updated successfully"))

			get := decode(doJSON(http.MethodGet, "/employees/1", ""))
			Expect(get["salary"]).To(BeNumerically("==", 75000))
		})
	})

	Describe("DELETE /employees/{id}", func() {
		It("should delete and report success", func() {
			w := doJSON(http.MethodPost, "/employees",
				`{"name":"Anna de Vries","email":"anna@staffdesk.com","salary":72000,"join_date":"2023-02-13"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))

			del := doJSON(http.MethodDelete, "/employees/1", "")
			Expect(del.Code).To(Equal(http.StatusOK))
			Expect(decode(del)["message"]).To(Equal("Employee deleted successfully"))

			get := doJSON(http.MethodGet, "/employees/1", "")
			Expect(get.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 404 when the employee does not exist", func() {
			w := doJSON(http.MethodDelete, "/employees/42", "")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decode(w)["error"]).To(Equal("Employee not found"))
		})
	})
})
