package employee

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/staffdesk/workforce-console/internal/transport"
)

type ServiceAPI interface {
	GetAllEmployees() ([]EmployeeResponse, error)
	GetEmployee(id int64) (*EmployeeResponse, error)
	CreateEmployee(dto EmployeeDTO) (int64, error)
	UpdateEmployee(id int64, dto EmployeeDTO) error
	DeleteEmployee(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(er chi.Router) {
		er.Get("/", h.List)
		er.Post("/", h.Create)
		er.Get("/{id}", h.Get)
		er.Put("/{id}", h.Update)
		er.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.GetAllEmployees()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	emp, err := h.Service.GetEmployee(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto EmployeeDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}
	id, err := h.Service.CreateEmployee(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "Employee created successfully", map[string]interface{}{"id": id})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	var dto EmployeeDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}
	if err := h.Service.UpdateEmployee(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Employee updated successfully", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteEmployee(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Employee deleted successfully", nil)
}

func (h *Handler) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "Employee not found")
		return 0, false
	}
	return id, true
}
