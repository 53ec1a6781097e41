package department

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/staffdesk/workforce-console/internal/transport"
)

type ServiceAPI interface {
	GetAllDepartments() ([]DepartmentResponse, error)
	GetDepartment(id int64) (*DepartmentResponse, error)
	CreateDepartment(dto DepartmentDTO) (int64, string, error)
	UpdateDepartment(id int64, dto DepartmentDTO) error
	DeleteDepartment(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(dr chi.Router) {
		dr.Get("/", h.List)
		dr.Post("/", h.Create)
		dr.Get("/{id}", h.Get)
		dr.Put("/{id}", h.Update)
		dr.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.GetAllDepartments()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, departments)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	dept, err := h.Service.GetDepartment(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto DepartmentDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}
	id, code, err := h.Service.CreateDepartment(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "Department created successfully", map[string]interface{}{
		"id":        id,
		"dept_code": code,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	var dto DepartmentDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}
	if err := h.Service.UpdateDepartment(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Department updated successfully", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteDepartment(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Department deleted successfully", nil)
}

func (h *Handler) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "Department not found")
		return 0, false
	}
	return id, true
}
