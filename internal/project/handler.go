package project

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/staffdesk/workforce-console/internal/transport"
)

type ServiceAPI interface {
	GetAllProjects() ([]ProjectResponse, error)
	GetProject(id int64) (*ProjectResponse, error)
	CreateProject(dto ProjectDTO) (int64, string, error)
	UpdateProject(id int64, dto ProjectDTO) error
	DeleteProject(id int64) error
	AssignEmployee(projectID, employeeID int64) (string, error)
	UnassignEmployee(projectID, employeeID int64) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/projects", func(pr chi.Router) {
		pr.Get("/", h.List)
		pr.Post("/", h.Create)
		pr.Get("/{id}", h.Get)
		pr.Put("/{id}", h.Update)
		pr.Delete("/{id}", h.Delete)

		// assignment is mutated with POSTs, never DELETE
		pr.Post("/{id}/assign", h.Assign)
		pr.Post("/{id}/unassign", h.Unassign)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.GetAllProjects()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, projects)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	proj, err := h.Service.GetProject(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, proj)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto ProjectDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}
	id, code, err := h.Service.CreateProject(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "Project created successfully", map[string]interface{}{
		"id":           id,
		"project_code": code,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	var dto ProjectDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}
	if err := h.Service.UpdateProject(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Project updated successfully", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteProject(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Project deleted successfully", nil)
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	h.mutateAssignment(w, r, h.Service.AssignEmployee)
}

func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	h.mutateAssignment(w, r, h.Service.UnassignEmployee)
}

func (h *Handler) mutateAssignment(w http.ResponseWriter, r *http.Request, op func(projectID, employeeID int64) (string, error)) {
	projectID, ok := h.recordID(w, r)
	if !ok {
		return
	}
	var dto AssignmentDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}
	if dto.EmployeeID == 0 {
		h.WriteError(w, http.StatusBadRequest, "employee_id is required")
		return
	}
	message, err := op(projectID, dto.EmployeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, message, nil)
}

func (h *Handler) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "Project not found")
		return 0, false
	}
	return id, true
}
