package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"acme-hr-api/internal/apperror"
	"acme-hr-api/internal/service"
)

const internalErrorMessage = "Internal Server Error"

type Handler struct {
	service service.Directory
	logger  zerolog.Logger
}

func NewHandler(svc service.Directory, logger zerolog.Logger) *Handler {
	return &Handler{
		service: svc,
		logger:  logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] == "employees":
		switch r.Method {
		case http.MethodGet:
			h.handleListEmployees(w, r)
		case http.MethodPost:
			h.handleCreateEmployee(w, r)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return

	case len(parts) == 2 && parts[0] == "employees":
		employeeID, err := parseUintID(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid employee id")
			return
		}

		switch r.Method {
		case http.MethodPut:
			h.handleUpdateEmployee(w, r, employeeID)
		case http.MethodDelete:
			h.handleDeleteEmployee(w, r, employeeID)
		default:
			writeMethodNotAllowed(w, http.MethodPut, http.MethodDelete)
		}
		return

	case len(parts) == 1 && parts[0] == "departments":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w, http.MethodGet)
			return
		}
		h.handleListDepartments(w, r)
		return

	case len(parts) == 2 && parts[0] == "departments":
		if r.Method != http.MethodDelete {
			writeMethodNotAllowed(w, http.MethodDelete)
			return
		}

		departmentID, err := parseUintID(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid department id")
			return
		}
		h.handleDeleteDepartment(w, r, departmentID)
		return
	}

	writeError(w, http.StatusNotFound, "route not found")
}

type employeeRequest struct {
	Name         string `json:"name"`
	DepartmentID *uint  `json:"department_id"`
}

func (req employeeRequest) input() service.EmployeeInput {
	return service.EmployeeInput{
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
	}
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.ListDepartments(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, departments)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	employee, err := h.service.CreateEmployee(r.Context(), req.input())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request, employeeID uint) {
	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	employee, err := h.service.UpdateEmployee(r.Context(), employeeID, req.input())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request, employeeID uint) {
	if err := h.service.DeleteEmployee(r.Context(), employeeID); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request, departmentID uint) {
	if err := h.service.DeleteDepartment(r.Context(), departmentID); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondWithError maps not-found to 404. Anything else is a 500 whose detail
// only reaches the log.
func (h *Handler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperror.GetCode(err)
	if code == apperror.CodeNotFound {
		writeError(w, http.StatusNotFound, apperror.GetMessage(err))
		return
	}

	h.logger.Error().
		Err(err).
		Str("code", string(code)).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", requestIDFrom(r.Context())).
		Msg("request failed")
	writeError(w, http.StatusInternalServerError, internalErrorMessage)
}

// NewHealthHandler reports 200 while the store answers a ping.
func NewHealthHandler(svc service.Directory, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ping(r.Context()); err != nil {
			logger.Warn().Err(err).Msg("healthcheck failed")
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// decodeJSON treats a missing or empty body as {}. Anything that is not a
// single JSON value matching target is an error.
func decodeJSON(r *http.Request, target interface{}) error {
	if r.Body == nil {
		return nil
	}

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode request body: %w", err)
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return errors.New("decode request body: trailing data after JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"message": message,
	})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func parseUintID(raw string) (uint, error) {
	id64, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id64 == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id64), nil
}
