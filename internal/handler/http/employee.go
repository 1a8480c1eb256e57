package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	AdjustBalances(w http.ResponseWriter, r *http.Request)
	ListLedger(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// ownEmployeeID reads {id} and lets employees see only their own record.
func ownEmployeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	actor, ok := requestActor(w, r)
	if !ok {
		return "", false
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return "", false
	}
	if !actor.IsAdmin && actor.ID != id {
		response.HandleError(w, leave.ErrAdminOnly)
		return "", false
	}
	return id, true
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := decodeJSON(r, &req, false); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", res)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ownEmployeeID(w, r)
	if !ok {
		return
	}

	res, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// Update implements EmployeeHandler.
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req employee.UpdateEmployeeRequest
	if err := decodeJSON(r, &req, false); err != nil {
		slog.Error("UpdateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.employeeService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", res)
}

// AdjustBalances implements EmployeeHandler.
func (h *employeeHandlerImpl) AdjustBalances(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req employee.AdjustBalancesRequest
	if err := decodeJSON(r, &req, false); err != nil {
		slog.Error("AdjustBalances decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.employeeService.AdjustBalances(r.Context(), id, actor.ID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Balances adjusted successfully", res)
}

// ListLedger implements EmployeeHandler.
func (h *employeeHandlerImpl) ListLedger(w http.ResponseWriter, r *http.Request) {
	id, ok := ownEmployeeID(w, r)
	if !ok {
		return
	}

	filter := employee.LedgerFilter{
		LeaveType: optionalQuery(r, "leave_type"),
		Limit:     getIntQueryParam(r, "limit", 0),
	}

	res, err := h.employeeService.ListLedger(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, res, &response.Meta{Limit: filter.Limit, TotalItems: len(res)})
}
