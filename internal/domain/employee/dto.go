package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	ID          string    `json:"employee_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Balances    *Balances `json:"balances,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidEmployeeID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be 1-64 characters of letters, digits, '.', '_' or '-'",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(r.Designation) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "designation",
			Message: "designation must not exceed 255 characters",
		})
	}

	if r.AvatarURL != nil && !validator.IsValidURL(*r.AvatarURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "avatar_url",
			Message: "avatar_url must be a valid http(s) URL",
		})
	}

	if r.Balances != nil {
		errs = append(errs, validateNonNegative(*r.Balances, "balances")...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest is an explicit partial update: nil fields are left untouched.
type UpdateEmployeeRequest struct {
	Email       *string `json:"email,omitempty"`
	Name        *string `json:"name,omitempty"`
	Designation *string `json:"designation,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.IsEmpty() {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		} else if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 255 characters",
			})
		}
	}
	if r.Designation != nil && len(*r.Designation) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "designation",
			Message: "designation must not exceed 255 characters",
		})
	}
	if r.AvatarURL != nil && *r.AvatarURL != "" && !validator.IsValidURL(*r.AvatarURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "avatar_url",
			Message: "avatar_url must be a valid http(s) URL",
		})
	}
	if r.Status != nil && !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateEmployeeRequest) IsEmpty() bool {
	return r.Email == nil && r.Name == nil && r.Designation == nil && r.AvatarURL == nil && r.Status == nil
}

// Apply copies the provided fields onto e. An empty avatar_url clears it.
func (r *UpdateEmployeeRequest) Apply(e *Employee) {
	if r.Email != nil {
		e.Email = strings.TrimSpace(*r.Email)
	}
	if r.Name != nil {
		e.Name = strings.TrimSpace(*r.Name)
	}
	if r.Designation != nil {
		e.Designation = strings.TrimSpace(*r.Designation)
	}
	if r.AvatarURL != nil {
		if *r.AvatarURL == "" {
			e.AvatarURL = nil
		} else {
			avatar := *r.AvatarURL
			e.AvatarURL = &avatar
		}
	}
	if r.Status != nil {
		e.Status = *r.Status
	}
}

// AdjustBalancesRequest overwrites the given balance columns. Negative values are allowed.
type AdjustBalancesRequest struct {
	Casual            *int   `json:"casual,omitempty"`
	Earned            *int   `json:"earned,omitempty"`
	RestrictedHoliday *int   `json:"restricted_holiday,omitempty"`
	Note              string `json:"note"`
}

func (r *AdjustBalancesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Casual == nil && r.Earned == nil && r.RestrictedHoliday == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "balances",
			Message: "at least one of casual, earned, restricted_holiday is required",
		})
	}
	if len(r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Targets returns the requested value per column, in a stable column order.
func (r *AdjustBalancesRequest) Targets() []BalanceTarget {
	var targets []BalanceTarget
	if r.Casual != nil {
		targets = append(targets, BalanceTarget{Column: BalanceCasual, Value: *r.Casual})
	}
	if r.Earned != nil {
		targets = append(targets, BalanceTarget{Column: BalanceEarned, Value: *r.Earned})
	}
	if r.RestrictedHoliday != nil {
		targets = append(targets, BalanceTarget{Column: BalanceRestrictedHoliday, Value: *r.RestrictedHoliday})
	}
	return targets
}

type BalanceTarget struct {
	Column BalanceColumn
	Value  int
}

type LedgerFilter struct {
	LeaveType *string `json:"leave_type,omitempty"`
	Limit     int     `json:"limit"`
}

func (f *LedgerFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.LeaveType != nil {
		if _, ok := BalanceColumn(*f.LeaveType).SQLColumn(); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type",
				Message: "leave_type must be one of: casual, earned, restricted_holiday",
			})
		}
	}
	if f.Limit < 0 || f.Limit > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 500",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID          string    `json:"employee_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	AvatarURL   *string   `json:"avatar_url"`
	Status      Status    `json:"status"`
	Balances    Balances  `json:"balances"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Email:       e.Email,
		Name:        e.Name,
		Designation: e.Designation,
		AvatarURL:   e.AvatarURL,
		Status:      e.Status,
		Balances:    e.Balances,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type LedgerEntryResponse struct {
	ID             int64           `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	LeaveType      BalanceColumn   `json:"leave_type"`
	LeaveRequestID *int64          `json:"leave_request_id"`
	Kind           LedgerEntryKind `json:"kind"`
	Delta          int             `json:"delta"`
	BalanceAfter   int             `json:"balance_after"`
	ActorID        string          `json:"actor_id"`
	Note           string          `json:"note"`
	CreatedAt      time.Time       `json:"created_at"`
}

func NewLedgerEntryResponse(e LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		LeaveType:      e.Column,
		LeaveRequestID: e.LeaveRequestID,
		Kind:           e.Kind,
		Delta:          e.Delta,
		BalanceAfter:   e.BalanceAfter,
		ActorID:        e.ActorID,
		Note:           e.Note,
		CreatedAt:      e.CreatedAt,
	}
}

func validateNonNegative(b Balances, field string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, column := range AllBalanceColumns() {
		value, _ := b.Get(column)
		if value < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field + "." + string(column),
				Message: string(column) + " must not be negative",
			})
		}
	}
	return errs
}
