package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
)

type leaveRequestRepository struct {
	s *Store
}

func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	err := r.s.run(ctx, func() error {
		if _, ok := r.s.employees[request.EmployeeID]; !ok {
			return employee.ErrEmployeeNotFound
		}
		r.s.nextRequestID++
		request.ID = r.s.nextRequestID
		request.UpdatedAt = request.AppliedOn
		request.DocumentRefs = []string{}
		request.DocumentCount = 0
		request.EmployeeName = nil
		r.s.requests[request.ID] = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := r.s.run(ctx, func() error {
		found, ok := r.s.requests[id]
		if !ok {
			return leave.ErrLeaveRequestNotFound
		}
		lr = r.withRelations(found)
		return nil
	})
	return lr, err
}

func (r *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

// List returns one row per attached document, matching the SQL join.
func (r *leaveRequestRepository) List(ctx context.Context, filter leave.ResolvedFilter) ([]leave.LeaveRequest, error) {
	var rows []leave.LeaveRequest
	err := r.s.run(ctx, func() error {
		for _, lr := range r.s.requests {
			if filter.EmployeeID != nil && lr.EmployeeID != *filter.EmployeeID {
				continue
			}
			if filter.Status != nil && lr.Status != *filter.Status {
				continue
			}
			if filter.LeaveType != nil && lr.Type != *filter.LeaveType {
				continue
			}
			lr = r.withRelations(lr)
			docs := r.s.documents[lr.ID]
			if len(docs) == 0 {
				lr.DocumentRefs = nil
				rows = append(rows, lr)
				continue
			}
			for _, d := range docs {
				row := lr
				row.DocumentRefs = []string{d.Path}
				rows = append(rows, row)
			}
		}
		return nil
	})
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AppliedOn.Equal(rows[j].AppliedOn) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].AppliedOn.After(rows[j].AppliedOn)
	})
	return rows, err
}

func (r *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) error {
	return r.s.run(ctx, func() error {
		stored, ok := r.s.requests[request.ID]
		if !ok {
			return leave.ErrLeaveRequestNotFound
		}
		stored.Status = request.Status
		stored.CancelRequestStatus = request.CancelRequestStatus
		stored.CancelReason = request.CancelReason
		stored.Remarks = request.Remarks
		stored.ApprovedDate = request.ApprovedDate
		stored.ApprovedBy = request.ApprovedBy
		stored.RejectedDate = request.RejectedDate
		stored.RejectedBy = request.RejectedBy
		stored.CancelledDate = request.CancelledDate
		stored.CancelledBy = request.CancelledBy
		stored.UpdatedAt = request.UpdatedAt
		r.s.requests[request.ID] = stored
		return nil
	})
}

// withRelations fills the joined fields. Callers hold the store lock.
func (r *leaveRequestRepository) withRelations(lr leave.LeaveRequest) leave.LeaveRequest {
	if e, ok := r.s.employees[lr.EmployeeID]; ok {
		name := e.Name
		lr.EmployeeName = &name
	}
	docs := r.s.documents[lr.ID]
	refs := make([]string, 0, len(docs))
	for _, d := range docs {
		refs = append(refs, d.Path)
	}
	lr.DocumentRefs = refs
	lr.DocumentCount = len(docs)
	return lr
}
