package leave

import (
	"slices"
	"sort"
)

// DeduplicateRequests collapses rows sharing an id. The row with the latest
// AppliedOn wins, document refs from every row are merged, and the result is
// ordered by AppliedOn descending (id descending on ties).
func DeduplicateRequests(rows []LeaveRequest) []LeaveRequest {
	byID := make(map[int64]LeaveRequest, len(rows))
	refs := make(map[int64][]string, len(rows))

	for _, row := range rows {
		for _, ref := range row.DocumentRefs {
			if !slices.Contains(refs[row.ID], ref) {
				refs[row.ID] = append(refs[row.ID], ref)
			}
		}
		current, seen := byID[row.ID]
		if !seen || row.AppliedOn.After(current.AppliedOn) {
			byID[row.ID] = row
		}
	}

	result := make([]LeaveRequest, 0, len(byID))
	for id, req := range byID {
		req.DocumentRefs = refs[id]
		if req.DocumentRefs == nil {
			req.DocumentRefs = []string{}
		}
		if len(req.DocumentRefs) > req.DocumentCount {
			req.DocumentCount = len(req.DocumentRefs)
		}
		result = append(result, req)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].AppliedOn.Equal(result[j].AppliedOn) {
			return result[i].ID > result[j].ID
		}
		return result[i].AppliedOn.After(result[j].AppliedOn)
	})
	return result
}
