package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// decodeJSON decodes the request body into dst. An empty body is accepted
// when optional is set.
func decodeJSON(r *http.Request, dst any, optional bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// requestActor fetches the actor or writes a 401.
func requestActor(w http.ResponseWriter, r *http.Request) (leave.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return leave.Actor{}, false
	}
	return actor, true
}

// leaveID parses the {id} URL param or writes a 400.
func leaveID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid leave request id", nil)
		return 0, false
	}
	return id, true
}

func optionalQuery(r *http.Request, key string) *string {
	if !r.URL.Query().Has(key) {
		return nil
	}
	v := r.URL.Query().Get(key)
	return &v
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
