package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Rrens/llm-query-gateway/internal/api/middleware"
	"github.com/Rrens/llm-query-gateway/internal/api/response"
	"github.com/Rrens/llm-query-gateway/internal/apperror"
	"github.com/Rrens/llm-query-gateway/internal/domain"
	"github.com/Rrens/llm-query-gateway/internal/service"
)

// QueryHandler handles query endpoints
type QueryHandler struct {
	queryService *service.QueryService
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queryService *service.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// Submit runs a prompt through the pipeline
func (h *QueryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req domain.QueryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	record, err := h.queryService.Process(r.Context(), user, req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, domain.QueryResult{
		QueryID:  record.ID,
		Response: record.Response,
	})
}

// List returns stored query responses, filtered by the user_id query
// parameter when present
func (h *QueryHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.QueryResponseFilter
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, apperror.Validation("Invalid user_id"))
			return
		}
		filter.UserID = &userID
	}

	records, err := h.queryService.List(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}

	if records == nil {
		records = []domain.QueryResponse{}
	}
	response.OK(w, records)
}

// Get returns one stored query response
func (h *QueryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "responseID")
	if err != nil {
		response.Error(w, err)
		return
	}

	record, err := h.queryService.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, record)
}

func pathID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("Invalid " + param)
	}
	return id, nil
}
