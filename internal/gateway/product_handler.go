package gateway

import (
	"net/http"
	"strconv"

	"github.com/seyman123/dreamshops-client/internal/catalog"
	"github.com/seyman123/dreamshops-client/internal/domain"
)

type ProductHandler struct {
	pipeline *catalog.Pipeline
}

func NewProductHandler(pipeline *catalog.Pipeline) *ProductHandler {
	return &ProductHandler{pipeline: pipeline}
}

type ProductGridResponse struct {
	Products   []domain.Product        `json:"products"`
	Pagination catalog.PaginationState `json:"pagination"`
}

// List drives the product grid: search, category, sort and page come in
// as query parameters; any change of the first three resets to page 0.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))

	err := h.pipeline.Query(
		r.Context(),
		query.Get("search"),
		query.Get("category"),
		catalog.SortKey(query.Get("sort")),
		page,
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ProductGridResponse{
		Products:   h.pipeline.Products(),
		Pagination: h.pipeline.State(),
	})
}
