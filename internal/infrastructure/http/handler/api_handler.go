package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/catalog-viewer/internal/app/dto"
	"github.com/mrops-br/catalog-viewer/internal/app/service"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/http/response"
)

// APIHandler serves the stateless JSON rendition of the catalog
type APIHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(svc *service.CatalogService, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/products
func (h *APIHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	criteria, err := parseCriteria(query)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	page, err := parsePage(query.Get("page"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	listing, err := h.service.Browse(r.Context(), criteria, page)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, listing)
}

// GetProduct handles GET /api/products/{id}
func (h *APIHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	state, err := h.service.GetProduct(r.Context(), id)
	status := http.StatusOK
	if err != nil {
		status = response.StatusFor(err)
		h.logger.DebugContext(r.Context(), "Product detail failed",
			slog.String("product_id", id),
			slog.Int("status", status),
		)
	}

	response.JSON(w, status, dto.ToDetailResponse(state))
}
