package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/catalog-viewer/internal/app/dto"
	"github.com/mrops-br/catalog-viewer/internal/app/service"
	"github.com/mrops-br/catalog-viewer/internal/domain"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/export"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/http/response"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/http/views"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CatalogHandler serves the server-rendered list view and detail view
type CatalogHandler struct {
	service      *service.CatalogService
	renderer     *views.Renderer
	logger       *slog.Logger
	secureCookie bool
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	svc *service.CatalogService,
	renderer *views.Renderer,
	logger *slog.Logger,
	secureCookie bool,
) *CatalogHandler {
	return &CatalogHandler{
		service:      svc,
		renderer:     renderer,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

// Dashboard handles GET / and GET /?page=N
func (h *CatalogHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionOrMount(w, r)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "Unable to open the catalog")
		return
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := parsePage(raw)
		if err == nil {
			err = h.service.GoToPage(r.Context(), session, page)
		}
		if err != nil {
			h.renderError(w, r, response.StatusFor(err), err.Error())
			return
		}
	}

	h.render(w, r, http.StatusOK, "dashboard", map[string]any{
		"Title":     "Products",
		"MaxPrice":  domain.DefaultMaxPrice,
		"Dashboard": h.service.Dashboard(r.Context(), session),
	})
}

// ApplyFilters handles POST /filters
func (h *CatalogHandler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	criteria, err := parseCriteria(r.PostForm)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.sessionOrMount(w, r)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "Unable to open the catalog")
		return
	}

	if err := h.service.ApplyCriteria(r.Context(), session, criteria); err != nil {
		h.renderError(w, r, response.StatusFor(err), err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AddToCart handles POST /cart
func (h *CatalogHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	session, err := h.currentSession(r)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := h.service.AddToCart(r.Context(), session, r.PostForm.Get("product_id")); err != nil {
		h.renderError(w, r, response.StatusFor(err), "Product not found")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ExportCart handles GET /cart/export.xlsx
func (h *CatalogHandler) ExportCart(w http.ResponseWriter, r *http.Request) {
	var items []domain.Product
	if session, err := h.currentSession(r); err == nil {
		items = h.service.Cart(session)
	}

	var buf bytes.Buffer
	if err := export.WriteCart(&buf, items); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to export cart",
			slog.String("error", err.Error()),
		)
		h.renderError(w, r, http.StatusInternalServerError, "Unable to export the cart")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="cart.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// ProductDetail handles GET /product/{id}
func (h *CatalogHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		state domain.DetailState
		err   error
	)
	if session, serr := h.currentSession(r); serr == nil {
		state, err = h.service.OpenDetail(r.Context(), session, id)
	} else {
		state, err = h.service.GetProduct(r.Context(), id)
	}

	status := http.StatusOK
	if err != nil {
		status = response.StatusFor(err)
	}

	title := "Product"
	if state.Product != nil {
		title = state.Product.Title
	}

	h.render(w, r, status, "detail", map[string]any{
		"Title":  title,
		"Detail": dto.ToDetailResponse(state),
	})
}

// Reset handles POST /reset, dropping the session so the next view refetches
func (h *CatalogHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.service.Unmount(r.Context(), cookie.Value); err != nil {
			h.logger.WarnContext(r.Context(), "Failed to unmount session",
				slog.String("error", err.Error()),
			)
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *CatalogHandler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "error", map[string]any{
		"Title":   "Error",
		"Message": message,
	})
}

func (h *CatalogHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if err := h.renderer.Render(w, status, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render page",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
