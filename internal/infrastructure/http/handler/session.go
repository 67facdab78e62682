package handler

import (
	"net/http"

	"github.com/mrops-br/catalog-viewer/internal/domain"
)

// SessionCookieName is the cookie carrying the view session id.
// It has no expiry, so the browser drops it when it closes.
const SessionCookieName = "catalog_session"

func setSessionCookie(w http.ResponseWriter, id string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// currentSession returns the live session named by the request cookie, or ErrSessionNotFound
func (h *CatalogHandler) currentSession(r *http.Request) (*domain.Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, domain.ErrSessionNotFound
	}
	return h.service.Session(r.Context(), cookie.Value)
}

// sessionOrMount returns the current session, mounting a new list view when there is none
func (h *CatalogHandler) sessionOrMount(w http.ResponseWriter, r *http.Request) (*domain.Session, error) {
	if session, err := h.currentSession(r); err == nil {
		return session, nil
	}

	session, err := h.service.Mount(r.Context())
	if err != nil {
		return nil, err
	}
	setSessionCookie(w, session.ID, h.secureCookie)
	return session, nil
}
