package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/linkbrief/linkbrief/internal/store"
	"github.com/linkbrief/linkbrief/internal/summarize"
	"github.com/linkbrief/linkbrief/models"
)

// IngestHandler is the webhook used by the iOS Shortcut: a per-user ingest key
// in the Authorization header and a bare {url} body. The key is resolved
// through the store's key index; an unknown key is a 401, never a fallback
// identity.
type IngestHandler struct {
	Store    store.Store
	Pipeline *summarize.Pipeline
}

func (h *IngestHandler) Register(g *echo.Group) {
	g.POST("", h.ingest)
}

func (h *IngestHandler) ingest(c echo.Context) error {
	key := ingestKeyFromHeader(c.Request().Header.Get("Authorization"))
	if key == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "authorization header missing")
	}
	userID, err := h.Store.UserByIngestKey(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown ingest key")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req IngestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	link, err := h.Pipeline.Ingest(c.Request().Context(), userID, summarize.Request{URL: req.URL})
	if err != nil {
		if errors.Is(err, summarize.ErrInvalidURL) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, link)
}

// ingestKeyFromHeader accepts both "Bearer KEY" and a bare key, the two forms
// shortcuts send in the wild.
func ingestKeyFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return header
}
