package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linkbrief/linkbrief/internal/store"
	"github.com/linkbrief/linkbrief/internal/summarize"
	"github.com/linkbrief/linkbrief/models"
)

// LinksHandler serves the authenticated link CRUD surface.
type LinksHandler struct {
	Store    store.LinkStore
	Pipeline *summarize.Pipeline
}

func (h *LinksHandler) Register(g *echo.Group, secret []byte) {
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	g.POST("", h.submit)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
}

// submit accepts a URL, runs the enrichment pipeline synchronously and returns
// the final record. A summarization failure still returns 201: the record
// exists, in the failed state.
func (h *LinksHandler) submit(c echo.Context) error {
	userID := c.Get("user_id").(string)
	var req SubmitLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var accessed time.Time
	if req.DateAccessed != "" {
		t, err := time.Parse(time.RFC3339, req.DateAccessed)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_accessed must be RFC 3339")
		}
		accessed = t
	}

	link, err := h.Pipeline.Ingest(c.Request().Context(), userID, summarize.Request{
		URL:          req.URL,
		Title:        req.Title,
		DateAccessed: accessed,
	})
	if err != nil {
		if errors.Is(err, summarize.ErrInvalidURL) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, link)
}

func (h *LinksHandler) list(c echo.Context) error {
	userID := c.Get("user_id").(string)
	links, err := h.Store.ListLinks(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if links == nil {
		links = []models.Link{}
	}
	return c.JSON(http.StatusOK, links)
}

func (h *LinksHandler) get(c echo.Context) error {
	userID := c.Get("user_id").(string)
	link, err := h.Store.GetLink(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, models.ErrLinkNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "link not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, link)
}

func (h *LinksHandler) delete(c echo.Context) error {
	userID := c.Get("user_id").(string)
	if err := h.Store.DeleteLink(c.Request().Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, models.ErrLinkNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "link not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
