package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/linkbrief/linkbrief/internal/store"
	"github.com/linkbrief/linkbrief/internal/summarize"
	"github.com/linkbrief/linkbrief/models"
	mock_provider "github.com/linkbrief/linkbrief/provider/mock"
)

func newTestHandler() (*LinksHandler, *store.Memory) {
	st := store.NewMemory()
	return &LinksHandler{
		Store:    st,
		Pipeline: summarize.NewPipeline(st, nil, mock_provider.New(), nil),
	}, st
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSubmitLink(t *testing.T) {
	t.Parallel()
	e := echo.New()
	h, _ := newTestHandler()

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/urls", `{"url":"https://example.com/my-cool-post"}`)
	c.Set("user_id", "u1")
	if err := h.submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201", rec.Code)
	}
	var link models.Link
	if err := json.Unmarshal(rec.Body.Bytes(), &link); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if link.Status != models.StatusCompleted || link.Title != "My Cool Post" {
		t.Fatalf("unexpected record: %+v", link)
	}
}

func TestSubmitLinkInvalidURL(t *testing.T) {
	t.Parallel()
	e := echo.New()
	h, _ := newTestHandler()

	c, _ := jsonContext(e, http.MethodPost, "/api/v1/urls", `{"url":"not-a-url"}`)
	c.Set("user_id", "u1")
	err := h.submit(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestSubmitLinkBadDate(t *testing.T) {
	t.Parallel()
	e := echo.New()
	h, _ := newTestHandler()

	c, _ := jsonContext(e, http.MethodPost, "/api/v1/urls",
		`{"url":"https://example.com/a","date_accessed":"yesterday"}`)
	c.Set("user_id", "u1")
	err := h.submit(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestListLinksEmpty(t *testing.T) {
	t.Parallel()
	e := echo.New()
	h, _ := newTestHandler()

	c, rec := jsonContext(e, http.MethodGet, "/api/v1/urls", "")
	c.Set("user_id", "u1")
	if err := h.list(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("empty list must serialize as [], got %s", got)
	}
}

func TestGetAndDeleteLink(t *testing.T) {
	t.Parallel()
	e := echo.New()
	h, st := newTestHandler()

	seeded, _ := st.CreateLink(context.Background(), models.Link{UserID: "u1", URL: "https://example.com/a", Status: models.StatusCompleted})

	c, rec := jsonContext(e, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(seeded.ID)
	c.Set("user_id", "u1")
	if err := h.get(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("get code = %d", rec.Code)
	}

	// Another user cannot see or delete it.
	c, _ = jsonContext(e, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(seeded.ID)
	c.Set("user_id", "u2")
	if he, ok := h.get(c).(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Fatalf("foreign get should be 404")
	}

	c, rec = jsonContext(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(seeded.ID)
	c.Set("user_id", "u1")
	if err := h.delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete code = %d, want 204", rec.Code)
	}

	c, _ = jsonContext(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(seeded.ID)
	c.Set("user_id", "u1")
	if he, ok := h.delete(c).(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Fatalf("second delete should be 404")
	}
}
