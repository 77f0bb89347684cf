package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
)

type stubCollection[T any] struct {
	rows      []T
	listErr   error
	reloadErr error
	result    ports.WriteResult[T]
	queries   []ports.Query
	writes    []ports.Write[T]
	reloads   int
}

func (s *stubCollection[T]) Name() string { return "stub" }

func (s *stubCollection[T]) List(_ context.Context, q ports.Query) ([]T, error) {
	s.queries = append(s.queries, q)
	return s.rows, s.listErr
}

func (s *stubCollection[T]) Submit(_ context.Context, w ports.Write[T]) ports.WriteResult[T] {
	s.writes = append(s.writes, w)
	return s.result
}

func (s *stubCollection[T]) Reload(context.Context) ([]T, error) {
	s.reloads++
	return s.rows, s.reloadErr
}

var animalOpts = ListOptions{
	Filters: []string{"status", "species"},
	Sorts:   []string{"name"},
}

func TestCollectionHandler_ListAppliesWhitelistedQuery(t *testing.T) {
	e := newTestEcho()
	svc := &stubCollection[domain.Animal]{rows: []domain.Animal{{Name: "Clover"}}}
	h := NewCollectionHandler[domain.Animal](svc, animalOpts)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet,
		"/v1/animals?status=available&owner=eve&sort=name&desc=true&limit=5000", nil), rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	q := svc.queries[0]
	if q.Eq["status"] != "available" || len(q.Eq) != 1 {
		t.Fatalf("expected only the whitelisted filter, got %+v", q.Eq)
	}
	if q.SortBy != "name" || !q.Desc || q.Limit != maxListLimit {
		t.Fatalf("unexpected query: %+v", q)
	}
}

func TestCollectionHandler_ListRejectsUnknownSort(t *testing.T) {
	e := newTestEcho()
	svc := &stubCollection[domain.Animal]{}
	h := NewCollectionHandler[domain.Animal](svc, animalOpts)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/animals?sort=password", nil), httptest.NewRecorder())

	if err := h.List(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(svc.queries) != 0 {
		t.Fatalf("store must not be queried")
	}
}

func TestCollectionHandler_ListBoolFilter(t *testing.T) {
	e := newTestEcho()
	svc := &stubCollection[domain.ContentPanel]{}
	h := NewCollectionHandler[domain.ContentPanel](svc, ListOptions{BoolFilters: []string{"published"}})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/content?published=false", nil), httptest.NewRecorder())
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if v, ok := svc.queries[0].Eq["published"].(bool); !ok || v {
		t.Fatalf("expected published=false, got %+v", svc.queries[0].Eq)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/content?published=maybe", nil), httptest.NewRecorder())
	if err := h.List(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCollectionHandler_ListFailureSurfaces(t *testing.T) {
	e := newTestEcho()
	storeErr := domain.NewStoreError("select", "animals", errors.New("connection reset"))
	svc := &stubCollection[domain.Animal]{listErr: storeErr}
	h := NewCollectionHandler[domain.Animal](svc, animalOpts)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/animals", nil), httptest.NewRecorder())
	if err := h.List(c); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestCollectionHandler_CreateValidatesBeforeSubmit(t *testing.T) {
	e := newTestEcho()
	svc := &stubCollection[domain.Animal]{}
	h := NewCollectionHandler[domain.Animal](svc, animalOpts)

	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/animals", `{"name":"","species":"rabbit"}`), httptest.NewRecorder())

	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(svc.writes) != 0 || svc.reloads != 0 {
		t.Fatalf("no write or reload may happen on invalid input")
	}
}

func TestCollectionHandler_CreateRejectsNegativeQuantity(t *testing.T) {
	e := newTestEcho()
	svc := &stubCollection[domain.InventoryItem]{}
	h := NewCollectionHandler[domain.InventoryItem](svc, ListOptions{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/inventory",
		`{"name":"Hay","category":"feed","quantity":"-1","unit":"bale","low_stock_threshold":"5","unit_cost":"3"}`), httptest.NewRecorder())

	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCollectionHandler_CreateThenReload(t *testing.T) {
	e := newTestEcho()
	stored := domain.Animal{RowMeta: domain.RowMeta{ID: "a2"}, Name: "Thumper"}
	svc := &stubCollection[domain.Animal]{
		rows:   []domain.Animal{{Name: "Clover"}, stored},
		result: ports.WriteResult[domain.Animal]{OK: true, Row: stored},
	}
	h := NewCollectionHandler[domain.Animal](svc, animalOpts)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/animals",
		`{"name":"Thumper","species":"rabbit","gender":"male","status":"available","price":"25.00"}`), rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	w := svc.writes[0]
	if w.Kind != ports.WriteCreate || !w.Row.Price.Equal(decimal.RequireFromString("25")) {
		t.Fatalf("unexpected write: %+v", w)
	}
	if svc.reloads != 1 {
		t.Fatalf("expected exactly one reload, got %d", svc.reloads)
	}

	var resp writeResponse[domain.Animal]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Row == nil || resp.Row.ID != "a2" || len(resp.Rows) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCollectionHandler_FailedWriteDoesNotReload(t *testing.T) {
	e := newTestEcho()
	writeErr := domain.NewStoreError("update", "animals", errors.New("write conflict"))
	svc := &stubCollection[domain.Animal]{result: ports.WriteResult[domain.Animal]{Err: writeErr}}
	h := NewCollectionHandler[domain.Animal](svc, animalOpts)

	c := e.NewContext(jsonRequest(http.MethodPut, "/v1/animals/a1",
		`{"name":"Clover","species":"rabbit","gender":"female","status":"sold"}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Update(c); !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
	if svc.writes[0].ID != "a1" {
		t.Fatalf("expected id from path, got %q", svc.writes[0].ID)
	}
	if svc.reloads != 0 {
		t.Fatalf("a failed write must not reload")
	}
}

func TestCollectionHandler_DeleteReloadFailureIsReported(t *testing.T) {
	e := newTestEcho()
	svc := &stubCollection[domain.Animal]{
		result:    ports.WriteResult[domain.Animal]{OK: true},
		reloadErr: errors.New("timeout"),
	}
	h := NewCollectionHandler[domain.Animal](svc, animalOpts)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/v1/animals/a1", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp writeResponse[domain.Animal]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Row != nil || resp.ReloadError != "timeout" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
