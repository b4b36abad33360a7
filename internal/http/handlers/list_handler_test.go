package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-lists-backend/internal/domain"
)

// ---------- flexible service stub ----------

type stubListSvc struct {
	all        func(context.Context) ([]domain.List, error)
	get        func(context.Context, int64) (*domain.List, error)
	create     func(context.Context, string) error
	items      func(context.Context, int64) ([]domain.ListItem, error)
	addItem    func(context.Context, int64, string) error
	removeItem func(context.Context, int64, int64) error
}

func (s stubListSvc) All(ctx context.Context) ([]domain.List, error) {
	if s.all != nil {
		return s.all(ctx)
	}
	return []domain.List{}, nil
}

func (s stubListSvc) Get(ctx context.Context, id int64) (*domain.List, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.List{ID: id}, nil
}

func (s stubListSvc) Create(ctx context.Context, name string) error {
	if s.create != nil {
		return s.create(ctx, name)
	}
	return nil
}

func (s stubListSvc) Items(ctx context.Context, id int64) ([]domain.ListItem, error) {
	if s.items != nil {
		return s.items(ctx, id)
	}
	return []domain.ListItem{}, nil
}

func (s stubListSvc) AddItem(ctx context.Context, id int64, name string) error {
	if s.addItem != nil {
		return s.addItem(ctx, id, name)
	}
	return nil
}

func (s stubListSvc) RemoveItem(ctx context.Context, listID, itemID int64) error {
	if s.removeItem != nil {
		return s.removeItem(ctx, listID, itemID)
	}
	return nil
}

func newRouter(svc ListService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(svc)
	r.GET("/lists", h.GetAllLists)
	r.POST("/lists", h.CreateList)
	r.GET("/lists/:id", h.GetList)
	r.GET("/list/:id", h.GetListItems)
	r.POST("/list/:id", h.AddItem)
	r.DELETE("/list/:id/:itemId", h.RemoveItem)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---------- success paths ----------

func TestGetAllLists_OK(t *testing.T) {
	r := newRouter(stubListSvc{all: func(context.Context) ([]domain.List, error) {
		return []domain.List{{ID: 101, Name: "groceries"}, {ID: 102, Name: "hardware", Deleted: true}}, nil
	}})

	w := do(r, http.MethodGet, "/lists", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := `[{"id":101,"name":"groceries","deleted":false},{"id":102,"name":"hardware","deleted":true}]`
	if got := w.Body.String(); got != want {
		t.Fatalf("body = %s\nwant  %s", got, want)
	}
}

func TestCreateList_EchoesNameAndFoo(t *testing.T) {
	var gotName string
	r := newRouter(stubListSvc{create: func(_ context.Context, name string) error {
		gotName = name
		return nil
	}})

	w := do(r, http.MethodPost, "/lists", `{"name":"groceries"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != `{"name":"groceries","foo":""}` {
		t.Fatalf("body = %s", got)
	}
	if gotName != "groceries" {
		t.Fatalf("service got %q", gotName)
	}
}

func TestCreateList_EmptyNameAccepted(t *testing.T) {
	r := newRouter(stubListSvc{})
	w := do(r, http.MethodPost, "/lists", `{"name":""}`)
	if w.Code != http.StatusOK || w.Body.String() != `{"name":"","foo":""}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestGetList_OK(t *testing.T) {
	r := newRouter(stubListSvc{get: func(_ context.Context, id int64) (*domain.List, error) {
		return &domain.List{ID: id, Name: "chores"}, nil
	}})
	w := do(r, http.MethodGet, "/lists/105", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"id":105,"name":"chores","deleted":false}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestGetListItems_OK(t *testing.T) {
	var gotID int64
	r := newRouter(stubListSvc{items: func(_ context.Context, id int64) ([]domain.ListItem, error) {
		gotID = id
		return []domain.ListItem{{ID: 101, Name: "milk", ListID: id}}, nil
	}})

	w := do(r, http.MethodGet, "/list/101", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got := w.Body.String(); got != `[{"id":101,"name":"milk","list_id":101,"deleted":false}]` {
		t.Fatalf("body = %s", got)
	}
	if gotID != 101 {
		t.Fatalf("service got id %d", gotID)
	}
}

func TestGetListItems_EmptyIsArray(t *testing.T) {
	r := newRouter(stubListSvc{})
	w := do(r, http.MethodGet, "/list/9", "")
	if w.Code != http.StatusOK || w.Body.String() != `[]` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestAddItem_ReturnsEmptyJSONString(t *testing.T) {
	var gotID int64
	var gotName string
	r := newRouter(stubListSvc{addItem: func(_ context.Context, id int64, name string) error {
		gotID, gotName = id, name
		return nil
	}})

	w := do(r, http.MethodPost, "/list/101", `{"name":"milk"}`)
	if w.Code != http.StatusOK || w.Body.String() != `""` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if gotID != 101 || gotName != "milk" {
		t.Fatalf("service got %d/%q", gotID, gotName)
	}
}

func TestRemoveItem_ReturnsEmptyJSONString(t *testing.T) {
	var gotList, gotItem int64
	r := newRouter(stubListSvc{removeItem: func(_ context.Context, l, i int64) error {
		gotList, gotItem = l, i
		return nil
	}})

	w := do(r, http.MethodDelete, "/list/101/103", "")
	if w.Code != http.StatusOK || w.Body.String() != `""` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if gotList != 101 || gotItem != 103 {
		t.Fatalf("service got %d/%d", gotList, gotItem)
	}
}

// ---------- boundary failures ----------

func TestBoundary_BadBodiesAre400(t *testing.T) {
	r := newRouter(stubListSvc{
		create:  func(context.Context, string) error { t.Fatalf("service must not be called"); return nil },
		addItem: func(context.Context, int64, string) error { t.Fatalf("service must not be called"); return nil },
	})

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPost, "/lists", `{"name":`},
		{http.MethodPost, "/lists", `{}`},
		{http.MethodPost, "/lists", ``},
		{http.MethodPost, "/list/101", `not json`},
		{http.MethodPost, "/list/101", `{"other":"x"}`},
	} {
		w := do(r, tc.method, tc.path, tc.body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s %s %q -> %d", tc.method, tc.path, tc.body, w.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Code != ErrCodeBadRequest {
			t.Fatalf("unexpected envelope: %s (%v)", w.Body.String(), err)
		}
	}
}

func TestBoundary_NonIntegerIdsAre404(t *testing.T) {
	r := newRouter(stubListSvc{})
	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/lists/abc", ""},
		{http.MethodGet, "/list/abc", ""},
		{http.MethodPost, "/list/abc", `{"name":"x"}`},
		{http.MethodDelete, "/list/abc/1", ""},
		{http.MethodDelete, "/list/1/xyz", ""},
	} {
		w := do(r, tc.method, tc.path, tc.body)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s %s -> %d", tc.method, tc.path, w.Code)
		}
	}
}

// ---------- error taxonomy rendering ----------

func TestRenderError_Taxonomy(t *testing.T) {
	cause := errors.New("sql: database is closed")
	cases := []struct {
		name     string
		err      error
		status   int
		body     string
		ctPrefix string
	}{
		{"not found", domain.NotFound("list.get"), http.StatusNotFound, "", ""},
		{"pool", domain.PoolError(cause), http.StatusInternalServerError, cause.Error(), "text/plain"},
		{"query", domain.QueryError("item.add", errors.New("FOREIGN KEY constraint failed")), http.StatusInternalServerError, "", ""},
		{"mapping", domain.MappingError("list.all", errors.New("converting NULL")), http.StatusInternalServerError, "", ""},
		{"foreign", errors.New("something else"), http.StatusInternalServerError, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(stubListSvc{get: func(context.Context, int64) (*domain.List, error) {
				return nil, tc.err
			}})
			w := do(r, http.MethodGet, "/lists/1", "")
			if w.Code != tc.status {
				t.Fatalf("status=%d want %d", w.Code, tc.status)
			}
			if w.Body.String() != tc.body {
				t.Fatalf("body=%q want %q", w.Body.String(), tc.body)
			}
			if tc.ctPrefix != "" {
				if ct := w.Header().Get("Content-Type"); len(ct) < len(tc.ctPrefix) || ct[:len(tc.ctPrefix)] != tc.ctPrefix {
					t.Fatalf("content-type=%q", ct)
				}
			}
		})
	}
}

func TestEveryHandlerPropagatesServiceErrors(t *testing.T) {
	qerr := domain.QueryError("x", errors.New("boom"))
	r := newRouter(stubListSvc{
		all:        func(context.Context) ([]domain.List, error) { return nil, qerr },
		create:     func(context.Context, string) error { return qerr },
		items:      func(context.Context, int64) ([]domain.ListItem, error) { return nil, qerr },
		addItem:    func(context.Context, int64, string) error { return qerr },
		removeItem: func(context.Context, int64, int64) error { return qerr },
	})
	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/lists", ""},
		{http.MethodPost, "/lists", `{"name":"a"}`},
		{http.MethodGet, "/list/1", ""},
		{http.MethodPost, "/list/1", `{"name":"a"}`},
		{http.MethodDelete, "/list/1/2", ""},
	} {
		w := do(r, tc.method, tc.path, tc.body)
		if w.Code != http.StatusInternalServerError || w.Body.Len() != 0 {
			t.Fatalf("%s %s -> %d %q", tc.method, tc.path, w.Code, w.Body.String())
		}
	}
}
