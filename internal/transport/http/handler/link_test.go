package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lynquer/lynquer-api/internal/domain"
	"github.com/lynquer/lynquer-api/internal/repository"
	"github.com/lynquer/lynquer-api/internal/transport/http/handler"
)

// ---- fakes ----

type fakeLinkUsecase struct {
	create         func(ctx context.Context, userID, title, url string) (*domain.Link, error)
	listMine       func(ctx context.Context, userID string) ([]domain.Link, error)
	listByUsername func(ctx context.Context, username string) ([]domain.Link, error)
	update         func(ctx context.Context, userID, linkID string, upd repository.LinkUpdate) error
	delete         func(ctx context.Context, userID, linkID string) error
	setVisibility  func(ctx context.Context, userID, linkID string, visible bool) error
	reorder        func(ctx context.Context, items []domain.LinkPosition) error
}

func (f *fakeLinkUsecase) Create(ctx context.Context, userID, title, url string) (*domain.Link, error) {
	return f.create(ctx, userID, title, url)
}

func (f *fakeLinkUsecase) ListMine(ctx context.Context, userID string) ([]domain.Link, error) {
	return f.listMine(ctx, userID)
}

func (f *fakeLinkUsecase) ListByUsername(ctx context.Context, username string) ([]domain.Link, error) {
	return f.listByUsername(ctx, username)
}

func (f *fakeLinkUsecase) Update(ctx context.Context, userID, linkID string, upd repository.LinkUpdate) error {
	return f.update(ctx, userID, linkID, upd)
}

func (f *fakeLinkUsecase) Delete(ctx context.Context, userID, linkID string) error {
	return f.delete(ctx, userID, linkID)
}

func (f *fakeLinkUsecase) SetVisibility(ctx context.Context, userID, linkID string, visible bool) error {
	return f.setVisibility(ctx, userID, linkID, visible)
}

func (f *fakeLinkUsecase) Reorder(ctx context.Context, items []domain.LinkPosition) error {
	return f.reorder(ctx, items)
}

// newLinkRouter wires the handler behind a stub that injects userID the way
// the session middleware would. The positions route stays outside it.
func newLinkRouter(uc *fakeLinkUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewLinkHandler(uc, testLogger())

	r := gin.New()
	asUser := func(c *gin.Context) { c.Set("userID", "user-1") }

	r.POST("/link/create", asUser, h.Create)
	r.GET("/link/all", asUser, h.ListMine)
	r.GET("/link/user/:username", h.ListByUsername)
	r.PATCH("/link/update/:id", asUser, h.Update)
	r.DELETE("/link/delete/:id", asUser, h.Delete)
	r.PATCH("/link/visible/:id", asUser, h.SetVisibility)
	r.PUT("/link/positions", h.Reorder)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(rec, req)
	return rec
}

// ---- Create ----

func TestLinkCreate_Success(t *testing.T) {
	r := newLinkRouter(&fakeLinkUsecase{
		create: func(_ context.Context, userID, title, url string) (*domain.Link, error) {
			return &domain.Link{ID: "link-1", UserID: userID, Title: title, URL: url, Visible: true}, nil
		},
	})

	rec := doJSON(t, r, http.MethodPost, "/link/create", `{"title":"Site","url":"http://x"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Link struct {
			ID     string `json:"id"`
			UserID string `json:"user_id"`
		} `json:"link"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Link.UserID != "user-1" {
		t.Errorf("link user_id = %q, want %q", body.Link.UserID, "user-1")
	}
}

func TestLinkCreate_MissingFields(t *testing.T) {
	r := newLinkRouter(&fakeLinkUsecase{})

	rec := doJSON(t, r, http.MethodPost, "/link/create", `{"title":"Site"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Message != "Please fill in all required fields" {
		t.Errorf("message = %q", body.Message)
	}
}

// ---- ListMine ----

func TestListMineHandler_PreservesPositionOrder(t *testing.T) {
	r := newLinkRouter(&fakeLinkUsecase{
		listMine: func(_ context.Context, _ string) ([]domain.Link, error) {
			return []domain.Link{
				{ID: "link-1", Position: 0},
				{ID: "link-2", Position: 1},
				{ID: "link-3", Position: 1},
				{ID: "link-4", Position: 10},
			}, nil
		},
	})

	rec := doJSON(t, r, http.MethodGet, "/link/all", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Links []struct {
			ID       string `json:"id"`
			Position int    `json:"position"`
		} `json:"links"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(body.Links) != 4 {
		t.Fatalf("links = %d, want 4", len(body.Links))
	}
	for i := 1; i < len(body.Links); i++ {
		if body.Links[i].Position < body.Links[i-1].Position {
			t.Fatalf("positions out of order at %d: %d after %d",
				i, body.Links[i].Position, body.Links[i-1].Position)
		}
	}
	for i, want := range []string{"link-1", "link-2", "link-3", "link-4"} {
		if body.Links[i].ID != want {
			t.Errorf("links[%d] = %q, want %q", i, body.Links[i].ID, want)
		}
	}
}

// ---- ListByUsername ----

func TestListByUsernameHandler_UnknownUser_Returns404(t *testing.T) {
	r := newLinkRouter(&fakeLinkUsecase{
		listByUsername: func(_ context.Context, _ string) ([]domain.Link, error) {
			return nil, domain.ErrUserNotFound
		},
	})

	rec := doJSON(t, r, http.MethodGet, "/link/user/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListByUsernameHandler_ReturnsAllLinks(t *testing.T) {
	r := newLinkRouter(&fakeLinkUsecase{
		listByUsername: func(_ context.Context, username string) ([]domain.Link, error) {
			if username != "alice" {
				return nil, domain.ErrUserNotFound
			}
			return []domain.Link{
				{ID: "link-1", Visible: true},
				{ID: "link-2", Visible: false},
			}, nil
		},
	})

	rec := doJSON(t, r, http.MethodGet, "/link/user/alice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Links []struct {
			ID      string `json:"id"`
			Visible bool   `json:"visible"`
		} `json:"links"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Links) != 2 {
		t.Errorf("links = %d, want 2", len(body.Links))
	}
}

// ---- mutations ----

func TestLinkMutations_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", domain.ErrLinkNotFound, http.StatusNotFound},
		{"not owner", domain.ErrNotOwner, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newLinkRouter(&fakeLinkUsecase{
				update: func(_ context.Context, _, _ string, _ repository.LinkUpdate) error {
					return tc.err
				},
				delete: func(_ context.Context, _, _ string) error {
					return tc.err
				},
				setVisibility: func(_ context.Context, _, _ string, _ bool) error {
					return tc.err
				},
			})

			if rec := doJSON(t, r, http.MethodPatch, "/link/update/link-1", `{"title":"New"}`); rec.Code != tc.wantCode {
				t.Errorf("update status = %d, want %d", rec.Code, tc.wantCode)
			}
			if rec := doJSON(t, r, http.MethodDelete, "/link/delete/link-1", ""); rec.Code != tc.wantCode {
				t.Errorf("delete status = %d, want %d", rec.Code, tc.wantCode)
			}
			if rec := doJSON(t, r, http.MethodPatch, "/link/visible/link-1", `{"visible":false}`); rec.Code != tc.wantCode {
				t.Errorf("visibility status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}

func TestSetVisibility_FalseIsValidPayload(t *testing.T) {
	var gotVisible bool
	r := newLinkRouter(&fakeLinkUsecase{
		setVisibility: func(_ context.Context, _, _ string, visible bool) error {
			gotVisible = visible
			return nil
		},
	})

	rec := doJSON(t, r, http.MethodPatch, "/link/visible/link-1", `{"visible":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if gotVisible {
		t.Error("visible = true, want false")
	}
}

func TestSetVisibility_MissingField(t *testing.T) {
	r := newLinkRouter(&fakeLinkUsecase{})

	rec := doJSON(t, r, http.MethodPatch, "/link/visible/link-1", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// ---- Reorder ----

func TestReorderHandler_WorksWithoutSession(t *testing.T) {
	var got []domain.LinkPosition
	r := newLinkRouter(&fakeLinkUsecase{
		reorder: func(_ context.Context, items []domain.LinkPosition) error {
			got = items
			return nil
		},
	})

	// No session stub on this route; the request carries no credentials.
	rec := doJSON(t, r, http.MethodPut, "/link/positions",
		`{"links":[{"id":"link-1","position":1},{"id":"link-2","position":0}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if len(got) != 2 || got[0].ID != "link-1" || got[1].Position != 0 {
		t.Errorf("items = %+v", got)
	}
}

func TestReorderHandler_InvalidPayload(t *testing.T) {
	r := newLinkRouter(&fakeLinkUsecase{})

	rec := doJSON(t, r, http.MethodPut, "/link/positions", `{"links":"nope"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReorderHandler_FailureReturns500(t *testing.T) {
	r := newLinkRouter(&fakeLinkUsecase{
		reorder: func(_ context.Context, _ []domain.LinkPosition) error {
			return domain.ErrLinkNotFound
		},
	})

	rec := doJSON(t, r, http.MethodPut, "/link/positions", `{"links":[{"id":"link-1","position":1}]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
