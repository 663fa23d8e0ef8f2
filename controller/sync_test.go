// ABOUTME: End-to-end tests wiring controllers to a fake API server
// ABOUTME: Drives create, edit, delete, and asset flows through the event bus
package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/vestryhq/vestry/api"
	"github.com/vestryhq/vestry/models"
	"golang.org/x/oauth2"
)

// fakeServer is an in-memory galleries backend speaking the envelope shape.
type fakeServer struct {
	mu     sync.Mutex
	nextID int
	items  map[models.ID]models.Gallery
}

func newFakeServer() *fakeServer {
	return &fakeServer{nextID: 1, items: make(map[models.ID]models.Gallery)}
}

func (s *fakeServer) add(g models.Gallery) models.Gallery {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = models.ID(fmt.Sprintf("%d", s.nextID))
	s.nextID++
	s.items[g.ID] = g
	return g
}

func (s *fakeServer) sorted() []models.Gallery {
	out := make([]models.Gallery, 0, len(s.items))
	for _, g := range s.items {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func envelope(w http.ResponseWriter, data any) {
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func envelopeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}

func (s *fakeServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if parts[0] != "galleries" {
			envelopeError(w, http.StatusNotFound, "unknown resource")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			envelope(w, s.sorted())

		case len(parts) == 1 && r.Method == http.MethodPost:
			var g models.Gallery
			_ = json.NewDecoder(r.Body).Decode(&g)
			g.ID = models.ID(fmt.Sprintf("%d", s.nextID))
			s.nextID++
			s.items[g.ID] = g
			envelope(w, g)

		case len(parts) == 2 && r.Method == http.MethodPut:
			id := models.ID(parts[1])
			if _, ok := s.items[id]; !ok {
				envelopeError(w, http.StatusNotFound, "gallery not found")
				return
			}
			var g models.Gallery
			_ = json.NewDecoder(r.Body).Decode(&g)
			g.ID = id
			s.items[id] = g
			envelope(w, g)

		case len(parts) == 2 && r.Method == http.MethodDelete:
			id := models.ID(parts[1])
			if _, ok := s.items[id]; !ok {
				envelopeError(w, http.StatusNotFound, "gallery not found")
				return
			}
			delete(s.items, id)
			envelope(w, map[string]any{"id": id})

		case len(parts) == 4 && r.Method == http.MethodDelete:
			id := models.ID(parts[1])
			g, ok := s.items[id]
			if !ok || parts[2] != models.AssetImages {
				envelopeError(w, http.StatusNotFound, "asset not found")
				return
			}
			var idx int
			_, _ = fmt.Sscanf(parts[3], "%d", &idx)
			if idx < 0 || idx >= len(g.Images) {
				envelopeError(w, http.StatusUnprocessableEntity, "index out of range")
				return
			}
			g.Images = append(g.Images[:idx], g.Images[idx+1:]...)
			s.items[id] = g
			envelope(w, g)

		default:
			envelopeError(w, http.StatusNotFound, "not found")
		}
	})
}

// app bundles one resource's controllers wired the way the shell wires them.
type app struct {
	page    *ListPage[models.Gallery]
	form    *Form
	detail  *Detail
	confirm *Confirm
	notes   *recorder
}

func newApp(t *testing.T, ts *httptest.Server) *app {
	t.Helper()
	client := api.NewClient(ts.URL, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}))
	bus := NewBus()
	notes := &recorder{}

	const resource = "galleries"
	page := NewListPage[models.Gallery](resource,
		func(ctx context.Context) ([]models.Gallery, error) {
			return api.List[models.Gallery](ctx, client, resource)
		},
		galleryRow, notes)

	fields := []Field{
		{Name: "title", Label: "Title", Required: true},
		{Name: "description", Label: "Description"},
	}
	form := NewForm(resource, fields, func(ctx context.Context, id models.ID, body any) (models.Entity, error) {
		if id.IsZero() {
			ent, err := api.Create[models.Gallery](ctx, client, resource, body)
			if err != nil {
				return nil, err
			}
			return ent, nil
		}
		ent, err := api.Update[models.Gallery](ctx, client, resource, id, body)
		if err != nil {
			return nil, err
		}
		return ent, nil
	}, bus, notes)

	detail := NewDetail(resource, func(ctx context.Context, id models.ID, assetType string, index int) (models.Entity, error) {
		ent, err := api.DeleteAsset[models.Gallery](ctx, client, resource, id, assetType, index)
		if err != nil {
			return nil, err
		}
		return ent, nil
	}, bus, notes)

	confirm := NewConfirm(resource, func(ctx context.Context, id models.ID) error {
		return api.Delete(ctx, client, resource, id)
	}, bus, notes)

	bus.Subscribe(func(res string, ev Event) {
		if res != resource {
			return
		}
		if page.Apply(ev) {
			page.LoadAll(context.Background())
		}
	})

	return &app{page: page, form: form, detail: detail, confirm: confirm, notes: notes}
}

func TestCreateFlow(t *testing.T) {
	srv := newFakeServer()
	srv.add(models.Gallery{Title: "Easter"})
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	a := newApp(t, ts)
	ctx := context.Background()
	a.page.LoadAll(ctx)

	a.page.OpenFor(ModalAdd, "")
	a.form.SetEntity(nil)
	a.form.SetValue("title", "Christmas")
	a.form.SetValue("description", "Carol night photos")
	a.form.Submit(ctx)

	if a.page.Len() != 2 {
		t.Fatalf("expected 2 galleries after create, got %d", a.page.Len())
	}
	items := a.page.Items()
	if items[1].Title != "Christmas" {
		t.Errorf("new gallery should append last, got %q", items[1].Title)
	}
	if items[1].ID.IsZero() {
		t.Error("appended row should carry the server-assigned id")
	}
	if a.page.ModalOpen(ModalAdd) {
		t.Error("add modal should close after create")
	}
	if got := a.notes.last().Variant; got != VariantSuccess {
		t.Errorf("expected a success toast, got %q", got)
	}
}

func TestEditFlow(t *testing.T) {
	srv := newFakeServer()
	srv.add(models.Gallery{Title: "Easter"})
	srv.add(models.Gallery{Title: "Youth camp"})
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	a := newApp(t, ts)
	ctx := context.Background()
	a.page.LoadAll(ctx)

	a.page.OpenFor(ModalUpdate, "1")
	ent, ok := a.page.ActiveEntity(ModalUpdate)
	if !ok {
		t.Fatal("update slot empty after OpenFor")
	}
	a.form.SetEntity(ent)
	a.form.SetValue("title", "Easter 2026")
	a.form.Submit(ctx)

	items := a.page.Items()
	if len(items) != 2 {
		t.Fatalf("edit must not change the collection size, got %d", len(items))
	}
	if items[0].Title != "Easter 2026" {
		t.Errorf("row 0 should hold the edited record, got %q", items[0].Title)
	}
	if items[1].Title != "Youth camp" {
		t.Error("other rows must be untouched")
	}
	if a.page.ModalOpen(ModalUpdate) {
		t.Error("update modal should close after save")
	}
}

func TestDeleteFlow(t *testing.T) {
	srv := newFakeServer()
	srv.add(models.Gallery{Title: "Easter"})
	srv.add(models.Gallery{Title: "Youth camp"})
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	a := newApp(t, ts)
	ctx := context.Background()
	a.page.LoadAll(ctx)

	a.page.OpenFor(ModalDelete, "1")
	ent, ok := a.page.ActiveEntity(ModalDelete)
	if !ok {
		t.Fatal("delete slot empty after OpenFor")
	}
	a.confirm.SetEntity(ent)
	a.confirm.Confirm(ctx)

	if a.page.Len() != 1 {
		t.Fatalf("expected 1 gallery after delete, got %d", a.page.Len())
	}
	if a.page.Items()[0].Title != "Youth camp" {
		t.Error("the wrong row was deleted")
	}
	if a.page.ModalOpen(ModalDelete) {
		t.Error("delete dialog should close after confirm")
	}

	srv.mu.Lock()
	remaining := len(srv.items)
	srv.mu.Unlock()
	if remaining != 1 {
		t.Errorf("server still holds %d galleries", remaining)
	}
}

func TestAssetDeleteFlow(t *testing.T) {
	srv := newFakeServer()
	srv.add(models.Gallery{Title: "Easter", Images: []string{"a.jpg", "b.jpg", "c.jpg"}})
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	a := newApp(t, ts)
	ctx := context.Background()
	a.page.LoadAll(ctx)

	a.page.OpenFor(ModalView, "1")
	ent, _ := a.page.ActiveEntity(ModalView)
	a.detail.SetEntity(ent)

	a.detail.DeleteAsset(ctx, models.AssetImages, 1)

	shown := a.detail.Entity().(models.Gallery)
	if len(shown.Images) != 2 || shown.Images[1] != "c.jpg" {
		t.Errorf("detail should show the server's spliced array, got %v", shown.Images)
	}

	listed := a.page.Items()[0]
	if len(listed.Images) != 2 {
		t.Error("the list row should refresh from the asset event")
	}
	if !a.page.ModalOpen(ModalView) {
		t.Error("asset deletion must not close the view modal")
	}
	slot, ok := a.page.Active(ModalView)
	if !ok || len(slot.Images) != 2 {
		t.Error("the view slot should refresh from the asset event")
	}

	// Positions shifted; deleting index 1 again must remove what is now there.
	a.detail.DeleteAsset(ctx, models.AssetImages, 1)
	shown = a.detail.Entity().(models.Gallery)
	if len(shown.Images) != 1 || shown.Images[0] != "a.jpg" {
		t.Errorf("second positional delete should act on the fresh array, got %v", shown.Images)
	}
}
