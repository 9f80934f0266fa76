package views

import (
	"net/url"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "views.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)

	params := url.Values{}
	params.Set("feature", "volume")
	params.Set("track", "42:3")

	if err := s.Save("my-analysis", params); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	v, err := s.Get("my-analysis")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v.Name != "my-analysis" {
		t.Errorf("expected name 'my-analysis', got %q", v.Name)
	}
	if got := v.Params.Get("feature"); got != "volume" {
		t.Errorf("expected feature 'volume', got %q", got)
	}
	if got := v.Params.Get("track"); got != "42:3" {
		t.Errorf("expected track '42:3', got %q", got)
	}
	if v.CreatedAt.IsZero() || v.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Get("missing"); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestSave_ReplacesAndKeepsCreatedAt(t *testing.T) {
	s := openTestStore(t)

	first := url.Values{"feature": {"volume"}}
	if err := s.Save("v", first); err != nil {
		t.Fatal(err)
	}
	created, err := s.Get("v")
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(10 * time.Millisecond)

	second := url.Values{"feature": {"height"}}
	if err := s.Save("v", second); err != nil {
		t.Fatal(err)
	}
	replaced, err := s.Get("v")
	if err != nil {
		t.Fatal(err)
	}

	if got := replaced.Params.Get("feature"); got != "height" {
		t.Errorf("expected replaced params, got feature %q", got)
	}
	if !replaced.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("expected created_at to survive replacement: %v != %v",
			replaced.CreatedAt, created.CreatedAt)
	}
	if !replaced.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("expected updated_at to advance: %v <= %v",
			replaced.UpdatedAt, created.UpdatedAt)
	}
}

func TestSave_EmptyName(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save("", url.Values{}); err == nil {
		t.Error("expected error for empty view name")
	}
}

func TestList_OrderedByUpdate(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save("older", url.Values{"t": {"1"}}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := s.Save("newer", url.Values{"t": {"2"}}); err != nil {
		t.Fatal(err)
	}

	views, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].Name != "newer" || views[1].Name != "older" {
		t.Errorf("expected [newer older], got [%s %s]", views[0].Name, views[1].Name)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save("doomed", url.Values{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("doomed"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("doomed"); err == nil {
		t.Error("expected deleted view to be gone")
	}

	if err := s.Delete("doomed"); err == nil {
		t.Error("expected error deleting unknown view")
	}
}

func TestCount(t *testing.T) {
	s := openTestStore(t)

	n, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected empty store, got %d", n)
	}

	s.Save("a", url.Values{})
	s.Save("b", url.Values{})

	n, err = s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 views, got %d", n)
	}
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "views.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if s.Path() != path {
		t.Errorf("expected path %q, got %q", path, s.Path())
	}
}
