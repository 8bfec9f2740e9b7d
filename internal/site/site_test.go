package site

import (
	"errors"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		label, want string
	}{
		{"Home", "/"},
		{"home", "/"},
		{"Experience", "/experience"},
		{"Contact", "/contact"},
		{"Services", "/services"},
		{"Blog", "/blog"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.label); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, p := range Pages {
		got, ok := Lookup(p.Path)
		if !ok || got.Name != p.Name {
			t.Errorf("lookup %s failed", p.Path)
		}
	}
	if _, ok := Lookup("/blog"); ok {
		t.Error("expected /blog to have no page")
	}
}

func TestByName(t *testing.T) {
	p, err := ByName("Contact")
	if err != nil || p.Path != "/contact" {
		t.Errorf("unexpected %+v, %v", p, err)
	}
	if _, err := ByName("pricing"); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("expected ErrUnknownPage, got %v", err)
	}
}

func TestMeshPages(t *testing.T) {
	if !Home.Mesh || !Contact.Mesh {
		t.Error("home and contact carry the mesh")
	}
	if Experience.Mesh {
		t.Error("experience has a flat background")
	}
}

func TestOpacity(t *testing.T) {
	tests := []struct {
		page    Page
		elapsed time.Duration
		want    float64
	}{
		{Home, 0, 0},
		{Home, 99 * time.Millisecond, 0},
		{Home, 600 * time.Millisecond, 0.5},
		{Home, 5 * time.Second, 1},
		{Contact, 0, 1},
	}
	for _, tt := range tests {
		if got := tt.page.Opacity(tt.elapsed); got != tt.want {
			t.Errorf("%s opacity at %v = %f, want %f", tt.page.Name, tt.elapsed, got, tt.want)
		}
	}
}

func TestRouterNavigate(t *testing.T) {
	r := NewRouter(Home)
	var seen []string
	r.OnChange(func(p Page) { seen = append(seen, p.Name) })

	if p := r.Navigate("Contact"); p.Name != "contact" {
		t.Errorf("expected contact, got %s", p.Name)
	}
	if p := r.Navigate("Blog"); p.Name != "not-found" || p.Path != "/blog" {
		t.Errorf("expected not-found for /blog, got %+v", p)
	}
	if r.Current().Path != "/blog" {
		t.Errorf("expected current /blog, got %s", r.Current().Path)
	}

	p, ok := r.Back()
	if !ok || p.Name != "contact" {
		t.Errorf("expected back to contact, got %s", p.Name)
	}
	p, _ = r.Back()
	if p.Name != "home" {
		t.Errorf("expected back to home, got %s", p.Name)
	}
	if _, ok := r.Back(); ok {
		t.Error("expected empty history")
	}

	want := []string{"contact", "not-found", "contact", "home"}
	if len(seen) != len(want) {
		t.Fatalf("expected %d notifications, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification %d = %s, want %s", i, seen[i], want[i])
		}
	}
}
