// Package site models the pages of the marketing site and the navigation
// between them. Page content beyond the title is out of scope; what matters
// here is which pages carry the animated mesh and where nav labels lead.
package site

import (
	"errors"
	"strings"
	"time"
)

const (
	Title = "magnify.ai"

	// OverlayOpacity is the black veil drawn over the mesh behind the text.
	OverlayOpacity = 0.3

	// FadeDelay and FadeDuration shape the home page's first appearance.
	FadeDelay    = 100 * time.Millisecond
	FadeDuration = time.Second

	ExperienceBackground = "#1e1e1e"
)

var ErrUnknownPage = errors.New("site: unknown page")

type Page struct {
	Name  string
	Path  string
	Title string
	// Mesh pages mount an animator; others paint a flat background.
	Mesh   bool
	FadeIn bool
	// Preset names the config preset the page's animator starts from.
	Preset     string
	Background string
}

var (
	Home = Page{
		Name: "home", Path: "/", Title: Title,
		Mesh: true, FadeIn: true, Preset: "home",
	}
	Experience = Page{
		Name: "experience", Path: "/experience", Title: "Experience",
		Background: ExperienceBackground,
	}
	Contact = Page{
		Name: "contact", Path: "/contact", Title: Title,
		Mesh: true, Preset: "contact",
	}

	Pages = []Page{Home, Experience, Contact}

	// NavItems are the labels shown in every page's menu, in order.
	NavItems = []string{"Home", "Experience", "Services", "Blog", "Contact"}
)

// NotFound stands in for any path without a page.
func NotFound(path string) Page {
	return Page{Name: "not-found", Path: path, Title: "404", Background: "#000000"}
}

// Resolve maps a nav label to its path: "home" is the root, anything else
// becomes "/<label>" lower-cased.
func Resolve(label string) string {
	target := strings.ToLower(strings.TrimSpace(label))
	if target == "home" || target == "" {
		return "/"
	}
	return "/" + target
}

// Lookup finds a page by path.
func Lookup(path string) (Page, bool) {
	for _, p := range Pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// ByName finds a page by its short name, e.g. "contact".
func ByName(name string) (Page, error) {
	name = strings.ToLower(name)
	for _, p := range Pages {
		if p.Name == name {
			return p, nil
		}
	}
	return Page{}, ErrUnknownPage
}

// Opacity is the mesh opacity elapsed after mount. Pages without a fade are
// fully visible at once.
func (p Page) Opacity(elapsed time.Duration) float64 {
	if !p.FadeIn {
		return 1
	}
	if elapsed < FadeDelay {
		return 0
	}
	v := float64(elapsed-FadeDelay) / float64(FadeDuration)
	if v > 1 {
		return 1
	}
	return v
}
