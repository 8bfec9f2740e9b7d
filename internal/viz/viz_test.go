package viz

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
	"github.com/magnify-ai/fluidmesh/internal/noise"
	"github.com/magnify-ai/fluidmesh/internal/sim"
	"github.com/magnify-ai/fluidmesh/internal/site"
)

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 0)

	for col := 0; col < 4; col++ {
		if c.Grid[0][col] != brailleBase|0x1|0x8 {
			t.Errorf("col %d: expected top dots set, got %#x", col, c.Grid[0][col])
		}
	}
	if c.Grid[1][0] != brailleBase {
		t.Errorf("second row should stay empty, got %#x", c.Grid[1][0])
	}

	c.Set(-1, 3)
	c.Set(100, 100)
	c.Clear()
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("clear left dots behind")
	}
}

func TestCanvasWireframe(t *testing.T) {
	a := mesh.New(1200, 800, noise.Constant(0))
	list := a.Step(nil)

	c := NewCanvas(40, 20)
	c.Wireframe(&list)

	// a flat grid puts lines on the outer border
	if c.Grid[0][0]&0x1 == 0 || c.Grid[19][39]&0x80 == 0 {
		t.Error("expected corners to be traced")
	}
	if len(strings.Split(c.String(), "\n")) != 20 {
		t.Error("unexpected row count")
	}
}

func TestHalfBlock(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 6, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 40), A: 255})
		}
	}
	out := HalfBlock(img)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows for an odd height, got %d", len(lines))
	}
	if n := strings.Count(out, "▀"); n != 18 {
		t.Errorf("expected 18 cells, got %d", n)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "mono" {
		t.Error("unknown theme should fall back to mono")
	}
	seen := map[string]bool{}
	name := "mono"
	for range Themes {
		name = NextTheme(name).Name
		seen[name] = true
	}
	if len(seen) != len(ThemeNames()) {
		t.Errorf("cycle visited %d of %d themes", len(seen), len(ThemeNames()))
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	s := sim.New(func() *mesh.Animator { return mesh.New(1200, 800, noise.NewSimplex(5)) })
	return NewModel(s, site.NewRouter(site.Home), Options{Cols: 30, Rows: 10, OutDir: t.TempDir()})
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	return m
}

func TestModelTicks(t *testing.T) {
	m := tick(newTestModel(t), 3)
	if m.list.Frame != 3 || len(m.trace) != 3 {
		t.Fatalf("expected 3 frames, got frame %d trace %d", m.list.Frame, len(m.trace))
	}

	m = press(m, " ")
	m = tick(m, 2)
	if m.list.Frame != 3 {
		t.Errorf("paused model advanced to frame %d", m.list.Frame)
	}

	m = press(m, " ")
	m = press(m, "r")
	if m.sim.Animator().Frame() != 0 || m.elapsed != 0 {
		t.Error("remount should restart the clock and the fade")
	}
}

func TestModelFade(t *testing.T) {
	m := newTestModel(t)
	if m.opacity() != 0 {
		t.Errorf("home should start invisible, got %v", m.opacity())
	}
	m = tick(m, 120)
	if m.opacity() != 1 {
		t.Errorf("expected full opacity after two seconds, got %v", m.opacity())
	}
}

func TestModelNavigation(t *testing.T) {
	m := newTestModel(t)
	if m.cursor != 0 {
		t.Fatalf("cursor should start on Home, got %d", m.cursor)
	}

	m = press(m, "left")
	if site.NavItems[m.cursor] != "Contact" {
		t.Fatalf("cursor should wrap to Contact, got %s", site.NavItems[m.cursor])
	}
	m = tick(m, 2)
	m = press(m, "enter")
	if m.page.Path != "/contact" || m.router.Current().Path != "/contact" {
		t.Fatalf("expected /contact, got %s", m.page.Path)
	}
	if m.sim.Animator().Frame() != 0 {
		t.Error("navigating to a mesh page should remount")
	}
	if m.opacity() != 1 {
		t.Error("contact has no fade-in")
	}

	m = press(m, "left")
	m = press(m, "left")
	m = press(m, "enter")
	if m.page.Name != "not-found" || m.page.Mesh {
		t.Errorf("Services has no page, got %+v", m.page)
	}
	m = tick(m, 2)
	if m.list.Frame != 0 {
		t.Error("pages without mesh must not step")
	}
	if !strings.Contains(m.View(), "404") {
		t.Error("view should show the not-found title")
	}
}

func TestModelToggles(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "w")
	if !m.wireframe {
		t.Error("w should enable wireframe")
	}
	m = press(m, "t")
	if m.theme.Name != "ink" {
		t.Errorf("expected ink theme, got %s", m.theme.Name)
	}
	if strings.Contains(m.View(), "svg snapshot") {
		t.Error("short help should not list every binding")
	}
	m = press(m, "?")
	if !m.help.ShowAll || !strings.Contains(m.View(), "svg snapshot") {
		t.Error("full help missing")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelRecordAndSnapshot(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "s")
	if m.status != "nothing to snapshot" {
		t.Errorf("unexpected status %q", m.status)
	}

	m = press(m, "g")
	m = tick(m, 4)
	m = press(m, "s")
	m = press(m, "g")

	if m.recording {
		t.Fatal("second g should stop recording")
	}
	for _, name := range []string{"fluidmesh-home.gif", "fluidmesh-00004.svg"} {
		info, err := os.Stat(filepath.Join(m.outDir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestModelView(t *testing.T) {
	m := tick(newTestModel(t), 30)
	view := m.View()

	if !strings.Contains(view, "MAGNIFY.AI") {
		t.Error("title missing")
	}
	for _, label := range site.NavItems {
		if !strings.Contains(view, label) {
			t.Errorf("nav item %s missing", label)
		}
	}
	if strings.Count(view, "▀") != 30*10 {
		t.Errorf("expected 300 mesh cells, got %d", strings.Count(view, "▀"))
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	if m.cols != 120-panelWidth-4 || m.rows != 38 {
		t.Errorf("unexpected view size %dx%d", m.cols, m.rows)
	}
	if g := m.sim.Animator().Grid(); g.Width != 1200 || g.Height != 800 {
		t.Error("resize must not touch the animator geometry")
	}
}
