package viz

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	zone "github.com/lrstanley/bubblezone"

	"github.com/magnify-ai/fluidmesh/internal/export"
	"github.com/magnify-ai/fluidmesh/internal/mesh"
	"github.com/magnify-ai/fluidmesh/internal/sim"
	"github.com/magnify-ai/fluidmesh/internal/site"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	minCols         = 20
	minRows         = 6
	panelWidth      = 40
	historyCapacity = 300
	gifWidth        = 480
)

type TickMsg time.Time

type Options struct {
	// Cols and Rows size the mesh view in terminal cells.
	Cols, Rows int
	FPS        int
	Theme      string
	// OutDir receives SVG snapshots and GIF recordings.
	OutDir string
}

// Model is the live terminal view: the mesh on the left, page info, nav and
// a displacement trace on the right.
type Model struct {
	sim    *sim.Simulator
	router *site.Router
	page   site.Page

	cols, rows int
	fps        int
	outDir     string

	buf     []mesh.Triangle
	list    mesh.DrawList
	elapsed time.Duration
	trace   []float64

	canvas    *Canvas
	theme     Theme
	st        styles
	keys      keyMap
	help      help.Model
	cursor    int
	running   bool
	wireframe bool
	recording bool
	rec       *export.GIFRecorder
	status    string
}

func NewModel(s *sim.Simulator, router *site.Router, opts Options) Model {
	if opts.Cols <= 0 {
		opts.Cols = defaultCols
	}
	if opts.Rows <= 0 {
		opts.Rows = defaultRows
	}
	if opts.FPS <= 0 {
		opts.FPS = sim.DefaultFPS
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if zone.DefaultManager == nil {
		zone.NewGlobal()
	}
	theme := GetTheme(opts.Theme)
	page := router.Current()

	m := Model{
		sim:     s,
		router:  router,
		page:    page,
		cols:    opts.Cols,
		rows:    opts.Rows,
		fps:     opts.FPS,
		outDir:  opts.OutDir,
		canvas:  NewCanvas(opts.Cols, opts.Rows),
		theme:   theme,
		st:      newStyles(theme),
		keys:    defaultKeys(),
		help:    help.New(),
		running: true,
		trace:   make([]float64, 0, historyCapacity),
	}
	for i, label := range site.NavItems {
		if site.Resolve(label) == page.Path {
			m.cursor = i
		}
	}
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Remount):
			m.remount()
		case key.Matches(msg, m.keys.Left):
			m.cursor = (m.cursor - 1 + len(site.NavItems)) % len(site.NavItems)
		case key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % len(site.NavItems)
		case key.Matches(msg, m.keys.Go):
			m.navigate(m.router.Navigate(site.NavItems[m.cursor]))
		case key.Matches(msg, m.keys.Back):
			if p, ok := m.router.Back(); ok {
				m.navigate(p)
			}
		case key.Matches(msg, m.keys.Wireframe):
			m.wireframe = !m.wireframe
		case key.Matches(msg, m.keys.Record):
			m.toggleRecording()
		case key.Matches(msg, m.keys.Snapshot):
			m.snapshot()
		case key.Matches(msg, m.keys.Theme):
			m.theme = NextTheme(m.theme.Name)
			m.st = newStyles(m.theme)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i, label := range site.NavItems {
			if zone.Get(navZone(label)).InBounds(msg) {
				m.cursor = i
				m.navigate(m.router.Navigate(label))
				break
			}
		}
	case tea.WindowSizeMsg:
		// The animator keeps its mount-time geometry; only the view rescales.
		m.cols = max(msg.Width-panelWidth-4, minCols)
		m.rows = max(msg.Height-2, minRows)
		m.canvas = NewCanvas(m.cols, m.rows)
	case TickMsg:
		if m.running && m.page.Mesh {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.list = m.sim.Advance(m.buf)
	m.buf = m.list.Triangles
	m.elapsed += time.Second / time.Duration(m.fps)

	stats := sim.Stats(m.sim.Animator().Grid(), m.list.Frame, m.list.Time)
	m.trace = append(m.trace, stats.MeanDisplacement)
	if len(m.trace) > historyCapacity {
		m.trace = m.trace[1:]
	}

	if m.recording {
		m.rec.Add(&m.list)
	}
}

// remount discards the animator and starts the page over, fade included.
func (m *Model) remount() {
	m.sim.Remount()
	m.list = mesh.DrawList{}
	m.elapsed = 0
	m.trace = m.trace[:0]
}

func (m *Model) navigate(p site.Page) {
	m.page = p
	if p.Mesh {
		m.remount()
		m.status = "→ " + p.Path
		return
	}
	// Pages without a mesh unmount; a recording in progress stops with them.
	if m.recording {
		m.toggleRecording()
	}
	m.list = mesh.DrawList{}
	m.status = "→ " + p.Path
}

func (m *Model) toggleRecording() {
	if !m.recording {
		w := gifWidth
		h := gifWidth * 2 / 3
		if g := m.sim.Animator().Grid(); g.Width > 0 && g.Height > 0 {
			h = int(float64(w) * g.Height / g.Width)
		}
		m.rec = export.NewGIFRecorder(w, h, 100/m.fps, export.RasterOptions{Overlay: true})
		m.recording = true
		m.status = "recording"
		return
	}

	m.recording = false
	rec := m.rec
	m.rec = nil
	path := filepath.Join(m.outDir, fmt.Sprintf("fluidmesh-%s.gif", m.page.Name))
	if err := saveGIF(path, rec); err != nil {
		m.status = "gif: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %s (%d frames)", path, rec.Len())
}

func saveGIF(path string, rec *export.GIFRecorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return rec.Encode(f)
}

func (m *Model) snapshot() {
	if len(m.list.Triangles) == 0 {
		m.status = "nothing to snapshot"
		return
	}
	path := filepath.Join(m.outDir, fmt.Sprintf("fluidmesh-%05d.svg", m.list.Frame))
	svg := export.SVG(&m.list, export.SVGOptions{Overlay: true, Title: m.page.Title, Opacity: m.opacity()})
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		m.status = "svg: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m Model) opacity() float64 { return m.page.Opacity(m.elapsed) }

func (m Model) renderMesh() string {
	if !m.page.Mesh {
		return Flat(m.page.Background, m.cols, m.rows)
	}
	if m.wireframe {
		m.canvas.Wireframe(&m.list)
		return m.st.wire.Render(m.canvas.String())
	}

	list := m.list
	op := m.opacity()
	if op <= 0 {
		list.Triangles = nil
	}
	list.Background = m.sim.Animator().Params().Gradient.Background()
	img := export.Rasterize(&list, m.cols, m.rows*2, export.RasterOptions{Overlay: true, Opacity: op})
	return HalfBlock(img)
}

func (m Model) statusLine() string {
	switch {
	case m.recording:
		return m.st.recording.Render(fmt.Sprintf("● REC %d", m.rec.Len()))
	case !m.page.Mesh:
		return m.st.paused.Render("STATIC")
	case !m.running:
		return m.st.paused.Render("PAUSED")
	default:
		return m.st.running.Render("RUNNING")
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(m.st.title.Render(strings.ToUpper(m.page.Title)) + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	navs := make([]string, len(site.NavItems))
	for i, label := range site.NavItems {
		item := m.st.nav
		if site.Resolve(label) == m.page.Path {
			item = m.st.navActive
		}
		prefix := "  "
		if i == m.cursor {
			prefix = m.st.navCursor.Render("> ")
		}
		navs[i] = prefix + zone.Mark(navZone(label), item.Render(label))
	}
	s.WriteString(strings.Join(navs, "\n") + "\n\n")

	s.WriteString(m.st.label.Render("Path") + m.st.value.Render(m.page.Path) + "\n")
	if m.page.Mesh {
		s.WriteString(m.st.label.Render("Frame") + m.st.value.Render(fmt.Sprintf("%d", m.list.Frame)) + "\n")
		s.WriteString(m.st.label.Render("Clock") + m.st.value.Render(fmt.Sprintf("%.4f", m.list.Time)) + "\n")
		s.WriteString(m.st.label.Render("Fade") + m.st.value.Render(ProgressBar(m.opacity(), 10)) + "\n")
		if len(m.trace) > 0 {
			s.WriteString(m.st.label.Render("Mean") + m.st.value.Render(fmt.Sprintf("%.3f", m.trace[len(m.trace)-1])) + "\n")
		}
		if len(m.trace) > 1 {
			chart := asciigraph.Plot(m.trace, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("mean displacement"))
			s.WriteString(m.st.graph.Render(chart) + "\n")
		}
	}
	if m.status != "" {
		s.WriteString("\n" + m.st.value.Render(m.status) + "\n")
	}
	s.WriteString(m.st.help.Render(m.help.View(m.keys)))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.st.canvas.Render(m.renderMesh()),
		m.st.panel.Render(s.String()))

	return zone.Scan(mainView)
}

func navZone(label string) string { return "nav." + label }
