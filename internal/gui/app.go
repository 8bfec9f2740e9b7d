package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/magnify-ai/fluidmesh/internal/logging"
	"github.com/magnify-ai/fluidmesh/internal/mesh"
	"github.com/magnify-ai/fluidmesh/internal/sim"
	"github.com/magnify-ai/fluidmesh/internal/site"
)

var (
	ColText    = rl.NewColor(255, 255, 255, 255)
	ColNav     = rl.NewColor(200, 200, 200, 255)
	ColNavHot  = rl.NewColor(255, 255, 255, 255)
	ColTextDim = rl.NewColor(110, 110, 110, 255)
	ColWire    = rl.NewColor(128, 128, 128, 255)
)

const (
	navFontSize   = 18
	navGap        = 28
	navMargin     = 24
	titleFontSize = 72
)

type Options struct {
	// Width and Height are the container size the animator was mounted with.
	Width, Height int
	FPS           int
}

type App struct {
	sim    *sim.Simulator
	router *site.Router
	page   site.Page

	buf       []mesh.Triangle
	list      mesh.DrawList
	mountedAt time.Time

	Running   bool
	Wireframe bool
	ShowStats bool

	navRects []rl.Rectangle
	hover    int
}

// initWindow opens a resizable window at the container size. The animator
// geometry does not follow later resizes; drawing is scaled instead.
func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), site.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

func NewApp(s *sim.Simulator, router *site.Router) *App {
	a := &App{
		sim:     s,
		router:  router,
		page:    router.Current(),
		Running: true,
		hover:   -1,
	}
	a.mountedAt = time.Now()
	router.OnChange(a.mount)
	return a
}

// Run opens the window and blocks until it is closed. Closing the window
// unmounts the animator.
func Run(s *sim.Simulator, router *site.Router, opts Options) {
	if opts.FPS <= 0 {
		opts.FPS = sim.DefaultFPS
	}
	initWindow(opts)
	defer rl.CloseWindow()

	app := NewApp(s, router)
	logging.Logger.Info("window opened", "page", app.page.Path, "width", opts.Width, "height", opts.Height)
	app.RunLoop()
	logging.Logger.Info("window closed", "frames", app.list.Frame)
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// mount is the router listener: every page change unmounts the current
// animator and, for mesh pages, mounts a fresh one.
func (a *App) mount(p site.Page) {
	logging.Logger.Info("navigate", "from", a.page.Path, "to", p.Path)
	a.page = p
	a.list = mesh.DrawList{}
	a.mountedAt = time.Now()
	if p.Mesh {
		a.sim.Remount()
	}
}

// Update handles input and steps the animator once. It reports whether the
// user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) && a.page.Mesh {
		a.mount(a.page)
	}
	if rl.IsKeyPressed(rl.KeyW) {
		a.Wireframe = !a.Wireframe
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.ShowStats = !a.ShowStats
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		a.router.Back()
	}

	a.layoutNav()
	mouse := rl.GetMousePosition()
	a.hover = -1
	for i, r := range a.navRects {
		if rl.CheckCollisionPointRec(mouse, r) {
			a.hover = i
		}
	}
	if a.hover >= 0 && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.router.Navigate(site.NavItems[a.hover])
		return false
	}

	if a.Running && a.page.Mesh {
		a.list = a.sim.Advance(a.buf)
		a.buf = a.list.Triangles
	}
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	if !a.page.Mesh {
		rl.ClearBackground(hexColor(a.page.Background, 1))
		a.drawTitle(a.page.Title)
		a.drawNav()
		return
	}

	p := a.sim.Animator().Params()
	rl.ClearBackground(toColor(p.Gradient.Background(), 1))

	sx := float32(rl.GetScreenWidth())
	sy := float32(rl.GetScreenHeight())
	if a.list.Width > 0 && a.list.Height > 0 {
		sx /= float32(a.list.Width)
		sy /= float32(a.list.Height)
	}

	opacity := a.page.Opacity(time.Since(a.mountedAt))
	if opacity > 0 {
		if a.Wireframe {
			drawWireframe(&a.list, sx, sy)
		} else {
			drawMesh(&a.list, sx, sy, opacity)
		}
	}

	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), rl.Fade(rl.Black, site.OverlayOpacity))
	a.drawTitle(a.page.Title)
	a.drawNav()
	if a.ShowStats {
		a.drawStats()
	}
}

func (a *App) drawTitle(title string) {
	w := rl.MeasureText(title, titleFontSize)
	x := (int32(rl.GetScreenWidth()) - w) / 2
	y := (int32(rl.GetScreenHeight()) - titleFontSize) / 2
	rl.DrawText(title, x, y, titleFontSize, ColText)
}

// layoutNav places the nav labels right-aligned along the top edge.
func (a *App) layoutNav() {
	x := float32(rl.GetScreenWidth() - navMargin)
	rects := make([]rl.Rectangle, len(site.NavItems))
	for i := len(site.NavItems) - 1; i >= 0; i-- {
		w := float32(rl.MeasureText(site.NavItems[i], navFontSize))
		x -= w
		rects[i] = rl.NewRectangle(x, navMargin, w, navFontSize)
		x -= navGap
	}
	a.navRects = rects
}

func (a *App) drawNav() {
	for i, label := range site.NavItems {
		r := a.navRects[i]
		col := ColNav
		if i == a.hover {
			col = ColNavHot
		}
		rl.DrawText(label, int32(r.X), int32(r.Y), navFontSize, col)
		if site.Resolve(label) == a.page.Path {
			rl.DrawRectangle(int32(r.X), int32(r.Y+r.Height+4), int32(r.Width), 2, col)
		}
	}
}

func (a *App) drawStats() {
	g := a.sim.Animator().Grid()
	s := sim.Stats(g, a.list.Frame, a.list.Time)
	lines := []string{
		fmt.Sprintf("%d FPS", rl.GetFPS()),
		fmt.Sprintf("frame %d", s.Frame),
		fmt.Sprintf("mean %.3f  peak %.3f", s.MeanDisplacement, s.PeakDisplacement),
		fmt.Sprintf("%d triangles", len(a.list.Triangles)),
	}
	y := int32(rl.GetScreenHeight()) - int32(len(lines))*20 - navMargin
	for _, line := range lines {
		rl.DrawText(line, navMargin, y, 16, ColTextDim)
		y += 20
	}
}

func hexColor(hex string, alpha float64) rl.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.Black
	}
	return toColor(c, alpha)
}

func toColor(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, uint8(alpha*255+0.5))
}
