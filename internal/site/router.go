package site

import "sync"

// Router is the navigation collaborator behind the nav links. Listeners are
// told about every page change so hosts can unmount and re-mount their
// animators.
type Router struct {
	mu        sync.Mutex
	current   Page
	history   []Page
	listeners []func(Page)
}

func NewRouter(start Page) *Router {
	return &Router{current: start}
}

func (r *Router) Current() Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// OnChange registers a listener called after every navigation.
func (r *Router) OnChange(fn func(Page)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Navigate follows a nav label. Paths without a page land on NotFound.
func (r *Router) Navigate(label string) Page {
	return r.Push(Resolve(label))
}

// Push moves to path.
func (r *Router) Push(path string) Page {
	p, ok := Lookup(path)
	if !ok {
		p = NotFound(path)
	}
	r.mu.Lock()
	r.history = append(r.history, r.current)
	r.current = p
	listeners := append([]func(Page){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
	return p
}

// Back returns to the previous page. It reports false when there is no history.
func (r *Router) Back() (Page, bool) {
	r.mu.Lock()
	if len(r.history) == 0 {
		r.mu.Unlock()
		return r.current, false
	}
	p := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.current = p
	listeners := append([]func(Page){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
	return p, true
}
