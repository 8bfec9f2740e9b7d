package sim

import (
	"sync"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
)

// TrianglePool recycles per-frame triangle buffers sized for one grid.
type TrianglePool struct {
	pool sync.Pool
	size int
}

func NewTrianglePool(columns, rows int) *TrianglePool {
	size := mesh.TriangleCount(columns, rows)
	return &TrianglePool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]mesh.Triangle, 0, size)
			},
		},
	}
}

func (p *TrianglePool) Get() []mesh.Triangle {
	return p.pool.Get().([]mesh.Triangle)[:0]
}

func (p *TrianglePool) Put(t []mesh.Triangle) {
	if cap(t) >= p.size {
		p.pool.Put(t[:0])
	}
}
