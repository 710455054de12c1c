package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles grids between generations
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an all-dead grid of the given size from the pool
func (p *GridPool) Get(cols, rows int) *Grid {
	g := p.pool.Get().(*Grid)
	g.reset(cols, rows)
	return g
}

// Put returns a grid to the pool, clearing its state
func (p *GridPool) Put(g *Grid) {
	g.Clear()
	g.generation = 0
	p.pool.Put(g)
}

// reset resizes the grid, reusing row slices when the width already matches
func (g *Grid) reset(cols, rows int) {
	g.cols = cols
	g.rows = rows
	g.generation = 0
	g.history = g.history[:0]

	if len(g.cells) != rows {
		g.cells = make([][]bool, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != cols {
			g.cells[i] = make([]bool, cols)
		} else {
			clear(g.cells[i])
		}
	}
}
