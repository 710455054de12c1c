package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
)

// historySize is how many recent grid hashes are kept for cycle detection
const historySize = 5

// Grid is a dense, edge-wrapping cols x rows board of cells
type Grid struct {
	cols       int
	rows       int
	generation int
	cells      [][]bool // indexed [y][x]
	history    []string // Store recent grid states for cycle detection
}

// NewGrid creates a new all-dead grid with the specified dimensions
func NewGrid(cols, rows int) (*Grid, error) {
	g := &Grid{}
	if err := g.Init(cols, rows, false); err != nil {
		return nil, err
	}
	return g, nil
}

// Init discards the current matrix and allocates a fresh cols x rows one with
// every cell set to fill. The generation counter restarts at 0.
func (g *Grid) Init(cols, rows int, fill bool) error {
	if cols <= 0 || rows <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "[Init] requested %dx%d", cols, rows)
	}
	g.cols = cols
	g.rows = rows
	g.generation = 0
	g.history = nil
	g.cells = newMatrix(cols, rows)
	if fill {
		for y := range rows {
			for x := range cols {
				g.cells[y][x] = true
			}
		}
	}
	return nil
}

func newMatrix(cols, rows int) [][]bool {
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	return cells
}

// Cols returns the width of the grid
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the height of the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Dimensions returns the width and height of the grid
func (g *Grid) Dimensions() (cols, rows int) {
	return g.cols, g.rows
}

// Generation returns how many steps have been applied since the last Init
func (g *Grid) Generation() int {
	return g.generation
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(x, y int, alive bool) error {
	if !g.inBounds(x, y) {
		return errors.Wrapf(ErrOutOfRange, "[Set] (%d,%d) on %dx%d grid", x, y, g.cols, g.rows)
	}
	g.cells[y][x] = alive
	return nil
}

// Get returns the state of a cell
func (g *Grid) Get(x, y int) (bool, error) {
	if !g.inBounds(x, y) {
		return false, errors.Wrapf(ErrOutOfRange, "[Get] (%d,%d) on %dx%d grid", x, y, g.cols, g.rows)
	}
	return g.cells[y][x], nil
}

// Alive reports the state of an in-range cell. Out-of-range coordinates read as dead.
func (g *Grid) Alive(x, y int) bool {
	return g.inBounds(x, y) && g.cells[y][x]
}

// NeighborCount counts living cells in the Moore neighborhood of (x, y). Offsets
// that leave the grid wrap once to the opposite edge, so on grids narrower than
// three cells a cell can see itself (a live 1x1 grid counts 8).
func (g *Grid) NeighborCount(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy

			if nx < 0 {
				nx = g.cols - 1
			} else if nx > g.cols-1 {
				nx = 0
			}
			if ny < 0 {
				ny = g.rows - 1
			} else if ny > g.rows-1 {
				ny = 0
			}

			if g.cells[ny][nx] {
				count++
			}
		}
	}
	return count
}

// Lives reports whether the cell at (x, y) is alive in the next generation
func (g *Grid) Lives(x, y int) bool {
	return rules.ApplyConwayRules(g.NeighborCount(x, y), g.cells[y][x])
}

// Step advances the grid by one generation in place. The next matrix is built
// completely from the current one before it replaces it.
func (g *Grid) Step() {
	next := newMatrix(g.cols, g.rows)
	g.fillRows(next, 0, g.rows)
	g.cells = next
	g.generation++
}

// fillRows writes the next state of rows [startRow, endRow) into dst
func (g *Grid) fillRows(dst [][]bool, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := range g.cols {
			dst[y][x] = g.Lives(x, y)
		}
	}
}

// NextGeneration returns a new grid one generation ahead of g, leaving g untouched.
// The result is drawn from pool when one is given and computed in row bands
// across all CPUs when parallel is set.
func (g *Grid) NextGeneration(pool *GridPool, parallel bool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.cols, g.rows)
	} else {
		next = &Grid{cols: g.cols, rows: g.rows, cells: newMatrix(g.cols, g.rows)}
	}

	if parallel {
		g.fillParallel(next.cells)
	} else {
		g.fillRows(next.cells, 0, g.rows)
	}

	next.generation = g.generation + 1
	next.history = append(next.history[:0], g.history...)
	return next
}

func (g *Grid) fillParallel(dst [][]bool) {
	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.rows + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			g.fillRows(dst, startRow, endRow)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		fmt.Printf("Error in parallel processing: %v\n", err)
	}
}

// Clone returns a deep copy of the grid, including its generation counter
func (g *Grid) Clone() *Grid {
	c := &Grid{
		cols:       g.cols,
		rows:       g.rows,
		generation: g.generation,
		cells:      newMatrix(g.cols, g.rows),
		history:    append([]string(nil), g.history...),
	}
	for y := range g.rows {
		copy(c.cells[y], g.cells[y])
	}
	return c
}

// Equal reports whether both grids have the same dimensions and cell states
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.cols != other.cols || g.rows != other.rows {
		return false
	}
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 hash of the current cell states
func (g *Grid) Hash() string {
	h := md5.New()
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.Hash())

	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant checks if the grid is static or cycling with a period of at most 3.
// It compares against history, so call it before UpdateHistory for the same state.
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	currentHash := g.Hash()
	for i := 1; i <= 3; i++ {
		if g.history[len(g.history)-i] == currentHash {
			return true
		}
	}
	return false
}

// Randomize sets each cell alive with the given probability
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for y := range g.rows {
		for x := range g.cols {
			g.cells[y][x] = rng.Float64() < density
		}
	}
	g.history = nil
}

// Clear kills every cell without touching the dimensions or generation
func (g *Grid) Clear() {
	for y := range g.rows {
		for x := range g.cols {
			g.cells[y][x] = false
		}
	}
	g.history = nil
}
