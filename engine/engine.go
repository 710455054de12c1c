package engine

import (
	"math/rand"
	"sync"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/pattern"
	"github.com/sheikhrachel/go-life/utils"
)

// Engine owns the live grid. Every replacement of the grid (step, initialize,
// load) happens under the write lock with a fully built grid, so readers never
// observe a partial matrix.
type Engine struct {
	mu       sync.RWMutex
	grid     *model.Grid
	pool     *model.GridPool
	parallel bool
	rng      *rand.Rand
}

// New creates an engine with a blank grid sized from the config
func New(config utils.Config) (*Engine, error) {
	grid, err := model.NewGrid(config.Width, config.Height)
	if err != nil {
		return nil, errors.Wrap(err, "[New] failed to create grid")
	}

	e := &Engine{
		grid:     grid,
		parallel: config.UseParallel,
		rng:      rand.New(rand.NewSource(config.Seed)),
	}
	if config.UseMemoryPool {
		e.pool = model.NewGridPool()
	}
	return e, nil
}

// Initialize replaces the grid with a blank cols x rows grid at generation 0
func (e *Engine) Initialize(cols, rows int) error {
	grid, err := model.NewGrid(cols, rows)
	if err != nil {
		return err
	}
	e.swap(grid)
	return nil
}

// SetCell sets a single cell on the live grid
func (e *Engine) SetCell(x, y int, alive bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Set(x, y, alive)
}

// ToggleCell flips a single cell and returns its new state
func (e *Engine) ToggleCell(x, y int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	alive, err := e.grid.Get(x, y)
	if err != nil {
		return false, err
	}
	return !alive, e.grid.Set(x, y, !alive)
}

// GetCell reads a single cell from the live grid
func (e *Engine) GetCell(x, y int) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Get(x, y)
}

// Step advances the live grid by one generation
func (e *Engine) Step() {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.grid.NextGeneration(e.pool, e.parallel)
	model.GridToPool(e.grid, e.pool)
	e.grid = next
}

// Generation returns the number of steps since the grid was last initialized or loaded
func (e *Engine) Generation() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Generation()
}

// Dimensions returns the width and height of the live grid
func (e *Engine) Dimensions() (cols, rows int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Dimensions()
}

// Snapshot returns a copy of the live grid that stays valid across later steps
func (e *Engine) Snapshot() *model.Grid {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Clone()
}

// Load replaces the grid with the pattern at path, detecting the format from
// the extension. On error the current grid is left untouched.
func (e *Engine) Load(path string, padding int) error {
	return e.LoadFormat(pattern.FormatFromPath(path), path, padding)
}

// LoadFormat is Load with an explicit format
func (e *Engine) LoadFormat(format pattern.Format, path string, padding int) error {
	grid, err := pattern.Parse(format, path, padding)
	if err != nil {
		return errors.Wrap(err, "[LoadFormat] failed to load pattern")
	}
	e.swap(grid)
	return nil
}

// Save writes the live grid to path in the format implied by its extension
func (e *Engine) Save(path string) error {
	return pattern.Save(path, e.Snapshot())
}

// Randomize replaces the grid with a same-sized random one at generation 0
func (e *Engine) Randomize(density float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	grid, _ := model.NewGrid(e.grid.Dimensions())
	grid.Randomize(e.rng, density)
	e.grid = grid
}

// Observe records the current state for cycle detection and reports whether it
// repeats one of the last few generations.
func (e *Engine) Observe() (stagnant bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stagnant = e.grid.IsStagnant()
	e.grid.UpdateHistory()
	return stagnant
}

func (e *Engine) swap(grid *model.Grid) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid = grid
}
