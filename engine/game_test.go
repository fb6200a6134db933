package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/plus3/ootris/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, kinds ...piece.Kind) *Game {
	t.Helper()
	g := New(DefaultRules(), piece.NewSequence(kinds...))
	out := g.Start()
	require.Equal(t, OutcomeStarted, out.Kind)
	return g
}

// activeCells returns the board positions of the active piece.
func activeCells(g *Game) []piece.Point {
	cells := g.active.Shape.Cells()
	for i := range cells {
		cells[i].X += g.pos.X
		cells[i].Y += g.pos.Y
	}
	return cells
}

func requireActiveValid(t *testing.T, g *Game) {
	t.Helper()
	if !g.hasActive {
		return
	}
	for _, p := range activeCells(g) {
		require.True(t, g.board.InBounds(p.X, p.Y), "active cell %v out of bounds", p)
		require.False(t, g.board.At(p.X, p.Y).Filled(), "active cell %v overlaps the board", p)
	}
}

func TestStart(t *testing.T) {
	g := New(DefaultRules(), piece.NewSequence(piece.O, piece.T))
	assert.Equal(t, NotStarted, g.State())

	_, _, ok := g.Active()
	assert.False(t, ok)

	out := g.Start()
	assert.Equal(t, OutcomeStarted, out.Kind)
	assert.True(t, out.HasSpawned)
	assert.Equal(t, piece.O, out.Spawned)
	assert.False(t, out.GameOver)

	assert.Equal(t, Running, g.State())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 0, g.Lines())
	assert.Equal(t, 1, g.Level())

	active, pos, ok := g.Active()
	require.True(t, ok)
	assert.Equal(t, piece.O, active.Kind)
	assert.Equal(t, piece.Point{X: 3, Y: 0}, pos)

	next, ok := g.Next()
	require.True(t, ok)
	assert.Equal(t, piece.T, next.Kind)

	assert.Equal(t, OutcomeIgnored, g.Start().Kind, "start is only legal once")
}

func TestOperationsBeforeStartAreIgnored(t *testing.T) {
	g := New(DefaultRules(), piece.NewSequence(piece.T))

	assert.Equal(t, OutcomeIgnored, g.Tick().Kind)
	assert.Equal(t, OutcomeIgnored, g.Move(Left).Kind)
	assert.Equal(t, OutcomeIgnored, g.Rotate().Kind)
	assert.Equal(t, OutcomeIgnored, g.HardDrop().Kind)
	assert.Equal(t, OutcomeIgnored, g.TogglePause().Kind)
	assert.Equal(t, NotStarted, g.State())
}

func TestNewPanics(t *testing.T) {
	rules := DefaultRules()
	rules.LinesPerLevel = 0
	assert.Panics(t, func() { New(rules, piece.NewSequence(piece.I)) })
	assert.Panics(t, func() { New(DefaultRules(), nil) })
}

func TestOLocksAtBottom(t *testing.T) {
	g := newTestGame(t, piece.O, piece.T)

	var out Outcome
	moves := 0
	for {
		out = g.Move(Down)
		if out.Kind != OutcomeMoved {
			break
		}
		moves++
		requireActiveValid(t, g)
	}

	assert.Equal(t, 17, moves)
	assert.Equal(t, OutcomeLocked, out.Kind)
	assert.Zero(t, out.LinesCleared)
	assert.Zero(t, out.ScoreDelta)
	assert.Equal(t, 0, g.Score())

	board := g.Board()
	assert.Equal(t, 4, board.Count())
	for _, y := range []int{18, 19} {
		for x := range board.Width() {
			if x == 4 || x == 5 {
				assert.Equal(t, CellOf(piece.O), board.At(x, y), "cell %d,%d", x, y)
			} else {
				assert.Equal(t, Empty, board.At(x, y), "cell %d,%d", x, y)
			}
		}
	}

	assert.Equal(t, piece.T, out.Spawned)
	active, _, ok := g.Active()
	require.True(t, ok)
	assert.Equal(t, piece.T, active.Kind)
}

func TestSingleLineClear(t *testing.T) {
	g := newTestGame(t, piece.O, piece.T)
	for x := 2; x < 10; x++ {
		g.board.Set(x, 19, CellOf(piece.I))
	}

	for range 4 {
		require.Equal(t, OutcomeMoved, g.Move(Left).Kind)
	}
	assert.Equal(t, OutcomeBlocked, g.Move(Left).Kind)
	assert.Equal(t, -1, g.pos.X)

	var out Outcome
	for out = g.Tick(); out.Kind == OutcomeMoved; out = g.Tick() {
		requireActiveValid(t, g)
	}

	require.Equal(t, OutcomeLocked, out.Kind)
	assert.Equal(t, 1, out.LinesCleared)
	assert.Equal(t, []int{19}, out.ClearedRows)
	assert.Equal(t, 100*1, out.ScoreDelta)
	assert.Equal(t, 100, g.Score())
	assert.Equal(t, 1, g.Lines())
	assert.False(t, out.LevelUp)

	// The upper half of the O drops into the cleared row.
	want := NewBoard(10, 20)
	want.Set(0, 19, CellOf(piece.O))
	want.Set(1, 19, CellOf(piece.O))
	if diff := cmp.Diff(want.Rows(), g.board.Rows()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestClearMultipleRows(t *testing.T) {
	for n := 1; n <= 4; n++ {
		t.Run(string(rune('0'+n)), func(t *testing.T) {
			g := newTestGame(t, piece.I, piece.O)
			for y := 20 - n; y < 20; y++ {
				for x := 1; x < 10; x++ {
					g.board.Set(x, y, CellOf(piece.Z))
				}
			}

			rot := g.Rotate()
			require.Equal(t, OutcomeRotated, rot.Kind)
			assert.Equal(t, piece.Point{}, rot.Kick)

			for g.Move(Left).Kind == OutcomeMoved {
			}
			require.Equal(t, -2, g.pos.X, "vertical I sits in box column 2")

			out := g.HardDrop()
			require.Equal(t, OutcomeLocked, out.Kind)
			assert.Equal(t, 16, out.DropDistance)
			assert.Equal(t, n, out.LinesCleared)
			assert.Len(t, out.ClearedRows, n)
			assert.Equal(t, 16*2+DefaultRules().Scoring[n-1], out.ScoreDelta)
			assert.Equal(t, out.ScoreDelta, g.Score())
			assert.Equal(t, n, g.Lines())

			board := g.Board()
			assert.Equal(t, 20, board.Height())
			assert.Len(t, board.Rows(), 20)
			assert.Equal(t, 4-n, board.Count(), "leftover I cells")
			for y := 20 - (4 - n); y < 20; y++ {
				assert.Equal(t, CellOf(piece.I), board.At(0, y))
			}
		})
	}
}

func TestLevelUpUsesLevelBeforeClear(t *testing.T) {
	g := newTestGame(t, piece.O, piece.O)
	g.lines = 9
	g.level = g.rules.LevelFor(9)
	for x := 2; x < 10; x++ {
		g.board.Set(x, 19, CellOf(piece.L))
	}
	for g.Move(Left).Kind == OutcomeMoved {
	}

	out := g.HardDrop()
	require.Equal(t, 1, out.LinesCleared)
	assert.True(t, out.LevelUp)
	assert.Equal(t, 2, g.Level())
	assert.Equal(t, 10, g.Lines())
	assert.Equal(t, 17*2+100*1, out.ScoreDelta)
	assert.Equal(t, DefaultRules().DropInterval(2), g.DropInterval())
}

func TestSidewaysBlockedNeverLocks(t *testing.T) {
	g := newTestGame(t, piece.O, piece.T)
	for g.Move(Right).Kind == OutcomeMoved {
	}
	before := g.pos

	for range 3 {
		assert.Equal(t, OutcomeBlocked, g.Move(Right).Kind)
	}
	assert.Equal(t, before, g.pos)
	assert.Zero(t, g.board.Count())
}

func TestRotateKicksOffLeftWall(t *testing.T) {
	g := newTestGame(t, piece.T)
	require.Equal(t, OutcomeMoved, g.Move(Down).Kind)
	require.Equal(t, OutcomeMoved, g.Move(Down).Kind)

	for range 3 {
		out := g.Rotate()
		require.Equal(t, OutcomeRotated, out.Kind)
		require.Equal(t, piece.Point{}, out.Kick)
	}
	for g.Move(Left).Kind == OutcomeMoved {
	}
	require.Equal(t, -1, g.pos.X, "T pointing left is flush against the wall")

	out := g.Rotate()
	require.Equal(t, OutcomeRotated, out.Kind)
	assert.Equal(t, piece.Point{X: 1, Y: 0}, out.Kick)
	assert.Equal(t, 0, g.pos.X)
	assert.True(t, g.active.Shape.Equal(piece.Template(piece.T)))
	requireActiveValid(t, g)
}

func TestRotateRejectedWhenSurrounded(t *testing.T) {
	g := newTestGame(t, piece.T)
	for range 5 {
		g.Move(Down)
	}

	occupied := make(map[piece.Point]bool)
	for _, p := range activeCells(g) {
		occupied[p] = true
	}
	for y := range 20 {
		for x := range 10 {
			if !occupied[piece.Point{X: x, Y: y}] {
				g.board.Set(x, y, CellOf(piece.S))
			}
		}
	}

	shape := g.active.Shape.Clone()
	pos := g.pos

	out := g.Rotate()
	assert.Equal(t, OutcomeRejected, out.Kind)
	assert.False(t, out.Changed())
	assert.True(t, shape.Equal(g.active.Shape))
	assert.Equal(t, pos, g.pos)
}

func TestRotatePrefersKickOrder(t *testing.T) {
	g := newTestGame(t, piece.T)
	g.Move(Down)
	g.Move(Down)
	require.Equal(t, OutcomeRotated, g.Rotate().Kind) // pointing right, box cols 1-2

	// Block the unkicked target so the left kick is the first that fits.
	rotated := g.active.Shape.Rotate()
	for _, p := range rotated.Cells() {
		if !g.active.Shape[p.Y][p.X] {
			g.board.Set(g.pos.X+p.X, g.pos.Y+p.Y, CellOf(piece.J))
		}
	}

	out := g.Rotate()
	require.Equal(t, OutcomeRotated, out.Kind)
	assert.Equal(t, piece.Point{X: -1, Y: 0}, out.Kick)
	requireActiveValid(t, g)
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	g := newTestGame(t, piece.I, piece.O)
	g.board.Set(4, 2, CellOf(piece.J))

	out := g.HardDrop()
	require.Equal(t, OutcomeLocked, out.Kind)
	assert.Zero(t, out.DropDistance)
	assert.True(t, out.GameOver)
	assert.Equal(t, piece.O, out.Spawned)
	assert.Equal(t, GameOver, g.State())

	_, _, ok := g.Active()
	assert.False(t, ok, "the colliding piece is never placed")

	board := g.Board()
	assert.Equal(t, 5, board.Count())
	before := board.String()

	for _, op := range []func() Outcome{
		g.Tick, g.HardDrop, g.Rotate, g.TogglePause, g.Start,
		func() Outcome { return g.Move(Left) },
		func() Outcome { return g.Move(Down) },
	} {
		assert.Equal(t, OutcomeIgnored, op().Kind)
	}
	assert.Equal(t, before, g.Board().String())
	assert.Equal(t, GameOver, g.State())

	snap := g.Snapshot()
	assert.True(t, snap.GameOver)
	assert.True(t, snap.Started)
	assert.Nil(t, snap.Active)
}

func TestStackingToTheTopEndsGame(t *testing.T) {
	g := newTestGame(t, piece.O)

	var out Outcome
	drops := 0
	for g.State() == Running {
		out = g.HardDrop()
		drops++
		require.Less(t, drops, 20)
	}
	assert.True(t, out.GameOver)
	// Each O stacks two rows in columns 4-5; the ninth reaches row 2, where the next O spawns.
	assert.Equal(t, 9, drops)
}

func TestTogglePause(t *testing.T) {
	g := newTestGame(t, piece.T, piece.T)

	assert.Equal(t, OutcomePaused, g.TogglePause().Kind)
	assert.Equal(t, Paused, g.State())

	pos := g.pos
	assert.Equal(t, OutcomeIgnored, g.Tick().Kind)
	assert.Equal(t, OutcomeIgnored, g.Move(Left).Kind)
	assert.Equal(t, OutcomeIgnored, g.Rotate().Kind)
	assert.Equal(t, OutcomeIgnored, g.HardDrop().Kind)
	assert.Equal(t, pos, g.pos)

	snap := g.Snapshot()
	assert.True(t, snap.Paused)
	assert.True(t, snap.Started)

	assert.Equal(t, OutcomeResumed, g.TogglePause().Kind)
	assert.Equal(t, Running, g.State())
	assert.Equal(t, OutcomeMoved, g.Tick().Kind)
}

func TestHardDropScoresDistance(t *testing.T) {
	g := newTestGame(t, piece.T, piece.I)

	out := g.HardDrop()
	require.Equal(t, OutcomeLocked, out.Kind)
	// T occupies box rows 1-2; it lands with its bottom on row 19.
	assert.Equal(t, 17, out.DropDistance)
	assert.Equal(t, 34, out.ScoreDelta)
	assert.Equal(t, 34, g.Score())
}

func TestTickLockAwardsNothing(t *testing.T) {
	g := newTestGame(t, piece.T, piece.I)
	var out Outcome
	for out = g.Tick(); out.Kind == OutcomeMoved; out = g.Tick() {
	}
	assert.Equal(t, OutcomeLocked, out.Kind)
	assert.Zero(t, out.ScoreDelta)
	assert.Zero(t, g.Score())
}

// TestRandomPlayInvariants drives many games with random intents and checks
// the board, score and level invariants after every operation.
func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 17))

	for game := range 20 {
		gen, err := piece.NewGenerator(piece.PolicyBag, uint64(game))
		require.NoError(t, err)
		g := New(DefaultRules(), gen)
		g.Start()

		lastScore, lastLevel := 0, 1
		for step := 0; step < 3000 && g.State() != GameOver; step++ {
			var out Outcome
			switch rng.IntN(10) {
			case 0, 1:
				out = g.Move(Left)
			case 2, 3:
				out = g.Move(Right)
			case 4, 5:
				out = g.Rotate()
			case 6:
				out = g.HardDrop()
			case 7:
				out = g.Move(Down)
			default:
				out = g.Tick()
			}

			requireActiveValid(t, g)
			require.Equal(t, 20, g.board.Height())
			require.Equal(t, 10, g.board.Width())
			require.GreaterOrEqual(t, g.Score(), lastScore)
			require.GreaterOrEqual(t, out.ScoreDelta, 0)
			require.GreaterOrEqual(t, g.Level(), lastLevel)
			require.Equal(t, g.rules.LevelFor(g.Lines()), g.Level())
			for y := range 20 {
				require.False(t, g.board.RowFull(y), "full row %d survived resolution", y)
			}
			lastScore, lastLevel = g.Score(), g.Level()
		}
	}
}

func BenchmarkHardDrop(b *testing.B) {
	gen, _ := piece.NewGenerator(piece.PolicyBag, 1)
	g := New(DefaultRules(), gen)
	g.Start()

	b.ResetTimer()
	for range b.N {
		if g.State() == GameOver {
			g = New(DefaultRules(), gen)
			g.Start()
		}
		g.Rotate()
		g.Move(Left)
		g.HardDrop()
	}
}
