package solver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/tubesort/liquid"
	"github.com/katalvlaran/tubesort/solver"
	"github.com/katalvlaran/tubesort/verify"
)

// SolveSuite exercises Solve on fixed puzzles with known answers.
type SolveSuite struct {
	suite.Suite
}

// TestTwoTubes: A=[O], B=[O,O,O] is solved by pouring A into B.
func (s *SolveSuite) TestTwoTubes() {
	res, err := solver.Solve(twoTubes())
	require.NoError(s.T(), err)
	require.True(s.T(), res.Solved)
	require.Equal(s.T(), []liquid.Action{act(0, 1)}, res.Actions)
	require.True(s.T(), res.Final.Tube(0).IsEmpty())
	require.Equal(s.T(), liquid.MustTube(O, O, O, O), res.Final.Tube(1))
	require.True(s.T(), res.Final.IsSolved())
	require.Equal(s.T(), 3, res.Explored)
	require.Equal(s.T(), 2, res.Expanded)
}

// TestAlreadySolved returns zero actions and success, not the unsolvable outcome.
func (s *SolveSuite) TestAlreadySolved() {
	initial := liquid.NewState(liquid.MustTube(O, O, O, O), liquid.EmptyTube(), liquid.MustTube(B, B, B, B))
	res, err := solver.Solve(initial)
	require.NoError(s.T(), err)
	require.True(s.T(), res.Solved)
	require.NotNil(s.T(), res.Actions)
	require.Empty(s.T(), res.Actions)
	require.True(s.T(), res.Final.Equal(initial))
	require.Equal(s.T(), 1, res.Expanded)
}

// TestNoTubes treats the empty state as solved.
func (s *SolveSuite) TestNoTubes() {
	res, err := solver.Solve(liquid.State{})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Solved)
	require.Zero(s.T(), res.Moves())
}

// TestInterleaved checks the optimal length and the tie-broken path.
func (s *SolveSuite) TestInterleaved() {
	res, err := solver.Solve(interleaved())
	require.NoError(s.T(), err)
	require.True(s.T(), res.Solved)
	want := []liquid.Action{act(0, 2), act(1, 0), act(1, 2), act(0, 1), act(0, 2), act(1, 0), act(1, 2)}
	require.Equal(s.T(), want, res.Actions)
	require.Equal(s.T(), 253, res.Explored)
	require.Equal(s.T(), 199, res.Expanded)
	require.True(s.T(), res.Final.Equal(liquid.NewState(
		liquid.MustTube(O, O, O, O), liquid.EmptyTube(), liquid.MustTube(B, B, B, B), liquid.EmptyTube(),
	)))
}

// TestThreeColors checks a ten-pour puzzle.
func (s *SolveSuite) TestThreeColors() {
	res, err := solver.Solve(threeColors())
	require.NoError(s.T(), err)
	require.True(s.T(), res.Solved)
	require.Equal(s.T(), 10, res.Moves())
	want := []liquid.Action{
		act(0, 3), act(2, 0), act(1, 2), act(1, 3), act(0, 1),
		act(2, 0), act(2, 3), act(1, 2), act(0, 1), act(0, 3),
	}
	require.Equal(s.T(), want, res.Actions)
	require.Equal(s.T(), 1796, res.Explored)
}

// TestUnsolvable covers a deadlock and an unbalanced puzzle.
func (s *SolveSuite) TestUnsolvable() {
	for name, initial := range map[string]liquid.State{
		"deadlocked": deadlocked(),
		"unbalanced": unbalanced(),
	} {
		res, err := solver.Solve(initial)
		require.NoError(s.T(), err, name)
		require.False(s.T(), res.Solved, name)
		require.Nil(s.T(), res.Actions, name)
		require.True(s.T(), res.Final.Equal(initial), name)
	}
}

// TestOptimality proves no shorter solution exists for each fixture.
func (s *SolveSuite) TestOptimality() {
	for name, initial := range map[string]liquid.State{
		"twoTubes":    twoTubes(),
		"interleaved": interleaved(),
		"threeColors": threeColors(),
	} {
		res, err := solver.Solve(initial)
		require.NoError(s.T(), err, name)
		require.True(s.T(), res.Solved, name)
		require.NoError(s.T(), verify.Check(initial, res), name)

		shorter, err := verify.SolvableWithin(initial, res.Moves()-1)
		require.NoError(s.T(), err, name)
		require.False(s.T(), shorter, "%s: a solution shorter than %d exists", name, res.Moves())
	}
}

// TestPath replays the solution into intermediate states.
func (s *SolveSuite) TestPath() {
	initial := interleaved()
	res, err := solver.Solve(initial)
	require.NoError(s.T(), err)

	path, err := res.Path(initial)
	require.NoError(s.T(), err)
	require.Len(s.T(), path, res.Moves()+1)
	require.True(s.T(), path[0].Equal(initial))
	require.True(s.T(), path[len(path)-1].Equal(res.Final))

	_, err = res.Path(twoTubes())
	require.ErrorIs(s.T(), err, liquid.ErrActionIndex)
}

func TestSolveSuite(t *testing.T) {
	suite.Run(t, new(SolveSuite))
}

// TestSolve_OptionErrors verifies invalid options are rejected.
func TestSolve_OptionErrors(t *testing.T) {
	if _, err := solver.Solve(twoTubes(), solver.WithMaxDepth(-1)); !errors.Is(err, solver.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
	if _, err := solver.Solve(twoTubes(), solver.WithMaxStates(-5)); !errors.Is(err, solver.ErrOptionViolation) {
		t.Errorf("negative states: want ErrOptionViolation, got %v", err)
	}
}

// TestSolve_MaxDepth stops short of a seven-pour solution.
func TestSolve_MaxDepth(t *testing.T) {
	res, err := solver.Solve(interleaved(), solver.WithMaxDepth(6))
	require.NoError(t, err)
	require.False(t, res.Solved)

	res, err = solver.Solve(interleaved(), solver.WithMaxDepth(7))
	require.NoError(t, err)
	require.True(t, res.Solved)
	require.Equal(t, 7, res.Moves())
}

// TestSolve_MaxStates aborts once the explored set is full.
func TestSolve_MaxStates(t *testing.T) {
	_, err := solver.Solve(twoTubes(), solver.WithMaxStates(2))
	require.ErrorIs(t, err, solver.ErrStateLimit)

	res, err := solver.Solve(twoTubes(), solver.WithMaxStates(3))
	require.NoError(t, err)
	require.True(t, res.Solved)

	_, err = solver.Solve(interleaved(), solver.WithMaxStates(10))
	require.ErrorIs(t, err, solver.ErrStateLimit)
}

// TestSolve_Hooks asserts hook order on the two-tube puzzle.
func TestSolve_Hooks(t *testing.T) {
	var enq, deq, vis []int
	_, err := solver.Solve(twoTubes(),
		solver.WithOnEnqueue(func(_ liquid.State, d int) { enq = append(enq, d) }),
		solver.WithOnDequeue(func(_ liquid.State, d int) { deq = append(deq, d) }),
		solver.WithOnVisit(func(_ liquid.State, d int) error { vis = append(vis, d); return nil }),
	)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 1}, enq)
	require.Equal(t, []int{0, 1}, deq)
	require.Equal(t, []int{0, 1}, vis)
}

// TestSolve_OnVisitError aborts with the wrapped hook error.
func TestSolve_OnVisitError(t *testing.T) {
	boom := errors.New("boom")
	res, err := solver.Solve(interleaved(), solver.WithOnVisit(func(_ liquid.State, d int) error {
		if d == 2 {
			return boom
		}
		return nil
	}))
	require.ErrorIs(t, err, boom)
	require.Nil(t, res)
}

// TestSolve_Cancellation verifies that a cancelled context halts the search.
func TestSolve_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := solver.Solve(threeColors(), solver.WithContext(ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("Cancellation: want context.Canceled, got %v", err)
	}
}

// TestSolve_ConcurrentSafety runs independent searches in parallel.
func TestSolve_ConcurrentSafety(t *testing.T) {
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			res, err := solver.Solve(interleaved())
			if err == nil && res.Moves() != 7 {
				err = errors.New("wrong move count")
			}
			errs <- err
		}()
	}
	for i := 0; i < 4; i++ {
		if err := <-errs; err != nil {
			t.Errorf("Concurrent run #%d: %v", i, err)
		}
	}
}

// TestPath_ForeignState replays onto any state where the pours stay legal.
func TestPath_ForeignState(t *testing.T) {
	res, err := solver.Solve(twoTubes())
	require.NoError(t, err)
	require.Equal(t, 1, res.Moves())

	other := liquid.NewState(liquid.MustTube(O), liquid.MustTube(O))
	path, err := res.Path(other)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.False(t, path[1].Equal(res.Final))
	assert.True(t, path[1].Equal(liquid.NewState(liquid.EmptyTube(), liquid.MustTube(O, O))))
}
