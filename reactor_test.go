package reactor_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/reactor"
	"github.com/flowgraph/reactor/graph"
)

// Seed scenario 1: linear chain.
func TestLinearChain(t *testing.T) {
	eng := reactor.New(nil)
	a := reactor.Var(eng, 1)
	b := reactor.Var(eng, 3.14)

	s, err := reactor.Calc2(eng, a, b, func(x int, y float64) string {
		return fmt.Sprintf("%d%f", x, y)
	})
	require.NoError(t, err)

	tt, err := reactor.Calc2(eng, a, s, func(x int, y string) string {
		return fmt.Sprintf("%d%s", x, y)
	})
	require.NoError(t, err)

	assert.Equal(t, "13.140000", s.Get())
	assert.Equal(t, "113.140000", tt.Get())

	a.Set(2)
	assert.Equal(t, "23.140000", s.Get())
	assert.Equal(t, "223.140000", tt.Get())
}

// Seed scenario 2: diamond with repeat.
func TestDiamondWithRepeat(t *testing.T) {
	eng := reactor.New(nil)
	a := reactor.Var(eng, 1)

	aEvals, bEvals, dsEvals := 0, 0, 0

	capA, err := reactor.Calc(eng, func() int {
		aEvals++
		return a.Get() + 1
	})
	require.NoError(t, err)

	capB, err := reactor.Calc(eng, func() int {
		bEvals++
		return a.Get() + 2
	})
	require.NoError(t, err)

	ds, err := reactor.Calc(eng, func() int {
		dsEvals++
		return capA.Get() + capB.Get() + 5
	})
	require.NoError(t, err)

	aEvals, bEvals, dsEvals = 0, 0, 0
	a.Set(2)

	assert.Equal(t, 1, aEvals)
	assert.Equal(t, 1, bEvals)
	assert.Equal(t, 1, dsEvals)
	assert.Equal(t, (2+1)+(2+2)+5, ds.Get())
}

// Seed scenario 3: cycle rejection.
func TestCycleRejection(t *testing.T) {
	eng := reactor.New(nil)
	a := reactor.Var(eng, 1)
	b := reactor.Var(eng, 2)
	c := reactor.Var(eng, 3)

	dsA, err := reactor.Calc1(eng, b, func(x int) int { return x + 1 })
	require.NoError(t, err)
	dsB, err := reactor.Calc1(eng, c, func(x int) int { return x + 1 })
	require.NoError(t, err)
	dsC, err := reactor.Calc1(eng, a, func(x int) int { return x + 1 })
	require.NoError(t, err)

	err = dsC.Rebind(func() int { return dsA.Get() + 1 })
	require.NoError(t, err)

	err = dsA.Rebind(func() int { return dsC.Get() + 1 })
	var cycleErr *graph.CycleDependencyError
	require.ErrorAs(t, err, &cycleErr)

	// prior binding preserved: dsA still reads b, not dsC.
	b.Set(5)
	assert.Equal(t, 6, dsA.Get())
	assert.NotNil(t, dsB)
}

// Seed scenario 4: threshold trigger.
func TestThresholdTrigger(t *testing.T) {
	eng := reactor.New(nil)
	p := reactor.Var(eng, 100.0)

	tr, err := reactor.Calc1(eng, p, func(v float64) string {
		if v > 105.0 {
			return "sell"
		}
		return "hold"
	})
	require.NoError(t, err)
	reactor.SetThreshold(tr, func() bool {
		v := p.Get()
		return v > 105.0 || v < 95.0
	}, false)

	p.Set(101.0)
	assert.Equal(t, "hold", tr.Get())

	p.Set(106.0)
	assert.Equal(t, "sell", tr.Get())
}

// Seed scenario 5: cascade close.
func TestCascadeClose(t *testing.T) {
	eng := reactor.New(nil)
	a := reactor.Var(eng, 1)
	dsA, err := reactor.Calc1(eng, a, func(x int) int { return x + 1 })
	require.NoError(t, err)
	dsB, err := reactor.Calc1(eng, dsA, func(x int) int { return x + 1 })
	require.NoError(t, err)
	dsC, err := reactor.Calc1(eng, dsB, func(x int) int { return x + 1 })
	require.NoError(t, err)
	dsD, err := reactor.Calc1(eng, dsC, func(x int) int { return x + 1 })
	require.NoError(t, err)

	b := reactor.Var(eng, 1)
	dsF, err := reactor.Calc1(eng, b, func(x int) int { return x + 1 })
	require.NoError(t, err)
	dsG, err := reactor.Calc1(eng, dsF, func(x int) int { return x + 1 })
	require.NoError(t, err)

	dsA.Close()

	assert.False(t, dsA.Valid())
	assert.False(t, dsB.Valid())
	assert.False(t, dsC.Valid())
	assert.False(t, dsD.Valid())
	// dsF/dsG sit in an unrelated b->dsF->dsG chain, never an observer of
	// dsA, so closing dsA must leave them untouched.
	assert.True(t, dsF.Valid())
	assert.True(t, dsG.Valid())
}

// TestCascadeCloseDiamond exercises invariant I5 on a diamond: S->A, S->B,
// A->J, B->J. Closing A must also close J even though J still has B as a
// live dependent at the moment A closes, since J is an observer-transitive
// node reached from A (every observer is closed, unconditionally).
func TestCascadeCloseDiamond(t *testing.T) {
	eng := reactor.New(nil)
	s := reactor.Var(eng, 1)

	a, err := reactor.Calc1(eng, s, func(x int) int { return x + 1 })
	require.NoError(t, err)
	b, err := reactor.Calc1(eng, s, func(x int) int { return x + 2 })
	require.NoError(t, err)
	j, err := reactor.Calc2(eng, a, b, func(x, y int) int { return x + y })
	require.NoError(t, err)

	a.Close()

	assert.False(t, a.Valid())
	assert.False(t, j.Valid(), "J is an observer of A and must cascade-close with it")
	assert.True(t, b.Valid(), "B has no path through A and must survive")
	assert.True(t, s.Valid())
}

// Seed scenario 6: last-value strategy on death.
func TestLastValueStrategyOnDeath(t *testing.T) {
	eng := reactor.New(nil)
	a := reactor.Var(eng, 1)

	var temp *reactor.Handle[int]
	var b *reactor.Handle[int]
	func() {
		inner, err := reactor.Calc1(eng, a, func(x int) int { return x })
		require.NoError(t, err)
		inner.SetName("temp")
		reactor.UseLastValue(inner)
		temp = inner.Clone()

		bb, err := reactor.Calc1(eng, temp, func(x int) int { return x })
		require.NoError(t, err)
		b = bb
		assert.Equal(t, 1, b.Get())

		inner.Release()
	}()

	require.True(t, temp.Valid(), "KeepComputing/FreezeLastValue keeps temp open so b's binding stays valid")
	temp.Release()

	assert.Equal(t, 1, b.Get())
	a.Set(2)
	assert.Equal(t, 1, b.Get())
}
