package renamer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/core"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/testutil"
)

func TestPoolTake(t *testing.T) {
	a := testutil.Candidate(t, "Alder")
	b := testutil.Candidate(t, "Birch")
	pool := NewPool([]*core.Candidate{a, b})
	require.Equal(t, 2, pool.Len())

	assert.True(t, pool.Take(a))
	assert.True(t, a.Used())
	assert.Equal(t, 1, pool.Len())
	assert.Equal(t, []string{"Birch"}, pool.Remaining())
	assert.Equal(t, []*core.Candidate{a}, pool.Taken())

	assert.False(t, pool.Take(a), "a candidate can only be taken once")
	assert.Equal(t, 1, pool.Len())
}

func TestPoolSkipsUsedAndNil(t *testing.T) {
	used := testutil.Candidate(t, "Used")
	used.MarkUsed()
	fresh := testutil.Candidate(t, "Fresh")

	pool := NewPool([]*core.Candidate{used, nil, fresh})
	assert.Equal(t, []string{"Fresh"}, pool.Remaining())
}

func TestPoolApplicable(t *testing.T) {
	sea := testutil.Candidate(t, "Whale Road", "sea")
	inland := testutil.Candidate(t, "Heartmoor", "inland")
	anywhere := testutil.Candidate(t, "Greyfield")
	pool := NewPool([]*core.Candidate{sea, inland, anywhere})

	seaProvince := core.MaskOf(core.Sea)
	assert.Equal(t, []*core.Candidate{sea, inland, anywhere}, pool.Applicable(seaProvince, []core.Mask{0}))
	assert.Equal(t, []*core.Candidate{sea, anywhere}, pool.Applicable(seaProvince, []core.Mask{seaProvince}))
	assert.Equal(t, []*core.Candidate{inland, anywhere}, pool.Applicable(0, nil))

	pool.Take(anywhere)
	assert.Equal(t, []*core.Candidate{inland}, pool.Applicable(0, nil))
}
