// internal/commits/stats_test.go
package commits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/model"
)

func TestPeriodOf(t *testing.T) {
	cases := map[float64]Period{
		0:     Night,
		4.99:  Night,
		5:     Morning,
		6:     Morning,
		11.99: Morning,
		12:    Afternoon,
		14:    Afternoon,
		17:    Evening,
		19.5:  Evening,
		21:    Night,
		23.9:  Night,
	}
	for hour, want := range cases {
		assert.Equal(t, want, PeriodOf(hour), "hour %v", hour)
	}
}

func TestComputeStats(t *testing.T) {
	// 2025-02-01 is a Saturday.
	long := row("b", "big.js", "js", base.Add(14*time.Hour))
	long.Length.Int64 = 120
	long.Depth.Int64 = 6
	rows := []model.LineChange{
		row("a", "index.html", "html", base.Add(9*time.Hour)),
		row("b", "big.js", "js", base.Add(14*time.Hour)),
		row("b", "big.js", "js", base.Add(14*time.Hour)),
		long,
	}
	set, err := Aggregate(rows, Options{})
	require.NoError(t, err)

	st := ComputeStats(set)

	assert.Equal(t, 4, st.TotalLines)
	assert.Equal(t, 2, st.Commits)
	assert.Equal(t, 2, st.Files)
	assert.Equal(t, int64(6), st.MaxDepth)
	assert.Equal(t, int64(120), st.LongestLine)
	assert.Equal(t, 3, st.MaxLines)
	assert.InDelta(t, 2.0, st.AverageFileLength, 1e-9)
	assert.InDelta(t, 52.5, st.AverageLineLength, 1e-9)
	assert.Equal(t, Afternoon, st.BusiestPeriod)
	assert.Equal(t, "Saturday", st.BusiestWeekday)

	formatted := st.Formatted()
	require.NotEmpty(t, formatted)
	assert.Equal(t, Stat{Label: "Total LOC", Value: "4"}, formatted[0])
	assert.Equal(t, []string{"big.js", "index.html"}, TopFiles(set, 0))
	assert.Equal(t, []string{"big.js"}, TopFiles(set, 1))
}

func TestComputeStats_Empty(t *testing.T) {
	set, err := Aggregate(nil, Options{})
	require.NoError(t, err)

	st := ComputeStats(set)
	assert.Zero(t, st.TotalLines)
	assert.Empty(t, st.BusiestPeriod)
	assert.Empty(t, st.BusiestWeekday)
	assert.Len(t, st.Formatted(), 9)
}
