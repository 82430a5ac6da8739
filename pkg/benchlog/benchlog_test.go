package benchlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timingLog = `Description : road-128
start : 100
start_inter : 150
end_inter : 350
end_marshall : 400
start : 110
start_inter : 160
end_inter : 360
end_marshall : 410
-----
  250 ms average
-----
Description : pagelink-128
start : 200
start_inter : 220
end_inter : 300
end_marshall : 330
start : 210
start_inter : 230
end_inter : 310
end_marshall : 340
-----
  95 ms average
-----
`

const timingLogJoin = `Description : road-join
start : 100
join_start : 120
join_end : 140
start_inter : 150
end_inter : 350
end_marshall : 400
start : 110
join_start : 130
join_end : 155
start_inter : 160
end_inter : 360
end_marshall : 410
-----
  250 ms average
-----
`

func TestReadTimings(t *testing.T) {
	got, err := ReadTimingsRepeats(strings.NewReader(timingLog), false, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	road := got["road-128"]
	require.NotNil(t, road)
	assert.InDelta(t, 105, road["start"], 1e-9)
	assert.InDelta(t, 50, road["compile_time"], 1e-9)
	assert.InDelta(t, 200, road["inter_time"], 1e-9)
	assert.InDelta(t, 50, road["marshall_time"], 1e-9)
	assert.InDelta(t, 250, road["total"], 1e-9)
	assert.InDelta(t, 250, road["avg_ms"], 1e-9)
	assert.NotContains(t, road, "join_time")

	page := got["pagelink-128"]
	require.NotNil(t, page)
	assert.InDelta(t, 110, page["total"], 1e-9)
	assert.InDelta(t, 95, page["avg_ms"], 1e-9)
}

func TestReadTimingsWithJoin(t *testing.T) {
	got, err := ReadTimingsRepeats(strings.NewReader(timingLogJoin), true, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)

	road := got["road-join"]
	require.NotNil(t, road)
	assert.InDelta(t, 22.5, road["join_time"], 1e-9)
	assert.InDelta(t, 250, road["total"], 1e-9)
}

func TestReadTimingsTruncated(t *testing.T) {
	truncated := `Description : road
start : 100
`
	_, err := ReadTimingsRepeats(strings.NewReader(truncated), false, 2)
	assert.Error(t, err)
}

func TestReadTimingsMalformedTimestamp(t *testing.T) {
	bad := `Description : road
start : abc
start_inter : 1
end_inter : 2
end_marshall : 3
`
	_, err := ReadTimingsRepeats(strings.NewReader(bad), false, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestProject(t *testing.T) {
	metrics := map[string]Metrics{
		"road": {"total": 250, "compile_time": 50, "avg_ms": 250},
	}
	got := Project(metrics, []string{"total", "avg_ms"})
	assert.Equal(t, map[string]Metrics{
		"road": {"total": 250.0, "avg_ms": 250.0},
	}, got)
}

const orderLog = `OrderExperiment
Threads : 32
Insertions : 1000000
Order : 1
Vector([10, 20, 30])
Threads : 16
Insertions : 1000
Order : 2
42
`

func TestReadResults(t *testing.T) {
	got, err := ReadResults(strings.NewReader(orderLog), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, Result{
		Desc: []DescPair{{"Threads", 32}, {"Insertions", 1000000}, {"Order", 1}},
		Avg:  20,
	}, got[0])
	assert.Equal(t, 42, got[1].Avg)
}

func TestFilter(t *testing.T) {
	results, err := ReadResults(strings.NewReader(orderLog), 3)
	require.NoError(t, err)

	filtered := Filter(Filter(results, "Threads", 32), "Insertions", 1000000)
	require.Len(t, filtered, 1)
	assert.Equal(t, 20, filtered[0].Avg)

	assert.Empty(t, Filter(results, "Threads", 64))
}

func TestReadResultsMalformedVector(t *testing.T) {
	bad := `header
Threads : 1
Vector([x])
`
	_, err := ReadResults(strings.NewReader(bad), 1)
	assert.Error(t, err)
}
