package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAndGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ColumnGenerated()
	m.ColumnGenerated()
	m.ColumnRestored()
	m.MeshRebuilt("solid")
	m.MeshRebuilt("transparent")
	m.MeshRebuilt("solid")
	m.Edit("delete")
	m.EditDropped()
	m.SetColumns(25, 7)
	m.SetRebuildQueue(3)
	m.ObserveFrame(3 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.columnsGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.columnsRestored))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.meshRebuilds.WithLabelValues("solid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.edits.WithLabelValues("delete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.editsDropped))
	assert.Equal(t, 25.0, testutil.ToFloat64(m.loadedColumns))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.cachedColumns))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rebuildQueue))

	n, err := testutil.GatherAndCount(reg, "blockworld_frame_update_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ColumnGenerated()
		m.MeshRebuilt("solid")
		m.SetColumns(1, 2)
		m.ObserveFrame(time.Millisecond)
	})
}

func TestProcessRSS(t *testing.T) {
	rss, err := ProcessRSS()
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}
	assert.Positive(t, rss)
}
