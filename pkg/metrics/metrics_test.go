package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	m := New()

	m.PageFetched(25)
	m.PageFetched(10)
	m.PageFailed("challenge")
	m.CycleFinished("completed", 35, 35)
	m.CycleFinished("aborted", 0, 0)
	m.MasterSize(35, 100)
	m.CheckpointWritten(true)
	m.CheckpointWritten(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pages))
	assert.Equal(t, 35.0, testutil.ToFloat64(m.users))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pageFailures.WithLabelValues("challenge")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles.WithLabelValues("aborted")))
	assert.Equal(t, 35.0, testutil.ToFloat64(m.masterSize))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.targetSize))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkpoints.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkpoints.WithLabelValues("error")))
	assert.Greater(t, testutil.ToFloat64(m.lastCheckpoint), 0.0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.MasterSize(7, 10)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "followsnap_master_set_size 7")
}

func TestServe(t *testing.T) {
	m := New()
	m.PageFetched(3)

	ctx, cancel := context.WithCancel(context.Background())
	addr, done, err := m.Serve(ctx, "127.0.0.1:0")
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.Contains(string(body), "followsnap_pages_fetched_total 1"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeBadAddress(t *testing.T) {
	_, _, err := New().Serve(context.Background(), "256.0.0.1:bad")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	r.PageFetched(1)
	r.PageFailed("network")
	r.CycleFinished("completed", 1, 1)
	r.MasterSize(1, 1)
	r.CheckpointWritten(true)
}
