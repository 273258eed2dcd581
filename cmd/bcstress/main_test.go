// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"code.hybscloud.com/bcoll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(t *testing.T, args ...string) *CLIConfig {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg, err := parseFlags(fs, args)
	require.NoError(t, err)
	require.NoError(t, validateFlags(cfg))
	return cfg
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg := testConfig(t)
	assert.Equal(t, 64, cfg.Capacity)
	assert.Equal(t, 4, cfg.Producers)
	assert.Equal(t, "blocking", cfg.Mode)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("BCSTRESS_CAPACITY", "7")
	t.Setenv("BCSTRESS_MODE", "within")
	t.Setenv("BCSTRESS_TIMEOUT", "250us")

	cfg := testConfig(t, "-producers=2")
	assert.Equal(t, 7, cfg.Capacity)
	assert.Equal(t, 2, cfg.Producers)

	mode, err := parseMode(cfg.Mode, cfg.Timeout)
	require.NoError(t, err)
	assert.Equal(t, bcoll.Within(250*time.Microsecond), mode)

	// Flags win over the environment.
	cfg = testConfig(t, "-capacity=3")
	assert.Equal(t, 3, cfg.Capacity)
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-capacity=0"}, "invalid capacity"},
		{[]string{"-consumers=0"}, "invalid consumers"},
		{[]string{"-peekers=-1"}, "invalid peekers"},
		{[]string{"-bulk-pct=101"}, "invalid bulk-pct"},
		{[]string{"-mode=eventually"}, "invalid mode"},
		{[]string{"-mode=within", "-timeout=0"}, "invalid timeout"},
		{[]string{"-log-level=verbose"}, "invalid log level"},
		{[]string{"-log-format=text"}, "invalid log format"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			cfg, err := parseFlags(fs, tt.args)
			require.NoError(t, err)
			err = validateFlags(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	logger, err := setupLogger("debug", "console", "run-1")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = setupLogger("loud", "json", "run-1")
	assert.Error(t, err)
}

func TestWorkloadChecksum(t *testing.T) {
	elements := 20000
	if bcoll.RaceEnabled {
		elements = 2000
	}
	for _, mode := range []string{"blocking", "immediate", "within"} {
		t.Run(mode, func(t *testing.T) {
			cfg := testConfig(t,
				"-capacity=5", "-producers=3", "-consumers=4", "-peekers=2",
				"-elements="+strconv.Itoa(elements), "-mode="+mode, "-timeout=100us",
				"-bulk-pct=30", "-spin=16", "-report-interval=0")

			w, err := newWorkload(cfg, zaptest.NewLogger(t))
			require.NoError(t, err)
			r, err := w.run(context.Background())
			require.NoError(t, err)

			n := uint64(elements)
			assert.Equal(t, n, r.Consumed)
			assert.Equal(t, n*(n-1)/2, r.Sum)
			assert.Equal(t, n, r.Stats.Adds)
			assert.Equal(t, n, r.Stats.Takes)
			assert.True(t, w.coll.IsCompleted())
		})
	}
}

// TestWorkloadImmediateSingleProc runs the non-blocking workload on one P.
// Workers back off on TimedOut, so failed attempts stay proportional to the
// element count instead of dominating the run.
func TestWorkloadImmediateSingleProc(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))
	elements := 2000
	cfg := testConfig(t,
		"-capacity=5", "-producers=3", "-consumers=4", "-peekers=0",
		"-elements="+strconv.Itoa(elements), "-mode=immediate",
		"-bulk-pct=0", "-report-interval=0")

	w, err := newWorkload(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	r, err := w.run(context.Background())
	require.NoError(t, err)

	n := uint64(elements)
	assert.Equal(t, n, r.Consumed)
	assert.Equal(t, n*(n-1)/2, r.Sum)
	assert.Less(t, r.Stats.AddTimeouts, 100*n)
	assert.Less(t, r.Stats.TakeTimeouts, 100*n)
	assert.Less(t, r.Elapsed, 30*time.Second)
}

func TestWorkloadEmpty(t *testing.T) {
	cfg := testConfig(t, "-elements=0", "-report-interval=0")
	w, err := newWorkload(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	r, err := w.run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, r.Consumed)
	assert.Zero(t, r.Want)
}

func TestWorkloadCancelled(t *testing.T) {
	cfg := testConfig(t, "-capacity=2", "-elements=100000000", "-report-interval=0")
	w, err := newWorkload(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = w.run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, w.coll.IsCompleted())
}

func TestMetricsEndpoint(t *testing.T) {
	c := bcoll.NewCollection[uint64](8)
	c.Add(1, bcoll.Immediate)

	m, err := startMetrics("127.0.0.1:0", c, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer m.shutdown(time.Second)

	resp, err := http.Get("http://" + m.addr.String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `bcoll_size{collection="bcstress"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRunVersion(t *testing.T) {
	require.NoError(t, run([]string{"-version"}))
	require.ErrorIs(t, run([]string{"-help"}), flag.ErrHelp)
}
