package ustring

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/ustring/meta"
)

func TestConfigure(t *testing.T) {
	defer func() { require.NoError(t, Configure(DefaultConfig())) }()

	bad := DefaultConfig()
	bad.CacheStrategy = "FIFO"
	var ce *meta.ConfigError
	require.ErrorAs(t, Configure(bad), &ce)

	cfg := DefaultConfig()
	cfg.CacheSize = 2
	cfg.CacheStrategy = meta.StrategyLFU
	require.NoError(t, Configure(cfg))

	for _, p := range []string{"a", "b", "c", "d"} {
		_, err := Compile(p)
		require.NoError(t, err)
	}
	stats := CacheStats()
	require.Len(t, stats, 2)
	assert.LessOrEqual(t, stats[0].Size, 2)
}

func TestConfigureDisablesFastPaths(t *testing.T) {
	defer func() { require.NoError(t, Configure(DefaultConfig())) }()

	cfg := DefaultConfig()
	cfg.EnablePrefilter = false
	cfg.EnablePlainFastPath = false
	require.NoError(t, Configure(cfg))

	p := MustCompile("hello")
	assert.Equal(t, meta.UseBacktrack, p.Strategy())

	out, n, err := p.GSub("hello, hello", "bye", -1)
	require.NoError(t, err)
	assert.Equal(t, "bye, bye", out)
	assert.Equal(t, 2, n)
}

func TestCollectorFollowsConfigure(t *testing.T) {
	defer func() { require.NoError(t, Configure(DefaultConfig())) }()
	require.NoError(t, Configure(DefaultConfig()))

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(Collector()))

	_, err := Compile("x+")
	require.NoError(t, err)
	_, err = Compile("x+")
	require.NoError(t, err)

	want := `
# HELP ustring_pattern_cache_hits_total Pattern cache lookups served from the cache.
# TYPE ustring_pattern_cache_hits_total counter
ustring_pattern_cache_hits_total{cache="pattern"} 1
ustring_pattern_cache_hits_total{cache="plain"} 0
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "ustring_pattern_cache_hits_total"))

	require.NoError(t, Configure(DefaultConfig()))
	want = strings.ReplaceAll(want, "} 1", "} 0")
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "ustring_pattern_cache_hits_total"))
}
