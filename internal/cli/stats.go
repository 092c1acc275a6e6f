package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/coregx/ustring"
	"github.com/coregx/ustring/internal/logging"
)

func newStatsCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "stats [PATTERN...]",
		Short: "Compile patterns and print the pattern cache metrics",
		Long: `Compile each PATTERN through the pattern cache, then print the cache
metrics in the form name{labels} value. Repeated patterns are cache hits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromContext(cmd.Context())
			for _, p := range args {
				if _, err := compilePattern(cmd, p, plain); err != nil {
					return err
				}
			}

			registry := prometheus.NewRegistry()
			if err := registry.Register(ustring.Collector()); err != nil {
				return err
			}
			families, err := registry.Gather()
			if err != nil {
				return err
			}
			for _, mf := range families {
				for _, m := range mf.GetMetric() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s%s %g\n", mf.GetName(), formatLabels(m.GetLabel()), metricValue(m))
				}
			}

			for _, s := range ustring.CacheStats() {
				logger.Debug("cache",
					logging.FieldCache, s.Name,
					logging.FieldCacheSize, s.Size,
					logging.FieldHits, s.Hits,
					logging.FieldMisses, s.Misses,
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&plain, "plain", "p", false, "compile the patterns as literal text")
	return cmd
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}

func metricValue(m *dto.Metric) float64 {
	switch {
	case m.GetGauge() != nil:
		return m.GetGauge().GetValue()
	case m.GetCounter() != nil:
		return m.GetCounter().GetValue()
	case m.GetUntyped() != nil:
		return m.GetUntyped().GetValue()
	}
	return 0
}
