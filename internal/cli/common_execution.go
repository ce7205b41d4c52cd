package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaengine/internal/cache"
	"github.com/rshade/lcaengine/internal/config"
	"github.com/rshade/lcaengine/internal/factors"
	"github.com/rshade/lcaengine/internal/inventory"
	"github.com/rshade/lcaengine/internal/lca"
	"github.com/rshade/lcaengine/internal/logging"
	"github.com/rshade/lcaengine/internal/report"
	"github.com/rshade/lcaengine/internal/telemetry"
	"github.com/rshade/lcaengine/internal/valuation"
)

// runtime is the set of collaborators one command invocation works with.
type runtime struct {
	cfg      *config.Config
	metrics  *telemetry.Metrics
	provider *factors.Provider
	engine   *lca.Engine
}

// newRuntime builds the factor provider (built-in catalog plus any
// --catalog or factors.catalog overlay) and an engine that reports to a
// fresh metrics registry.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg := config.GetGlobalConfig()
	log := logging.ComponentLogger(logger, "runtime")

	cat := factors.DefaultCatalog()
	overlay, _ := cmd.Flags().GetString("catalog")
	if overlay == "" {
		overlay = cfg.Factors.Catalog
	}
	if overlay != "" {
		extra, err := factors.LoadCatalog(overlay)
		if err != nil {
			return nil, err
		}
		cat = cat.Merge(extra)
		log.Debug().Str("catalog", overlay).Msg("merged catalog overlay")
	}

	metrics := telemetry.New()
	provider := factors.NewProvider(cat,
		factors.WithLogger(logging.ComponentLogger(logger, "factors")),
		factors.WithFallbackObserver(metrics.ObserveFallback),
	)
	engine := lca.NewEngine(provider,
		lca.WithLogger(logging.ComponentLogger(logger, "engine")),
		lca.WithRecorder(metrics),
	)

	return &runtime{cfg: cfg, metrics: metrics, provider: provider, engine: engine}, nil
}

// region returns the flag value, or the configured default region.
func (r *runtime) region(flag string) string {
	if flag != "" {
		return flag
	}
	return r.cfg.Engine.DefaultRegion
}

// format parses the flag value, or the configured default format.
func (r *runtime) format(flag string) (report.Format, error) {
	if flag == "" {
		flag = r.cfg.Output.DefaultFormat
	}
	return report.ParseFormat(flag)
}

// newValuer wires the mock market source to the configured cache: an
// on-disk FileStore when valuation.persistent_cache is set, memory otherwise.
func (r *runtime) newValuer() (*valuation.Valuer, error) {
	v := r.cfg.Valuation

	var store cache.Store = cache.NewMemoryStore(r.cfg.CacheTTL())
	if v.PersistentCache {
		dir, err := r.cfg.GetCacheDir()
		if err != nil {
			return nil, err
		}
		fs, err := cache.NewFileStore(dir, r.cfg.CacheTTL())
		if err != nil {
			return nil, fmt.Errorf("opening price cache: %w", err)
		}
		// Quotes expired for a week are too old to serve as a stale fallback.
		if n, pruneErr := fs.Prune(cache.MaxTTLSeconds * time.Second); pruneErr != nil {
			logger.Warn().Err(pruneErr).Str("dir", dir).Msg("price cache prune failed")
		} else if n > 0 {
			logger.Debug().Int("removed", n).Str("dir", dir).Msg("pruned price cache")
		}
		store = fs
	}

	return valuation.NewValuer(valuation.NewMockPriceSource(),
		valuation.WithStore(store),
		valuation.WithTimeout(v.Timeout),
		valuation.WithMetal(v.Metal),
		valuation.WithLogger(logging.ComponentLogger(logger, "valuation")),
	), nil
}

// loadRecords reads an inventory file, or stdin when path is "-".
func loadRecords(cmd *cobra.Command, path string) ([]inventory.Record, error) {
	if path == "" {
		return nil, errors.New("an inventory file is required (-f)")
	}
	if path != "-" {
		return inventory.Load(path)
	}

	var in io.Reader = cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return nil, errors.New("refusing to read inventory from a terminal; pipe a file or use -f PATH")
	}
	return inventory.Decode(in, inventory.FormatYAML)
}
