package briefing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cloudeye/orient/internal/claims"
	"github.com/cloudeye/orient/internal/config"
	"github.com/cloudeye/orient/internal/guidance"
	"github.com/cloudeye/orient/internal/probe"
	"github.com/cloudeye/orient/internal/progress"
)

// focusPreviewLimit caps the current-focus previews loaded per briefing.
const focusPreviewLimit = 8

// Engine runs the scan -> extract -> verify -> synthesize pipeline
// behind the cache. Construct one at startup and share it by reference;
// there is no ambient global state.
type Engine struct {
	cfg       *config.Config
	log       *zap.Logger
	prober    *probe.Prober
	store     *guidance.Store
	extractor *claims.Extractor
	cache     *Cache
}

// NewEngine wires the pipeline from validated configuration.
func NewEngine(cfg *config.Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:       cfg,
		log:       logger,
		prober:    probe.New(cfg, logger),
		store:     guidance.NewStore(cfg.LibrarianDB, cfg.Scan.StoreTimeoutSeconds*1000),
		extractor: claims.NewExtractor(cfg.ServiceNames()),
		cache:     NewCache(time.Duration(cfg.Cache.TTLSeconds)*time.Second, nil),
	}
}

// SetProgress attaches a progress reporter to the underlying prober.
func (e *Engine) SetProgress(r progress.Reporter) {
	e.prober.Reporter = r
}

// Briefing returns the current orientation briefing. Unless refresh is
// set, a cached briefing younger than the TTL is returned unchanged,
// original timestamp included.
func (e *Engine) Briefing(ctx context.Context, refresh bool) *Briefing {
	if !refresh {
		if b := e.cache.Get(); b != nil {
			e.log.Debug("briefing cache hit",
				zap.Time("generated_at", b.GeneratedAt))
			return b
		}
	}

	snap := e.prober.FullScan(ctx)

	window := time.Duration(e.cfg.Scan.RecentHours) * time.Hour
	entries, err := e.store.RecentEntries(ctx, window, e.cfg.Scan.FocusLimit)
	if err != nil {
		// Degraded, not fatal: a briefing with zero claims still orients.
		e.log.Warn("loading guidance entries", zap.Error(err))
	}

	extracted := e.extractor.ExtractAll(toClaimEntries(entries))
	verified := claims.Verify(extracted, snap)
	claims.Sort(verified)

	focus, err := e.store.CurrentFocus(ctx, focusPreviewLimit)
	if err != nil {
		e.log.Warn("loading focus previews", zap.Error(err))
	}
	essence, err := e.store.EssencePreviews(ctx, e.cfg.Scan.EssenceLimit)
	if err != nil {
		e.log.Warn("loading essence previews", zap.Error(err))
	}

	b := Synthesize(snap, verified, focus, essence, e.cfg.WorkOrder)
	e.cache.Put(b)

	e.log.Info("briefing synthesized",
		zap.String("warning_level", string(b.WarningLevel)),
		zap.Int("illusions", b.IllusionCount),
		zap.Int("claims", len(verified)))
	return b
}

func toClaimEntries(entries []guidance.Entry) []claims.Entry {
	out := make([]claims.Entry, len(entries))
	for i, e := range entries {
		out[i] = claims.Entry{ID: e.ID, Priority: e.Priority, Content: e.Content}
	}
	return out
}
