package probe

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cloudeye/orient/internal/config"
	"github.com/cloudeye/orient/internal/progress"
)

// Prober runs the full reality scan described by its configuration.
type Prober struct {
	cfg         *config.Config
	log         *zap.Logger
	httpClient  *http.Client
	storeBusyMS int
	now         func() time.Time

	// Reporter, when set, receives per-probe progress (used by the CLI).
	Reporter progress.Reporter
}

// New creates a Prober from validated configuration.
func New(cfg *config.Config, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		cfg: cfg,
		log: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Scan.HTTPTimeoutSeconds) * time.Second,
		},
		storeBusyMS: cfg.Scan.StoreTimeoutSeconds * 1000,
		now:         time.Now,
	}
}

// FullScan runs every probe and returns the composite snapshot,
// timestamped at start. Local probes (repositories, filesystem, stores)
// run sequentially; service probes fan out concurrently afterwards.
// No probe failure ever aborts the scan.
func (p *Prober) FullScan(ctx context.Context) *RealitySnapshot {
	start := p.now().UTC()

	repoNames := sortedKeys(p.cfg.Repos)
	total := len(repoNames) + 4 // repos + filesystem + two stores + service join
	if p.Reporter != nil {
		p.Reporter.Start(total)
	}
	step := 0
	report := func(msg string) {
		step++
		if p.Reporter != nil {
			p.Reporter.Update(step, msg)
		}
	}

	gitStates := make(map[string]GitState, len(repoNames))
	for _, name := range repoNames {
		gitStates[name] = p.probeRepository(name, p.cfg.Repos[name])
		report("repo " + name)
	}

	fsState := p.probeFilesystem(p.cfg.KeyFiles)
	report("key files")

	libState := p.probeLibrarian(ctx, p.cfg.LibrarianDB)
	report("librarian store")

	sapState := p.probeSapphire(ctx, p.cfg.SapphireDB)
	report("sapphire store")

	svcStates := p.probeServices(ctx, p.cfg.Services)
	report("services")

	if p.Reporter != nil {
		p.Reporter.Finish()
	}

	elapsed := p.now().UTC().Sub(start)
	snap := &RealitySnapshot{
		ScannedAt:      start,
		ScanDurationMS: roundMS(elapsed),
		Git:            gitStates,
		Services:       svcStates,
		Librarian:      libState,
		Sapphire:       sapState,
		Filesystem:     fsState,
	}

	p.log.Info("reality scan complete",
		zap.Float64("duration_ms", snap.ScanDurationMS),
		zap.Int("repos", len(gitStates)),
		zap.Int("services", len(svcStates)),
		zap.Strings("down_services", snap.DownServices()))

	return snap
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
