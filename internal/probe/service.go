package probe

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// versionKeys are the health-body fields a service may report its
// version under, checked in order.
var versionKeys = []string{"version", "v", "app_version"}

const maxErrLen = 120

// probeService issues one bounded GET to <url>/health. Any response at
// all counts as reachable; network failures are truncated onto Err.
func (p *Prober) probeService(ctx context.Context, name, baseURL string) ServiceState {
	st := ServiceState{Name: name, URL: baseURL}
	healthURL := strings.TrimRight(baseURL, "/") + "/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		st.Err = truncateErr(err)
		return st
	}

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		st.Err = truncateErr(err)
		return st
	}
	defer resp.Body.Close()

	st.Reachable = true
	st.StatusCode = resp.StatusCode
	st.ResponseMS = roundMS(time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return st
	}

	var detail map[string]any
	if json.Unmarshal(body, &detail) == nil && detail != nil {
		st.HealthDetail = detail
		for _, key := range versionKeys {
			if v, ok := detail[key].(string); ok && v != "" {
				st.Version = v
				break
			}
		}
	}

	return st
}

// probeServices dispatches one probe per configured service
// concurrently and joins all results. A failing probe records its own
// error state and never affects its siblings.
func (p *Prober) probeServices(ctx context.Context, services map[string]string) map[string]ServiceState {
	names := sortedKeys(services)
	results := make([]ServiceState, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			results[i] = p.probeService(ctx, name, services[name])
			return nil
		})
	}
	// Probes report failure through their state, never through an
	// error, so the join always waits for every sibling.
	_ = g.Wait()

	out := make(map[string]ServiceState, len(names))
	for i, name := range names {
		out[name] = results[i]
		if !results[i].Reachable {
			p.log.Debug("service unreachable",
				zap.String("service", name),
				zap.String("error", results[i].Err))
		}
	}
	return out
}

func truncateErr(err error) string {
	msg := err.Error()
	if len(msg) > maxErrLen {
		return msg[:maxErrLen]
	}
	return msg
}

func roundMS(d time.Duration) float64 {
	return math.Round(float64(d.Microseconds())/100) / 10
}
