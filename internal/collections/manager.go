// Package collections reconciles configured smart collections against the
// media server: evaluate each filter over its library catalog, diff the
// result against current membership, and apply the delta.
package collections

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/collectarr/internal/library"
	"github.com/vmunix/collectarr/internal/query"
)

// Config for the manager.
type Config struct {
	DryRun      bool
	Concurrency int // collections reconciled in parallel, min 1
}

// Manager drives reconciliation passes.
type Manager struct {
	gateway     Gateway
	log         *slog.Logger
	dryRun      bool
	concurrency int
}

// NewManager creates a manager that reconciles through gw.
func NewManager(gw Gateway, cfg Config, log *slog.Logger) *Manager {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Manager{
		gateway:     gw,
		log:         log.With("component", "collections"),
		dryRun:      cfg.DryRun,
		concurrency: concurrency,
	}
}

// catalogKey identifies one snapshot: a source library and the scope
// requested from it.
type catalogKey struct {
	source string
	scope  library.Scope
}

type catalog struct {
	items []library.Item
	scope library.Scope // effective scope after library type derivation
	err   error
}

// Run reconciles every spec and reports per-collection outcomes. Failures
// are isolated: one broken collection never stops the others. Cancellation
// is honored between collections; a server call in flight is finished, not
// interrupted.
func (m *Manager) Run(ctx context.Context, specs []Spec) *Report {
	report := &Report{
		Started: time.Now(),
		DryRun:  m.dryRun,
		Results: make([]Result, len(specs)),
	}
	m.log.Info("reconciliation started", "collections", len(specs), "dry_run", m.dryRun)

	catalogs := m.fetchCatalogs(ctx, specs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i := range specs {
		if err := ctx.Err(); err != nil {
			report.Results[i] = Result{Name: specs[i].Name, Status: StatusSkipped, Err: err}
			continue
		}
		g.Go(func() error {
			report.Results[i] = m.reconcile(gctx, specs[i], catalogs)
			return nil
		})
	}
	_ = g.Wait()

	report.Finished = time.Now()
	m.log.Info("reconciliation finished",
		"collections", len(specs),
		"failed", report.Failed(),
		"duration_ms", report.Duration().Milliseconds(),
	)
	return report
}

// fetchCatalogs takes one snapshot per distinct source and scope before
// reconciliation starts. A failed fetch is recorded so every dependent
// collection can report it; membership is never diffed against partial
// data.
func (m *Manager) fetchCatalogs(ctx context.Context, specs []Spec) map[catalogKey]*catalog {
	catalogs := make(map[catalogKey]*catalog)
	for _, spec := range specs {
		if spec.Err != nil {
			continue
		}
		key := catalogKey{source: spec.From, scope: spec.Scope}
		if _, ok := catalogs[key]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			catalogs[key] = &catalog{err: err}
			continue
		}
		items, effective, err := m.gateway.Catalog(ctx, spec.From, spec.Scope)
		if err != nil {
			m.log.Warn("catalog fetch failed", "library", spec.From, "error", err)
			catalogs[key] = &catalog{err: err}
			continue
		}
		m.log.Debug("catalog fetched", "library", spec.From, "scope", effective.String(), "items", len(items))
		catalogs[key] = &catalog{items: items, scope: effective}
	}
	return catalogs
}

func (m *Manager) reconcile(ctx context.Context, spec Spec, catalogs map[catalogKey]*catalog) Result {
	res := Result{Name: spec.Name}

	if spec.Err != nil {
		return m.fail(res, spec.Err)
	}

	cat := catalogs[catalogKey{source: spec.From, scope: spec.Scope}]
	if cat.err != nil {
		res.Status = StatusSkipped
		res.Err = fmt.Errorf("catalog unavailable: %w", cat.err)
		return res
	}

	desired := query.Select(spec.Query, cat.scope, cat.items)
	res.Desired = len(desired)

	collectionID, err := m.gateway.FindCollection(ctx, spec.Name)
	if err != nil {
		return m.fail(res, fmt.Errorf("find collection: %w", err))
	}

	var observed []library.ItemID
	switch {
	case collectionID == "" && m.dryRun:
		res.Created = true
	case collectionID == "":
		collectionID, err = m.gateway.CreateCollection(ctx, spec.Name)
		if err != nil {
			return m.fail(res, fmt.Errorf("create collection: %w", err))
		}
		res.Created = true
		m.log.Info("collection created", "collection", spec.Name, "id", collectionID)
	default:
		observed, err = m.gateway.CollectionItems(ctx, collectionID)
		if err != nil {
			return m.fail(res, fmt.Errorf("list members: %w", err))
		}
	}
	res.Observed = len(observed)

	plan := Diff(desired, observed)
	res.Adds = len(plan.Adds)
	res.Removes = len(plan.Removes)

	if m.dryRun {
		if plan.Empty() && !res.Created {
			res.Status = StatusUnchanged
			return res
		}
		res.Status = StatusPlanned
		m.log.Info("collection planned",
			"collection", spec.Name,
			"create", res.Created,
			"adds", res.Adds,
			"removes", res.Removes,
		)
		return res
	}

	if plan.Empty() {
		if res.Created {
			res.Status = StatusSynced
		} else {
			res.Status = StatusUnchanged
			m.log.Debug("collection unchanged", "collection", spec.Name, "size", res.Desired)
		}
		return res
	}

	if err := ctx.Err(); err != nil {
		res.Status = StatusSkipped
		res.Err = err
		return res
	}

	if len(plan.Adds) > 0 {
		if err := m.gateway.AddToCollection(ctx, collectionID, plan.Adds); err != nil {
			return m.fail(res, fmt.Errorf("add %d items: %w", len(plan.Adds), err))
		}
	}
	if len(plan.Removes) > 0 {
		if err := m.gateway.RemoveFromCollection(ctx, collectionID, plan.Removes); err != nil {
			return m.fail(res, fmt.Errorf("remove %d items: %w", len(plan.Removes), err))
		}
	}

	res.Status = StatusSynced
	m.log.Info("collection synced",
		"collection", spec.Name,
		"added", res.Adds,
		"removed", res.Removes,
		"size", res.Desired,
	)
	return res
}

func (m *Manager) fail(res Result, err error) Result {
	res.Status = StatusFailed
	res.Err = err
	m.log.Warn("collection failed", "collection", res.Name, "error", err)
	return res
}
