package jobs

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/bookbrainz/internal/metrics"
	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/emrgen/bookbrainz/internal/store"
	"github.com/sirupsen/logrus"
)

// AuditReport lists the redirects the resolver would fail on.
type AuditReport struct {
	Redirects int `json:"redirects"`
	// Cycles holds each redirect cycle once, starting from its smallest BBID.
	Cycles [][]string `json:"cycles"`
	// Dangling redirects point at a BBID with no entity.
	Dangling []*model.EntityRedirect `json:"dangling"`
	// LongChains are sources whose chain is longer than the hop limit.
	LongChains []string `json:"longChains"`
}

func (r *AuditReport) Broken() int {
	return len(r.Cycles) + len(r.Dangling) + len(r.LongChains)
}

// AuditRedirects loads every redirect and checks that each chain ends at an
// existing entity within maxHops.
func AuditRedirects(ctx context.Context, s store.EntityStore, maxHops int) (*AuditReport, error) {
	redirects, err := s.ListRedirects(ctx)
	if err != nil {
		return nil, err
	}

	next := make(map[string]string, len(redirects))
	targets := mapset.NewThreadUnsafeSet[string]()
	for _, redirect := range redirects {
		next[redirect.SourceBBID] = redirect.TargetBBID
		targets.Add(redirect.TargetBBID)
	}

	report := &AuditReport{
		Redirects:  len(redirects),
		Cycles:     make([][]string, 0),
		Dangling:   make([]*model.EntityRedirect, 0),
		LongChains: make([]string, 0),
	}

	if targets.Cardinality() > 0 {
		entities, err := s.ListEntitiesFromBBIDs(ctx, targets.ToSlice())
		if err != nil {
			return nil, err
		}
		existing := mapset.NewThreadUnsafeSet[string]()
		for _, entity := range entities {
			existing.Add(entity.BBID)
		}
		for _, redirect := range redirects {
			if !existing.Contains(redirect.TargetBBID) {
				report.Dangling = append(report.Dangling, redirect)
			}
		}
	}

	// depth is the number of hops from a source to the end of its chain, -1 when
	// the chain runs into a cycle.
	depth := make(map[string]int, len(redirects))
	for _, redirect := range redirects {
		source := redirect.SourceBBID
		if _, ok := depth[source]; ok {
			continue
		}

		path := make([]string, 0)
		onPath := mapset.NewThreadUnsafeSet[string]()
		current := source
		base := 0
		for {
			if d, ok := depth[current]; ok {
				base = d
				break
			}
			target, redirected := next[current]
			if !redirected {
				break
			}
			if onPath.Contains(current) {
				report.Cycles = append(report.Cycles, cycleFrom(path, current))
				base = -1
				break
			}
			onPath.Add(current)
			path = append(path, current)
			current = target
		}

		for i, bbid := range path {
			if base < 0 {
				depth[bbid] = -1
				continue
			}
			depth[bbid] = base + len(path) - i
		}
	}

	for _, redirect := range redirects {
		if depth[redirect.SourceBBID] > maxHops {
			report.LongChains = append(report.LongChains, redirect.SourceBBID)
		}
	}

	return report, nil
}

// cycleFrom cuts the cycle starting at start out of path and rotates it to begin
// at its smallest member.
func cycleFrom(path []string, start string) []string {
	var cycle []string
	for i, bbid := range path {
		if bbid == start {
			cycle = append(cycle, path[i:]...)
			break
		}
	}

	smallest := 0
	for i, bbid := range cycle {
		if bbid < cycle[smallest] {
			smallest = i
		}
	}
	return append(append([]string{}, cycle[smallest:]...), cycle[:smallest]...)
}

// RedirectAuditTask runs AuditRedirects on a schedule and publishes the number of
// broken redirects.
type RedirectAuditTask struct {
	store    store.EntityStore
	schedule string
	maxHops  int
	timeout  time.Duration
}

func NewRedirectAuditTask(schedule string, store store.EntityStore, maxHops int) *RedirectAuditTask {
	return &RedirectAuditTask{
		store:    store,
		schedule: schedule,
		maxHops:  maxHops,
		timeout:  time.Minute,
	}
}

func (r *RedirectAuditTask) Name() string {
	return "redirect_audit"
}

func (r *RedirectAuditTask) Schedule() string {
	return r.schedule
}

func (r *RedirectAuditTask) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	report, err := AuditRedirects(ctx, r.store, r.maxHops)
	if err != nil {
		logrus.Errorf("redirect audit failed: %v", err)
		return
	}

	for _, cycle := range report.Cycles {
		logrus.Warnf("redirect cycle: %v", cycle)
	}
	for _, redirect := range report.Dangling {
		logrus.Warnf("dangling redirect %s -> %s", redirect.SourceBBID, redirect.TargetBBID)
	}
	for _, source := range report.LongChains {
		logrus.Warnf("redirect chain from %s exceeds %d hops", source, r.maxHops)
	}

	metrics.BrokenRedirects.Set(float64(report.Broken()))
	logrus.Infof("redirect audit checked %d redirects, %d broken", report.Redirects, report.Broken())
}
