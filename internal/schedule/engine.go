// Package schedule orders the weekly class schedule, finds idle gaps
// between classes and fills them with meal suggestions.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"maps"
	"sync"

	"meal-scheduler/internal/llm"
	"meal-scheduler/internal/realtime"
	"meal-scheduler/internal/recipe"
	"meal-scheduler/internal/shared"

	"golang.org/x/sync/errgroup"
)

// Path is the store path holding persisted schedule entries.
const Path = "schedule"

// ErrSubscriptionClosed is returned by Run when the store stops delivering
// snapshots while the caller still wants them.
var ErrSubscriptionClosed = errors.New("schedule subscription closed")

// maxConcurrentFills bounds the generation calls issued for one day.
const maxConcurrentFills = 4

// Store is the subset of the record store the engine needs.
type Store interface {
	Read(ctx context.Context, path string) (realtime.Snapshot, error)
	Append(ctx context.Context, path string, fields realtime.Fields) (string, error)
	Delete(ctx context.Context, path, id string) error
	Subscribe(ctx context.Context, path string) (<-chan realtime.Snapshot, error)
}

// RecipeSearcher finds candidate recipes for the available ingredients.
type RecipeSearcher interface {
	Search(ctx context.Context, ingredients []string, count int) ([]recipe.Summary, error)
}

// MetricsRecorder persists generation usage.
type MetricsRecorder interface {
	RecordMeta(ctx context.Context, meta shared.AgentMeta) error
}

// Engine holds the ordered view of the persisted schedule plus the synthetic
// entries filled into its gaps.
type Engine struct {
	store   Store
	textGen llm.TextGenerator
	recipes RecipeSearcher
	metrics MetricsRecorder

	mu       sync.RWMutex
	view     []Entry
	fills    map[string]Entry
	gen      uint64
	watchers map[chan []Entry]struct{}
}

// NewEngine creates a new Engine. recipes and metrics may be nil.
func NewEngine(store Store, textGen llm.TextGenerator, recipes RecipeSearcher, metrics MetricsRecorder) *Engine {
	return &Engine{
		store:    store,
		textGen:  textGen,
		recipes:  recipes,
		metrics:  metrics,
		fills:    make(map[string]Entry),
		watchers: make(map[chan []Entry]struct{}),
	}
}

// Run keeps the view in sync with the store until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	updates, err := e.store.Subscribe(ctx, Path)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", Path, err)
	}
	for snap := range updates {
		e.Load(snap)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrSubscriptionClosed
}

// Reload reads the store once and rebuilds the view.
func (e *Engine) Reload(ctx context.Context) error {
	snap, err := e.store.Read(ctx, Path)
	if err != nil {
		return err
	}
	e.Load(snap)
	return nil
}

// Load rebuilds the view from a snapshot, discarding synthetic entries.
func (e *Engine) Load(snap realtime.Snapshot) {
	entries := make([]Entry, 0, len(snap.Records))
	for _, rec := range snap.Records {
		entry, err := EntryFromRecord(rec)
		if err != nil {
			log.Printf("skipping schedule record: %v", err)
			continue
		}
		entries = append(entries, entry)
	}
	ordered := NormalizeAndOrder(entries)

	e.mu.Lock()
	e.view = ordered
	e.fills = make(map[string]Entry)
	e.gen++
	e.broadcastLocked()
	e.mu.Unlock()
}

// Entries returns the ordered view with synthetic entries spliced in.
// An empty day returns the whole week.
func (e *Engine) Entries(day Day) []Entry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.entriesLocked(day)
}

func (e *Engine) entriesLocked(day Day) []Entry {
	all := Splice(e.view, e.fills)
	if day == "" {
		return all
	}
	return filterDay(all, day)
}

// Watch delivers the augmented week after every change until ctx is done.
// Slow receivers only see the latest view.
func (e *Engine) Watch(ctx context.Context) <-chan []Entry {
	ch := make(chan []Entry, 1)

	e.mu.Lock()
	e.watchers[ch] = struct{}{}
	ch <- e.entriesLocked("")
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.mu.Lock()
		delete(e.watchers, ch)
		close(ch)
		e.mu.Unlock()
	}()
	return ch
}

func (e *Engine) broadcastLocked() {
	if len(e.watchers) == 0 {
		return
	}
	week := e.entriesLocked("")
	for ch := range e.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- week
	}
}

// FillDay fills every qualifying gap of day concurrently and returns the
// augmented day. Gaps whose fill fails stay empty. Results computed against
// a view that was reloaded in the meantime are discarded.
func (e *Engine) FillDay(ctx context.Context, day Day, ingredients []string) []Entry {
	e.mu.RLock()
	gaps := DetectGaps(filterDay(e.view, day))
	gen := e.gen
	e.mu.RUnlock()

	results := make(map[string]Entry, len(gaps))
	if len(gaps) > 0 {
		candidates := e.candidates(ctx, ingredients)

		var resultsMu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentFills)
		for _, gap := range gaps {
			g.Go(func() error {
				entry, ok := e.FillGap(gctx, gap, ingredients, candidates)
				if ok {
					resultsMu.Lock()
					results[gap.Key()] = entry
					resultsMu.Unlock()
				}
				// Failures are logged by FillGap and must not cancel the other gaps.
				return nil
			})
		}
		_ = g.Wait()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		log.Printf("schedule changed while filling %s; discarding %d suggestions", day, len(results))
		return e.entriesLocked(day)
	}
	maps.DeleteFunc(e.fills, func(_ string, fill Entry) bool { return fill.Day == day })
	maps.Copy(e.fills, results)
	e.broadcastLocked()
	return e.entriesLocked(day)
}

func (e *Engine) candidates(ctx context.Context, ingredients []string) []string {
	if e.recipes == nil || len(ingredients) == 0 {
		return nil
	}
	found, err := e.recipes.Search(ctx, ingredients, recipe.DefaultSearchCount)
	if err != nil {
		log.Printf("recipe search failed, filling gaps without candidates: %v", err)
		return nil
	}
	titles := make([]string, 0, len(found))
	for _, r := range found {
		titles = append(titles, r.Title)
	}
	return titles
}

// Create validates and persists a new entry, returning its id.
func (e *Engine) Create(ctx context.Context, entry Entry) (string, error) {
	if err := entry.Validate(); err != nil {
		return "", err
	}
	return e.store.Append(ctx, Path, entry.Fields())
}

// Delete removes exactly the persisted entry with the given id.
func (e *Engine) Delete(ctx context.Context, id string) error {
	return e.store.Delete(ctx, Path, id)
}

func (e *Engine) recordMeta(ctx context.Context, meta shared.AgentMeta) {
	if e.metrics == nil {
		return
	}
	if err := e.metrics.RecordMeta(ctx, meta); err != nil {
		log.Printf("failed to record %s metrics: %v", meta.AgentName, err)
	}
}
