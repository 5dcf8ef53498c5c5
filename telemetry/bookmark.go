package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/rockets/config"
)

// BookmarkType identifies the kind of bookmark.
type BookmarkType string

const (
	BookmarkFirstCompletion BookmarkType = "first_completion"
	BookmarkBreakthrough    BookmarkType = "breakthrough"
	BookmarkStagnation      BookmarkType = "stagnation"
	BookmarkConvergence     BookmarkType = "convergence"
	BookmarkSelectionFailed BookmarkType = "selection_failed"
)

// Bookmark marks a notable generation.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector watches the generation stream for notable events.
type BookmarkDetector struct {
	history []GenerationStats
	idx     int
	full    bool

	breakthroughMult  float64
	stagnationGens    int
	convergenceFrac   float64
	seenCompletion    bool
	converged         bool
	bestSoFar         float64
	lastImprovement   int
	stagnationPending bool
}

// NewBookmarkDetector creates a detector from cfg's thresholds.
func NewBookmarkDetector(cfg *config.Config) *BookmarkDetector {
	size := cfg.Telemetry.BookmarkHistorySize
	if size < 3 {
		size = 3
	}
	return &BookmarkDetector{
		history:           make([]GenerationStats, size),
		breakthroughMult:  cfg.Bookmarks.Breakthrough.Multiplier,
		stagnationGens:    cfg.Bookmarks.Stagnation.Generations,
		convergenceFrac:   cfg.Bookmarks.Convergence.CompletedFraction,
		stagnationPending: true,
	}
}

// Check analyses the latest generation and returns any bookmarks.
func (bd *BookmarkDetector) Check(s GenerationStats) []Bookmark {
	var out []Bookmark

	if !bd.seenCompletion && s.Completed > 0 {
		bd.seenCompletion = true
		out = append(out, Bookmark{
			Type:        BookmarkFirstCompletion,
			Generation:  s.Generation,
			Description: fmt.Sprintf("%d rockets reached the target", s.Completed),
		})
	}

	if b := bd.checkBreakthrough(s); b != nil {
		out = append(out, *b)
	}
	if b := bd.checkStagnation(s); b != nil {
		out = append(out, *b)
	}

	if !bd.converged && s.CompletionRate() >= bd.convergenceFrac && bd.convergenceFrac > 0 {
		bd.converged = true
		out = append(out, Bookmark{
			Type:        BookmarkConvergence,
			Generation:  s.Generation,
			Description: fmt.Sprintf("%.0f%% of the cohort completed", s.CompletionRate()*100),
		})
	}

	if s.SelectionFailed {
		out = append(out, Bookmark{
			Type:        BookmarkSelectionFailed,
			Generation:  s.Generation,
			Description: "no usable gene pool, cohort carried over",
		})
	}

	bd.push(s)
	return out
}

func (bd *BookmarkDetector) push(s GenerationStats) {
	bd.history[bd.idx] = s
	bd.idx = (bd.idx + 1) % len(bd.history)
	if bd.idx == 0 {
		bd.full = true
	}
}

func (bd *BookmarkDetector) recent() []GenerationStats {
	if bd.full {
		return bd.history
	}
	return bd.history[:bd.idx]
}

// checkBreakthrough fires when best fitness beats the recent average best by
// the configured multiple.
func (bd *BookmarkDetector) checkBreakthrough(s GenerationStats) *Bookmark {
	h := bd.recent()
	if len(h) < 3 || bd.breakthroughMult <= 0 {
		return nil
	}
	var sum float64
	for _, g := range h {
		sum += g.BestFitness
	}
	avg := sum / float64(len(h))
	if avg <= 0 || s.BestFitness <= avg*bd.breakthroughMult {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkBreakthrough,
		Generation:  s.Generation,
		Description: fmt.Sprintf("best fitness %.3g is %.1fx the recent average %.3g", s.BestFitness, s.BestFitness/avg, avg),
	}
}

// checkStagnation fires once per plateau when best fitness has not improved
// for the configured number of generations.
func (bd *BookmarkDetector) checkStagnation(s GenerationStats) *Bookmark {
	if s.BestFitness > bd.bestSoFar {
		bd.bestSoFar = s.BestFitness
		bd.lastImprovement = s.Generation
		bd.stagnationPending = true
		return nil
	}
	if bd.stagnationGens <= 0 || !bd.stagnationPending {
		return nil
	}
	if s.Generation-bd.lastImprovement < bd.stagnationGens {
		return nil
	}
	bd.stagnationPending = false
	return &Bookmark{
		Type:        BookmarkStagnation,
		Generation:  s.Generation,
		Description: fmt.Sprintf("best fitness %.3g unchanged since generation %d", bd.bestSoFar, bd.lastImprovement),
	}
}
