package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/farmstead/systems"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkShortage    BookmarkType = "shortage"
	BookmarkDepleted    BookmarkType = "depleted"
	BookmarkReplenished BookmarkType = "replenished"
	BookmarkHarvestBoom BookmarkType = "harvest_boom"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Day         int          `csv:"day"`
	Subject     string       `csv:"subject"` // "kind/type", empty for farm-wide bookmarks
	Description string       `csv:"description"`
}

// Log logs the bookmark using slog.
func (b Bookmark) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("bookmark",
		"type", string(b.Type),
		"day", b.Day,
		"subject", b.Subject,
		"description", b.Description,
	)
}

// typeState is what the detector remembers about one type between days.
type typeState struct {
	starving   bool
	population int
	depleted   bool
}

// BookmarkDetector detects notable days in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []DayStats
	historySize int
	historyIdx  int
	historyFull bool

	boomFactor float64
	types      map[string]*typeState
}

// NewBookmarkDetector creates a detector with the given history size.
// A harvest boom fires when a day's yield exceeds boomFactor times the rolling mean.
func NewBookmarkDetector(historySize int, boomFactor float64) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	if boomFactor <= 1 {
		boomFactor = 2
	}
	return &BookmarkDetector{
		history:     make([]DayStats, historySize),
		historySize: historySize,
		boomFactor:  boomFactor,
		types:       make(map[string]*typeState),
	}
}

// Check analyzes one finished day and returns any triggered bookmarks.
// Outcomes must be in distribution order and injections in schedule order.
func (bd *BookmarkDetector) Check(stats DayStats, outcomes []systems.Outcome, injections []systems.Injection) []Bookmark {
	var bookmarks []Bookmark

	for _, o := range outcomes {
		key := subject(o.Kind.String(), o.Type)
		st := bd.state(key)

		starving := !o.Sufficient
		if starving && !st.starving {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkShortage,
				Day:         stats.Day,
				Subject:     key,
				Description: fmt.Sprintf("Not enough %s for %d %s (needed %d)", o.Resource, o.Population+o.Harvested, o.Type, o.Required),
			})
		}
		st.starving = starving

		if o.Population == 0 && !st.depleted && (st.population > 0 || o.Harvested > 0) {
			st.depleted = true
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkDepleted,
				Day:         stats.Day,
				Subject:     key,
				Description: fmt.Sprintf("No %s left after harvesting %d", o.Type, o.Harvested),
			})
		}
		st.population = o.Population
	}

	for _, inj := range injections {
		key := subject(inj.Kind.String(), inj.Type)
		st := bd.state(key)
		if st.depleted {
			st.depleted = false
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkReplenished,
				Day:         stats.Day,
				Subject:     key,
				Description: fmt.Sprintf("%d new %s after depletion", inj.Count, inj.Type),
			})
		}
		st.population += inj.Count
	}

	if b := bd.checkHarvestBoom(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) state(key string) *typeState {
	st, ok := bd.types[key]
	if !ok {
		st = &typeState{}
		bd.types[key] = st
	}
	return st
}

func (bd *BookmarkDetector) addToHistory(stats DayStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []DayStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkHarvestBoom(stats DayStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Yield == 0 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Yield
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Yield) > avg*bd.boomFactor {
		return &Bookmark{
			Type:        BookmarkHarvestBoom,
			Day:         stats.Day,
			Description: fmt.Sprintf("Yield %d is %.1fx average (%.1f)", stats.Yield, float64(stats.Yield)/avg, avg),
		}
	}

	return nil
}

func subject(kind, typeName string) string {
	return kind + "/" + typeName
}
