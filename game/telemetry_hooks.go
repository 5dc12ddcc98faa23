package game

import (
	"github.com/pthm-cable/farmstead/systems"
	"github.com/pthm-cable/farmstead/telemetry"
)

// flushTelemetry logs and writes one finished day and handles bookmarks.
// Write failures are logged and do not stop the simulation.
func (f *Farm) flushTelemetry(stats telemetry.DayStats, outcomes []systems.Outcome, injections []systems.Injection) {
	if f.logStats {
		stats.LogStats(f.logger)
	}

	if f.outputManager != nil {
		if err := f.outputManager.WriteDay(stats); err != nil {
			f.logger.Error("failed to write day stats", "error", err)
		}
		if err := f.outputManager.WriteOutcomes(f.collector.Records()); err != nil {
			f.logger.Error("failed to write outcomes", "error", err)
		}
	}

	bookmarks := f.bookmarkDetector.Check(stats, outcomes, injections)
	f.bookmarkCount += len(bookmarks)
	for _, bm := range bookmarks {
		if f.logStats {
			bm.Log(f.logger)
		}
		if f.outputManager != nil {
			if err := f.outputManager.WriteBookmark(bm); err != nil {
				f.logger.Error("failed to write bookmark", "error", err)
			}
		}
	}
}
