package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm-cable/farmstead/systems"
)

// separator closes each day's block in the report.
var separator = strings.Repeat("-", 20)

// reporter writes the human-readable day report.
type reporter struct {
	w io.Writer
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w}
}

// logf writes a formatted report line.
func (r *reporter) logf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *reporter) dayHeader(day int) {
	r.logf("Day %d", day)
}

// outcome reports one type's distribution. Empty types print nothing.
func (r *reporter) outcome(o systems.Outcome) {
	if o.Empty {
		return
	}
	if o.Sufficient {
		r.logf("Provided %s to %d %s(s).", o.Resource, o.Grown, o.Type)
	} else {
		r.logf("Not enough %s for %s.", o.Resource, o.Type)
	}
	for i := 0; i < o.Harvested; i++ {
		r.logf("Collected from 1 %s.", o.Type)
	}
}

func (r *reporter) dayFooter(day, water, food int) {
	r.logf("End of Day %d - Water: %d, Food: %d", day, water, food)
	r.logf("%s", separator)
}
