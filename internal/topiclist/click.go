package topiclist

import (
	"fmt"

	"github.com/tOgg1/streambar/internal/narrow"
)

// Modifiers is the set of modifier keys held during a click.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModMeta
	ModAlt
	ModShift
)

func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

// ClickEvent is a click on a topic list row, as reported by the presentation
// layer.
type ClickEvent struct {
	StreamID       StreamID
	TopicName      string
	IsAggregateRow bool
	Modifiers      Modifiers
}

// HandleClick narrows to the clicked topic. It returns false when the click
// is left to the default behaviour: modifier clicks and the aggregate row.
func (r *Registry) HandleClick(ev ClickEvent) bool {
	if ev.Modifiers.Has(ModMeta) || ev.Modifiers.Has(ModCtrl) {
		return false
	}
	if ev.IsAggregateRow {
		return false
	}

	sub, ok := r.deps.subscription(ev.StreamID)
	if !ok {
		r.deps.Diagnostics.ReportError(fmt.Sprintf("Clicked topic in unknown stream %d.", ev.StreamID))
		return false
	}
	if r.deps.Narrow == nil {
		return false
	}

	r.deps.Narrow.ActivateNarrow([]narrow.Term{
		{Operator: narrow.OperatorStream, Operand: sub.Name},
		{Operator: narrow.OperatorTopic, Operand: ev.TopicName},
	}, narrow.Options{Trigger: "sidebar"})
	return true
}
