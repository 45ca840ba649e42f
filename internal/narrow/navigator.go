package narrow

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/tOgg1/streambar/internal/logging"
)

// StreamResolver maps a stream name to its id and canonical name.
type StreamResolver interface {
	ResolveStream(name string) (id int64, canonical string, ok bool)
}

// Navigator owns the current narrow and notifies a listener on change.
type Navigator struct {
	resolver StreamResolver
	current  State
	onChange func(prev, next State)
	logger   zerolog.Logger
}

// NewNavigator creates a Navigator. onChange may be nil.
func NewNavigator(resolver StreamResolver, onChange func(prev, next State)) *Navigator {
	return &Navigator{
		resolver: resolver,
		onChange: onChange,
		logger:   logging.Component("narrow"),
	}
}

// Current returns the active narrow.
func (n *Navigator) Current() State {
	return n.current
}

// Topic returns the narrowed topic name.
func (n *Navigator) Topic() string {
	return n.current.Topic()
}

// SetOnChange replaces the change listener.
func (n *Navigator) SetOnChange(fn func(prev, next State)) {
	n.onChange = fn
}

// ActivateNarrow switches the message view to the given filters. Terms naming
// an unknown stream leave the current narrow untouched.
func (n *Navigator) ActivateNarrow(terms []Term, opts Options) {
	next := State{Trigger: opts.Trigger}
	for _, term := range terms {
		operand := strings.TrimSpace(term.Operand)
		switch term.Operator {
		case OperatorStream:
			id, canonical, ok := n.resolver.ResolveStream(operand)
			if !ok {
				n.logger.Warn().Str("stream", operand).Msg("narrow to unknown stream ignored")
				return
			}
			next.StreamID = id
			next.StreamName = canonical
		case OperatorTopic:
			next.TopicName = operand
		default:
			n.logger.Debug().Str("operator", term.Operator).Msg("unsupported narrow operator")
		}
	}
	if next.StreamID == 0 && next.TopicName != "" {
		n.logger.Warn().Str("topic", next.TopicName).Msg("topic narrow without stream ignored")
		return
	}

	prev := n.current
	n.current = next
	n.logger.Debug().
		Int64("stream_id", next.StreamID).
		Str("topic", next.TopicName).
		Str("trigger", next.Trigger).
		Msg("narrow activated")
	if n.onChange != nil {
		n.onChange(prev, next)
	}
}

// Reset clears the narrow back to "all messages".
func (n *Navigator) Reset() {
	prev := n.current
	n.current = State{}
	if n.onChange != nil && !prev.IsEmpty() {
		n.onChange(prev, n.current)
	}
}
