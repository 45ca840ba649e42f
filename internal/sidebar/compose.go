package sidebar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tOgg1/streambar/internal/models"
	"github.com/tOgg1/streambar/internal/topiclist"
)

// composer starts a new topic in a stream: a topic line, then the message.
type composer struct {
	streamID   topiclist.StreamID
	streamName string
	topic      textinput.Model
	body       textinput.Model
	onBody     bool
	err        string
}

func newComposer(id topiclist.StreamID, streamName string) *composer {
	topic := textinput.New()
	topic.Placeholder = "topic"
	topic.CharLimit = models.MaxTopicNameLength
	topic.Prompt = "topic> "

	body := textinput.New()
	body.Placeholder = "message"
	body.Prompt = "message> "

	return &composer{
		streamID:   id,
		streamName: streamName,
		topic:      topic,
		body:       body,
	}
}

func (c *composer) init() tea.Cmd {
	return c.topic.Focus()
}

func (c *composer) update(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.compose = nil
		return nil
	case "tab", "shift+tab":
		return c.toggle()
	case "enter":
		if !c.onBody {
			if err := models.ValidateTopicName(c.topic.Value()); err != nil {
				c.err = "topic is required"
				return nil
			}
			c.err = ""
			return c.toggle()
		}
		content := strings.TrimSpace(c.body.Value())
		if content == "" {
			c.err = "message is required"
			return nil
		}
		m.compose = nil
		return m.sendCmd(c.streamName, strings.TrimSpace(c.topic.Value()), content)
	}

	var cmd tea.Cmd
	if c.onBody {
		c.body, cmd = c.body.Update(msg)
	} else {
		c.topic, cmd = c.topic.Update(msg)
	}
	return cmd
}

func (c *composer) toggle() tea.Cmd {
	c.onBody = !c.onBody
	if c.onBody {
		c.topic.Blur()
		return c.body.Focus()
	}
	c.body.Blur()
	return c.topic.Focus()
}

func (c *composer) view() string {
	lines := []string{"new topic in #" + c.streamName, c.topic.View(), c.body.View()}
	if c.err != "" {
		lines = append(lines, c.err)
	}
	return strings.Join(lines, "\n")
}
