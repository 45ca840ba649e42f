// Package sidebar is the terminal UI: a stream sidebar with the topic list
// of the expanded stream and a pane with the messages of the current narrow.
package sidebar

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tOgg1/streambar/internal/config"
	"github.com/tOgg1/streambar/internal/logging"
	"github.com/tOgg1/streambar/internal/models"
	"github.com/tOgg1/streambar/internal/narrow"
	"github.com/tOgg1/streambar/internal/sidebar/styles"
	"github.com/tOgg1/streambar/internal/store"
	"github.com/tOgg1/streambar/internal/topiclist"
)

const (
	defaultPollInterval  = 2 * time.Second
	defaultInitialTopics = 10
	defaultMessageLimit  = 50
	syncTimeout          = 10 * time.Second
)

// Config tunes the sidebar.
type Config struct {
	Limits         topiclist.Limits
	InitialTopics  int
	PollInterval   time.Duration
	HistoryTimeout time.Duration
	Theme          string
	// Sender is the name new messages are posted as.
	Sender string
	// MessageLimit caps the messages pane.
	MessageLimit int
	// Session restores and records the last narrow. Optional.
	Session *config.SessionStore
}

func (c Config) normalize() (Config, error) {
	if c.InitialTopics <= 0 {
		c.InitialTopics = defaultInitialTopics
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.MessageLimit <= 0 {
		c.MessageLimit = defaultMessageLimit
	}
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = styles.DefaultTheme.Name
	}
	if _, ok := styles.Themes[c.Theme]; !ok {
		return Config{}, fmt.Errorf("invalid theme %q", c.Theme)
	}
	c.Sender = strings.TrimSpace(c.Sender)
	if c.Sender == "" {
		c.Sender = os.Getenv("USER")
	}
	if c.Sender == "" {
		c.Sender = "me"
	}
	return c, nil
}

// Model is the bubbletea model of the sidebar.
type Model struct {
	store  *store.Store
	cfg    Config
	theme  styles.Theme
	logger zerolog.Logger

	data     *topicData
	registry *topiclist.Registry
	nav      *narrow.Navigator
	rows     map[topiclist.StreamID]*streamRow

	spinner spinner.Model
	menu    *topicMenu
	compose *composer

	watermark int64
	synced    bool

	items  []item
	cursor int

	messages    []*models.Message
	messagesFor narrow.State

	status    string
	statusErr bool
	pending   []tea.Cmd

	width  int
	height int
}

type syncedMsg struct {
	result store.SyncResult
	snaps  []store.StreamSnapshot
	err    error
}

type pollTickMsg struct{}

type streamReloadedMsg struct {
	snap    store.StreamSnapshot
	rebuild bool
	status  string
	err     error
}

type messagesLoadedMsg struct {
	state    narrow.State
	messages []*models.Message
	err      error
}

type sentMsg struct {
	message *models.Message
	err     error
}

type linkCopiedMsg struct {
	url string
	err error
}

// NewModel creates the sidebar model over an open store.
func NewModel(st *store.Store, cfg Config) (*Model, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	normalized, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	m := &Model{
		store:  st,
		cfg:    normalized,
		theme:  styles.Lookup(normalized.Theme),
		logger: logging.Component("sidebar"),
		data:   newTopicData(),
		rows:   make(map[topiclist.StreamID]*streamRow),
	}
	m.nav = narrow.NewNavigator(m.data, m.onNarrowChanged)
	m.registry = topiclist.NewRegistry(topiclist.Deps{
		Topics:      m.data,
		History:     &storeHistory{store: st, data: m.data},
		Unread:      m.data,
		Muting:      m.data,
		Subs:        m.data,
		Links:       m.data,
		Narrow:      m.nav,
		Popovers:    m,
		Diagnostics: logging.NewDiagnostics("topic_list"),
		ActiveTopic: m.nav.Topic,
	}, topiclist.RegistryConfig{
		Limits:         normalized.Limits,
		HistoryTimeout: normalized.HistoryTimeout,
	})

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = m.theme.NoticeStyle()
	return m, nil
}

// Run starts the sidebar in the alternate screen and blocks until it exits.
func Run(st *store.Store, cfg Config) error {
	model, err := NewModel(st, cfg)
	if err != nil {
		return err
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}

// Close drops every topic list.
func (m *Model) Close() {
	if m == nil || m.registry == nil {
		return
	}
	m.registry.Close()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.syncCmd(0), m.spinner.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(typed)
	case pollTickMsg:
		cmd = m.syncCmd(m.watermark)
	case syncedMsg:
		cmd = m.handleSynced(typed)
	case topiclist.HistoryLoadedMsg:
		m.registry.HandleHistoryLoaded(typed)
		m.refreshItems()
	case streamReloadedMsg:
		m.handleStreamReloaded(typed)
	case messagesLoadedMsg:
		m.handleMessagesLoaded(typed)
	case sentMsg:
		cmd = m.handleSent(typed)
	case linkCopiedMsg:
		if typed.err != nil {
			m.setStatus("link: " + typed.url)
		} else {
			m.setStatus("copied " + typed.url)
		}
	case tea.KeyMsg:
		cmd = m.handleKey(typed)
	case tea.MouseMsg:
		cmd = m.handleMouse(typed)
	}

	return m, m.flush(cmd)
}

// flush batches cmd with the commands queued by narrow callbacks.
func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	if len(m.pending) == 0 {
		return cmd
	}
	cmds := append(m.pending, cmd)
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

// HideTopicPopover implements topiclist.PopoverHider.
func (m *Model) HideTopicPopover() {
	m.menu = nil
}

func (m *Model) handleSynced(msg syncedMsg) tea.Cmd {
	next := m.pollCmd()
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("sync failed")
		m.setError("sync failed: " + msg.err.Error())
		return next
	}

	m.watermark = msg.result.Watermark
	m.data.replace(msg.snaps)

	if !m.synced {
		m.synced = true
		m.restoreSession()
	}

	if id, ok := m.registry.ActiveStreamID(); ok {
		if touchesStream(msg.result.Messages, id) {
			parent, _ := m.registry.ActiveParent()
			m.registry.Rebuild(parent, id)
		} else {
			m.refreshCounts(id)
		}
	}

	current := m.nav.Current()
	if !current.IsEmpty() && touchesNarrow(msg.result.Messages, current) {
		m.queue(m.loadMessagesCmd(current))
	}

	m.refreshItems()
	return next
}

// refreshCounts pushes unread counts to the topic list without rebuilding
// it. Topics folded into "more topics" are summed into the aggregate row.
func (m *Model) refreshCounts(id topiclist.StreamID) {
	more := 0
	for _, name := range m.data.RecentTopicNames(id) {
		count := m.data.UnreadCount(id, name)
		if m.registry.SetCount(id, topiclist.TopicCount(name), count) {
			more += count
		}
	}
	m.registry.SetCount(id, topiclist.MoreTopics, more)
}

func (m *Model) handleStreamReloaded(msg streamReloadedMsg) {
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("stream reload failed")
		m.setError(msg.err.Error())
		return
	}
	m.data.replaceStream(msg.snap)

	id := msg.snap.Subscription.StreamID
	if active, ok := m.registry.ActiveStreamID(); ok && active == id {
		if msg.rebuild {
			parent, _ := m.registry.ActiveParent()
			m.registry.Rebuild(parent, id)
		} else {
			m.refreshCounts(id)
		}
	}
	if msg.status != "" {
		m.setStatus(msg.status)
	}
	m.refreshItems()
}

func (m *Model) handleMessagesLoaded(msg messagesLoadedMsg) {
	if msg.state != m.nav.Current() {
		// a newer narrow has its own load in flight
		return
	}
	if msg.err != nil {
		m.setError("load messages: " + msg.err.Error())
		return
	}
	m.messages = msg.messages
	m.messagesFor = msg.state
}

func (m *Model) handleSent(msg sentMsg) tea.Cmd {
	if msg.err != nil {
		m.setError("send failed: " + msg.err.Error())
		return nil
	}
	m.setStatus(fmt.Sprintf("sent to %s", msg.message.Topic))
	return m.syncCmd(m.watermark)
}

// onNarrowChanged keeps the expanded topic list in step with the narrow.
func (m *Model) onNarrowChanged(_, next narrow.State) {
	if next.IsEmpty() {
		m.registry.Close()
		m.messages = nil
		m.messagesFor = narrow.State{}
	} else {
		id := topiclist.StreamID(next.StreamID)
		if active, ok := m.registry.ActiveStreamID(); ok && active != id {
			m.registry.Close()
		}
		m.registry.Rebuild(m.rowFor(id), id)
		m.queue(m.loadMessagesCmd(next))
		if next.TopicName != "" {
			m.queue(m.markReadCmd(id, next.TopicName))
		}
	}
	m.saveSession(next)
	m.refreshItems()
}

func (m *Model) rowFor(id topiclist.StreamID) *streamRow {
	row, ok := m.rows[id]
	if !ok {
		row = &streamRow{id: id}
		m.rows[id] = row
	}
	return row
}

func (m *Model) restoreSession() {
	if m.cfg.Session == nil {
		return
	}
	session, err := m.cfg.Session.Load()
	if err != nil {
		m.logger.Warn().Err(err).Msg("failed to load session")
		return
	}
	if session.IsEmpty() {
		return
	}
	terms := []narrow.Term{{Operator: narrow.OperatorStream, Operand: session.StreamName}}
	if session.TopicName != "" {
		terms = append(terms, narrow.Term{Operator: narrow.OperatorTopic, Operand: session.TopicName})
	}
	m.nav.ActivateNarrow(terms, narrow.Options{Trigger: "restore"})
}

func (m *Model) saveSession(state narrow.State) {
	if m.cfg.Session == nil || !m.synced {
		return
	}
	session := &config.Session{}
	if state.IsEmpty() {
		session.Clear()
	} else {
		session.SetNarrow(state.StreamName, state.TopicName)
	}
	if err := m.cfg.Session.Save(session); err != nil {
		m.logger.Warn().Err(err).Msg("failed to save session")
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

func touchesStream(msgs []*models.Message, id topiclist.StreamID) bool {
	for _, msg := range msgs {
		if topiclist.StreamID(msg.StreamID) == id {
			return true
		}
	}
	return false
}

func touchesNarrow(msgs []*models.Message, state narrow.State) bool {
	for _, msg := range msgs {
		if msg.StreamID != state.StreamID {
			continue
		}
		if state.TopicName == "" || topiclist.SameTopic(msg.Topic, state.TopicName) {
			return true
		}
	}
	return false
}
