package chat

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rlacksdl104/dsmm-chat/internal/compose"
	"github.com/rlacksdl104/dsmm-chat/internal/core"
	"github.com/rlacksdl104/dsmm-chat/internal/feed"
	"github.com/rlacksdl104/dsmm-chat/internal/gesture"
	"github.com/rlacksdl104/dsmm-chat/internal/session"
	"github.com/rlacksdl104/dsmm-chat/internal/store"
	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

// Options configure chat.
type Options struct {
	Store    *store.Store
	Sessions *session.Manager
	Identity session.Identity
	Config   core.Config
}

// Run starts the chat UI.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	// Set window title (ANSI OSC sequence)
	fmt.Printf("\033]0;%s\007", "dsmm")

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	model.Close()
	return err
}

// Model implements the chat UI. All state lives on the update loop;
// commands only carry results back in as typed messages.
type Model struct {
	store    *store.Store
	sessions *session.Manager
	config   core.Config
	self     types.User

	sync     *feed.Synchronizer
	listener feed.Listener
	roomsSub *store.Subscription
	usersSub *store.Subscription

	rooms    []types.Room
	users    []types.User
	unlocked map[string]bool // rooms that passed the password gate this run

	roomID     string
	panelFocus bool
	panelIndex int

	viewport      viewport.Model
	contentHeight int // lines set on the viewport at last refresh
	input         textarea.Model
	password      textinput.Model
	zones         *zone.Manager
	lineIndex     map[string]int // message id -> first content line

	composer compose.Composer

	hoverID    string
	editingID  string // non-empty when in edit mode
	savedDraft string // composer draft parked while editing

	press          *gesture.LongPress
	deleteSeq      int
	swipe          *gesture.Swipe
	mouseDown      bool
	pressX, pressY int
	lastClickID    string
	lastClickAt    time.Time

	highlightID  string
	highlightSeq int
	scrollSeq    int
	anchorBottom bool // pin to bottom on the next scroll settle

	promptRoom *types.Room // non-nil while the password prompt is open

	sending bool
	status  string
	notices []types.Notification

	width  int
	height int
	ready  bool
}

// NewModel creates a chat model with the room and user feeds armed.
func NewModel(opts Options) (*Model, error) {
	roomsSub, err := opts.Store.SubscribeOrdered("rooms", nil, store.OrderByCreatedAt)
	if err != nil {
		return nil, err
	}
	usersSub, err := opts.Store.SubscribeOrdered("users", nil, store.OrderByCreatedAt)
	if err != nil {
		roomsSub.Cancel()
		return nil, err
	}

	password := textinput.New()
	password.EchoMode = textinput.EchoPassword
	password.Prompt = "password: "

	model := &Model{
		store:    opts.Store,
		sessions: opts.Sessions,
		config:   opts.Config,
		self: types.User{
			ID:          opts.Identity.UID,
			Email:       opts.Identity.Email,
			DisplayName: opts.Identity.DisplayName,
		},
		sync:     feed.New(opts.Store),
		roomsSub: roomsSub,
		usersSub: usersSub,
		unlocked: make(map[string]bool),
		viewport: viewport.New(0, 0),
		input:    newInputModel(),
		password: password,
		zones:    zone.New(),
	}
	return model, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitRooms(), m.waitUsers())
}

// Close tears down all live subscriptions.
func (m *Model) Close() {
	m.sync.Close()
	if m.roomsSub != nil {
		m.roomsSub.Cancel()
		m.roomsSub = nil
	}
	if m.usersSub != nil {
		m.usersSub.Cancel()
		m.usersSub = nil
	}
}
