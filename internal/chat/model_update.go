package chat

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case feedMsg:
		return m.handleFeedMsg(msg)
	case roomsMsg:
		return m.handleRoomsMsg(msg)
	case usersMsg:
		return m.handleUsersMsg(msg)
	case sendResultMsg:
		return m.handleSendResultMsg(msg)
	case editResultMsg:
		return m.handleEditResultMsg(msg)
	case deleteResultMsg:
		return m.handleDeleteResultMsg(msg)
	case roomCreatedMsg:
		return m.handleRoomCreatedMsg(msg)
	case profileResultMsg:
		return m.handleProfileResultMsg(msg)
	case deleteTickMsg:
		return m.handleDeleteTickMsg(msg)
	case scrollSettleMsg:
		return m.handleScrollSettleMsg(msg)
	case highlightClearMsg:
		return m.handleHighlightClearMsg(msg)
	case copyResultMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.resize()
	m.refreshViewport(m.atBottom())
	return m, nil
}
