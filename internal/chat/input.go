package chat

import (
	"github.com/charmbracelet/bubbles/textarea"
)

func newInputModel() textarea.Model {
	input := textarea.New()
	input.Placeholder = "message · /help for commands"
	input.Prompt = "> "
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(1)
	input.Focus()
	return input
}
