// Package feedback tracks the success and error banners shown after a
// submission attempt.
package feedback

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SuccessTTL is how long a success message stays visible
const SuccessTTL = 4 * time.Second

// ClearSuccessMsg is delivered SuccessTTL after ShowSuccess and clears the
// success message whatever it currently holds.
type ClearSuccessMsg struct{}

// State holds at most one error and one success message. Both may be set.
type State struct {
	Error   string
	Success string
}

// SetError shows msg until it is overwritten or a submission succeeds
func (s *State) SetError(msg string) {
	s.Error = msg
}

// ShowSuccess shows msg, drops any error and returns the command that
// clears the success message after SuccessTTL.
func (s *State) ShowSuccess(msg string) tea.Cmd {
	s.Success = msg
	s.Error = ""
	return tea.Tick(SuccessTTL, func(time.Time) tea.Msg {
		return ClearSuccessMsg{}
	})
}

// ClearSuccess removes the success message
func (s *State) ClearSuccess() {
	s.Success = ""
}

// HasError reports whether an error message is showing
func (s State) HasError() bool {
	return s.Error != ""
}

// HasSuccess reports whether a success message is showing
func (s State) HasSuccess() bool {
	return s.Success != ""
}
