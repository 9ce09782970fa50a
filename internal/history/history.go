package history

import (
	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
)

// DefaultDepth is the undo-stack cap used when none is configured.
const DefaultDepth = 100

// History holds the undo and redo stacks shared by a session. It is not
// safe for concurrent use; the owning session serializes access.
type History struct {
	depth int
	undo  []Command
	redo  []Command
}

// New creates a history with the given undo depth cap. Non-positive depths
// fall back to DefaultDepth.
func New(depth int) *History {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &History{depth: depth}
}

// Push executes the command and appends it to the undo stack. The redo
// stack is cleared entirely, and once the stack exceeds the depth cap the
// oldest entry is evicted. A command that fails to execute is not recorded.
func (h *History) Push(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.depth {
		n := copy(h.undo, h.undo[1:])
		h.undo[n] = nil
		h.undo = h.undo[:n]
	}
	h.redo = nil
	return nil
}

// Undo pops the newest command, reverts it, and moves it to the redo stack.
func (h *History) Undo() error {
	if len(h.undo) == 0 {
		return apperrors.New(apperrors.CodeEmptyStack, "nothing to undo")
	}
	cmd := h.undo[len(h.undo)-1]
	if err := cmd.Undo(); err != nil {
		return err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return nil
}

// Redo pops the newest undone command, reapplies it, and moves it back to
// the undo stack.
func (h *History) Redo() error {
	if len(h.redo) == 0 {
		return apperrors.New(apperrors.CodeEmptyStack, "nothing to redo")
	}
	cmd := h.redo[len(h.redo)-1]
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return nil
}

// UndoDepth reports how many commands can be undone.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth reports how many commands can be redone.
func (h *History) RedoDepth() int { return len(h.redo) }

// Reset drops both stacks. Used when the session unloads state that the
// recorded commands reference.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}
