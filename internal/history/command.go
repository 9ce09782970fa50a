// Package history implements the invertible command engine behind undo and
// redo. Commands either snapshot the sub-state they touch or carry an
// explicit inverse; the History type orders them on bounded stacks.
package history

// Command is an invertible unit of mutation.
type Command interface {
	Execute() error
	Undo() error
}

// SnapshotCommand captures a deep copy of the relevant sub-state before and
// after a mutation closure. The closure runs only on the first Execute;
// redos reapply the captured after-state, and Undo always reapplies the
// before-state. The capture function must return state that shares no
// memory with the live document.
type SnapshotCommand[S any] struct {
	capture func() S
	restore func(S)
	action  func() error
	before  S
	after   *S
}

// NewSnapshot builds a snapshot command, capturing the before-state
// immediately.
func NewSnapshot[S any](capture func() S, restore func(S), action func() error) *SnapshotCommand[S] {
	return &SnapshotCommand[S]{
		capture: capture,
		restore: restore,
		action:  action,
		before:  capture(),
	}
}

// Execute runs the mutation on first call and captures the after-state;
// later calls reapply that after-state without rerunning the closure.
func (c *SnapshotCommand[S]) Execute() error {
	if c.after == nil {
		if err := c.action(); err != nil {
			return err
		}
		after := c.capture()
		c.after = &after
		return nil
	}
	c.restore(*c.after)
	return nil
}

// Undo reapplies the before-state.
func (c *SnapshotCommand[S]) Undo() error {
	c.restore(c.before)
	return nil
}

// InversePair is a command whose operation has a trivial, explicitly known
// inverse, such as a rename.
type InversePair struct {
	forward func() error
	inverse func() error
}

// NewInversePair builds a command from forward and inverse closures.
func NewInversePair(forward, inverse func() error) *InversePair {
	return &InversePair{forward: forward, inverse: inverse}
}

// Execute runs the forward closure.
func (c *InversePair) Execute() error {
	return c.forward()
}

// Undo runs the inverse closure.
func (c *InversePair) Undo() error {
	return c.inverse()
}
