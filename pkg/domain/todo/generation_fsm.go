package todo

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Generation session states.
const (
	StateIdle       = "idle"
	StateGenerating = "generating"
)

// Generation session events.
const (
	EventGenerate = "generate"
	EventFinish   = "finish"
)

// GenerationContext is the machine's extended state. The session needs none.
type GenerationContext struct{}

// GenerationMachine is the in-flight flag for goal expansion: a request may
// only start from idle, and the machine returns to idle when it finishes.
// It is not safe for concurrent use; callers serialize access.
type GenerationMachine struct {
	interpreter *statekit.Interpreter[GenerationContext]
}

func NewGenerationMachine() (*GenerationMachine, error) {
	builder := statekit.NewMachine[GenerationContext]("generation-session").
		WithInitial(statekit.StateID(StateIdle)).
		WithContext(GenerationContext{})

	builder.State(StateIdle).
		On(EventGenerate).Target(StateGenerating).
		Done()

	builder.State(StateGenerating).
		On(EventFinish).Target(StateIdle).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build generation machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &GenerationMachine{interpreter: interpreter}, nil
}

// Begin moves the session to generating. A second Begin before Finish
// returns ErrGenerationInFlight.
func (m *GenerationMachine) Begin() error {
	if m.Current() != StateIdle {
		return ErrGenerationInFlight
	}
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(EventGenerate)})
	if m.Current() != StateGenerating {
		return ErrGenerationInFlight
	}
	return nil
}

// Finish returns the session to idle. Calling it while idle is a no-op.
func (m *GenerationMachine) Finish() {
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(EventFinish)})
}

// Generating reports whether a request is outstanding.
func (m *GenerationMachine) Generating() bool {
	return m.Current() == StateGenerating
}

func (m *GenerationMachine) Current() string {
	return string(m.interpreter.State().Value)
}
