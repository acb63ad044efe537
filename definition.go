package stepper

import (
	"fmt"
	"os"

	"github.com/enetx/g"
	"gopkg.in/yaml.v3"
)

// Registry resolves the action names used in definition documents.
type Registry struct {
	actions  *g.MapSafe[g.String, Action]
	fallback func(name g.String) g.Option[Action]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: g.NewMapSafe[g.String, Action]()}
}

// Register binds name to action.
func (r *Registry) Register(name g.String, action Action) *Registry {
	r.actions.Set(name, action)
	return r
}

// Fallback sets a resolver consulted for names that were never registered.
func (r *Registry) Fallback(fn func(name g.String) g.Option[Action]) *Registry {
	r.fallback = fn
	return r
}

// Resolve returns the action bound to name.
func (r *Registry) Resolve(name g.String) g.Option[Action] {
	if action := r.actions.Get(name); action.IsSome() {
		return action
	}

	if r.fallback != nil {
		return r.fallback(name)
	}

	return g.None[Action]()
}

// document is the YAML (or JSON) form of a state list:
//
//	states:
//	  - idle
//	  - type: running
//	    enter: start_timer
//	    exit: [stop_timer, flush]
//	    on:
//	      STOP: idle
//	      PAUSE: {target: paused, actions: [save]}
//	  - paused
type document struct {
	States []stateNode `yaml:"states"`
}

type stateNode struct {
	Type  string                    `yaml:"type"`
	Enter actionNames               `yaml:"enter"`
	Exit  actionNames               `yaml:"exit"`
	On    map[string]transitionNode `yaml:"on"`
}

// UnmarshalYAML accepts a bare state name as well as a mapping.
func (n *stateNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&n.Type)
	}

	type plain stateNode

	return value.Decode((*plain)(n))
}

type transitionNode struct {
	Target  string      `yaml:"target"`
	Actions actionNames `yaml:"actions"`
}

// UnmarshalYAML accepts a bare target name as well as a mapping.
func (n *transitionNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&n.Target)
	}

	type plain transitionNode

	return value.Decode((*plain)(n))
}

type actionNames []string

// UnmarshalYAML accepts a single action name as well as a list.
func (n *actionNames) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}

		*n = actionNames{name}

		return nil
	}

	return value.Decode((*[]string)(n))
}

// ParseDefinitions decodes a YAML or JSON state list and resolves its action
// names through reg. A nil reg only accepts documents without actions.
func ParseDefinitions(data []byte, reg *Registry) ([]Definition, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ErrDefinition{Err: err}
	}

	if len(doc.States) == 0 {
		return nil, &ErrDefinition{Err: ErrStateless}
	}

	if reg == nil {
		reg = NewRegistry()
	}

	defs := make([]Definition, 0, len(doc.States))

	for i, node := range doc.States {
		if node.Type == "" {
			return nil, &ErrDefinition{Err: fmt.Errorf("state #%d has no type", i)}
		}

		def, err := node.build(reg)
		if err != nil {
			return nil, err
		}

		defs = append(defs, def)
	}

	return defs, nil
}

// LoadDefinitions reads a definition document from path.
func LoadDefinitions(path string, reg *Registry) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", path, err)
	}

	return ParseDefinitions(data, reg)
}

func (n *stateNode) build(reg *Registry) (*StateDef, error) {
	def := Def(State(n.Type))

	enter, err := resolveAll(reg, n.Enter, def.Type)
	if err != nil {
		return nil, err
	}

	exit, err := resolveAll(reg, n.Exit, def.Type)
	if err != nil {
		return nil, err
	}

	def.OnEnter(enter...).OnExit(exit...)

	for event, tn := range n.On {
		if tn.Target == "" {
			return nil, &ErrDefinition{Err: fmt.Errorf("event %q of state %q has no target", event, n.Type)}
		}

		actions, err := resolveAll(reg, tn.Actions, def.Type)
		if err != nil {
			return nil, err
		}

		def.On(Event(event), Do(State(tn.Target), actions...))
	}

	return def, nil
}

func resolveAll(reg *Registry, names actionNames, state State) (g.Slice[Action], error) {
	actions := make(g.Slice[Action], 0, len(names))

	for _, name := range names {
		action := reg.Resolve(g.String(name))
		if action.IsNone() {
			return nil, &ErrUnknownAction{Name: name, State: state}
		}

		actions = append(actions, action.Some())
	}

	return actions, nil
}
