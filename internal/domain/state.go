package domain

import "context"

const StateClass = "State"

type State struct {
	BaseModel
}

func NewState() *State {
	s := &State{BaseModel: newBase()}
	register(s)
	return s
}

func (s *State) ClassName() string              { return StateClass }
func (s *State) ToMap() map[string]any          { return s.toMap(StateClass) }
func (s *State) String() string                 { return s.describe(StateClass) }
func (s *State) Save(ctx context.Context) error { return save(ctx, s) }

func (s *State) Name() string     { return s.str("name") }
func (s *State) SetName(v string) { s.set("name", v) }
