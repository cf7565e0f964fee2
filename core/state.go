package core

// State is the run/halt toggle kept in non-volatile memory.
type State uint8

const (
	StateUnknown State = iota
	StateHalted
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateHalted:
		return "halted"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// StateStore reads and writes the persisted State byte.
type StateStore struct {
	nvm  NVMDriver
	addr uint16
}

// NewStateStore returns a store using the byte at StateAddress.
func NewStateStore(nvm NVMDriver) *StateStore {
	return &StateStore{nvm: nvm, addr: StateAddress}
}

// Write unlocks NVM and stores the code for state.
// The unlock keys must reach the controller before the data byte.
func (s *StateStore) Write(state State) {
	s.nvm.Unlock(NVMKey1, NVMKey2)
	s.nvm.Store(s.addr, byte(state))
}

// Read decodes the stored byte. Anything other than a valid
// Halted or Running code reads as StateUnknown.
func (s *StateStore) Read() State {
	switch st := State(s.nvm.Load(s.addr)); st {
	case StateHalted, StateRunning:
		return st
	default:
		return StateUnknown
	}
}
