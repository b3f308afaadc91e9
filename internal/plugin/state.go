package plugin

// State is the registration state of an add-on.
type State int

// Registration states.
const (
	// StateUnregistered - no class of the add-on is known to the host.
	StateUnregistered State = iota

	// StateRegistered - every ranked class is registered with the host.
	StateRegistered
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateRegistered:
		return "registered"
	default:
		return "unknown"
	}
}
