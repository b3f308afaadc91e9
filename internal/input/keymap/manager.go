package keymap

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/host"
)

// ErrNoOperator is returned for a Key without an operator.
var ErrNoOperator = errors.New("key has no operator")

// Manager tracks the bindings an add-on installs.
type Manager struct {
	mu       sync.Mutex
	configs  host.KeyConfigs
	disabled addon.DisabledChecker
	bindings []Binding
}

// New creates a manager over the host key configurations. disabled may be
// nil, in which case no operator is skipped.
func New(configs host.KeyConfigs, disabled addon.DisabledChecker) *Manager {
	return &Manager{
		configs:  configs,
		disabled: disabled,
	}
}

var (
	defaultManager     *Manager
	defaultManagerOnce sync.Once
)

// Default returns the process-wide manager. It has no host until SetHost
// is called.
func Default() *Manager {
	defaultManagerOnce.Do(func() {
		defaultManager = New(nil, addon.DefaultMarkers())
	})
	return defaultManager
}

// SetHost replaces the host key configurations used by later calls to Add.
func (m *Manager) SetHost(configs host.KeyConfigs) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs = configs
}

// Add binds keys in the keymap at loc. Keys whose operator is disabled are
// skipped. Without an active key configuration nothing is added.
//
// On a host error the bindings created so far are kept, returned and
// tracked.
func (m *Manager) Add(keys []Key, loc Location) ([]Binding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.configs == nil {
		return []Binding{}, nil
	}
	kc, ok := m.configs.AddonKeyConfig()
	if !ok || kc == nil {
		return []Binding{}, nil
	}

	km, err := kc.NewKeymap(loc.spec())
	if err != nil {
		return []Binding{}, fmt.Errorf("keymap %s: %w", loc.spec().Name, err)
	}

	added := make([]Binding, 0, len(keys))
	for _, k := range keys {
		if k.Operator == nil {
			err = ErrNoOperator
			break
		}
		if m.disabled != nil && m.disabled.IsDisabled(k.Operator) {
			continue
		}
		item, itemErr := km.NewItem(k.itemSpec())
		if itemErr != nil {
			err = fmt.Errorf("binding %s to %s: %w", k.Key, k.Operator.IDName(), itemErr)
			break
		}
		added = append(added, Binding{
			ID:       uuid.New(),
			Keymap:   km,
			Item:     item,
			Operator: k.Operator,
		})
	}

	m.bindings = append(m.bindings, added...)
	return added, err
}

// Delete removes one binding. It reports whether the binding was tracked
// and removed from its keymap.
func (m *Manager) Delete(b Binding) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, tracked := range m.bindings {
		if tracked.ID != b.ID {
			continue
		}
		if err := tracked.Keymap.RemoveItem(tracked.Item); err != nil {
			return false
		}
		m.bindings = append(m.bindings[:i], m.bindings[i+1:]...)
		return true
	}
	return false
}

// DeleteOperator removes every binding of op's idname. It reports whether
// any binding was removed.
func (m *Manager) DeleteOperator(op *addon.Class) bool {
	if op == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	idname := op.IDName()
	deleted := false
	kept := m.bindings[:0]
	for _, b := range m.bindings {
		if b.Item.IDName() == idname && b.Keymap.RemoveItem(b.Item) == nil {
			deleted = true
			continue
		}
		kept = append(kept, b)
	}
	m.bindings = kept
	return deleted
}

// Bindings returns the tracked bindings in creation order.
func (m *Manager) Bindings() []Binding {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Binding, len(m.bindings))
	copy(out, m.bindings)
	return out
}

// Len returns the number of tracked bindings.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bindings)
}

// Unregister removes every tracked binding. The tracking list is cleared
// even when the host rejects a removal; those errors are returned joined.
func (m *Manager) Unregister() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, b := range m.bindings {
		if err := b.Keymap.RemoveItem(b.Item); err != nil {
			errs = append(errs, err)
		}
	}
	m.bindings = nil
	return errors.Join(errs...)
}
