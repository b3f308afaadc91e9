package memhost

import (
	"fmt"
	"sync"

	"github.com/dshills/addonkit/internal/host"
)

// KeyConfig is an in-memory key configuration.
type KeyConfig struct {
	mu      sync.Mutex
	keymaps []*Keymap
}

// NewKeymap implements host.KeyConfig.
func (kc *KeyConfig) NewKeymap(spec host.KeymapSpec) (host.Keymap, error) {
	kc.mu.Lock()
	defer kc.mu.Unlock()

	for _, km := range kc.keymaps {
		if km.spec == spec {
			return km, nil
		}
	}
	km := &Keymap{spec: spec}
	kc.keymaps = append(kc.keymaps, km)
	return km, nil
}

// Keymaps returns all keymaps in creation order.
func (kc *KeyConfig) Keymaps() []*Keymap {
	kc.mu.Lock()
	defer kc.mu.Unlock()
	out := make([]*Keymap, len(kc.keymaps))
	copy(out, kc.keymaps)
	return out
}

// ItemCount returns the number of bindings across all keymaps.
func (kc *KeyConfig) ItemCount() int {
	n := 0
	for _, km := range kc.Keymaps() {
		n += len(km.Items())
	}
	return n
}

// Keymap is an in-memory keymap.
type Keymap struct {
	mu    sync.Mutex
	spec  host.KeymapSpec
	items []*Item
}

// Spec implements host.Keymap.
func (km *Keymap) Spec() host.KeymapSpec {
	return km.spec
}

// NewItem implements host.Keymap.
func (km *Keymap) NewItem(spec host.ItemSpec) (host.KeymapItem, error) {
	if spec.IDName == "" {
		return nil, fmt.Errorf("keymap %s: empty operator idname", km.spec.Name)
	}
	km.mu.Lock()
	defer km.mu.Unlock()

	item := &Item{spec: spec}
	km.items = append(km.items, item)
	return item, nil
}

// RemoveItem implements host.Keymap.
func (km *Keymap) RemoveItem(item host.KeymapItem) error {
	km.mu.Lock()
	defer km.mu.Unlock()

	for i, it := range km.items {
		if host.KeymapItem(it) == item {
			km.items = append(km.items[:i], km.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("keymap %s: item %s: %w", km.spec.Name, item.IDName(), host.ErrNotFound)
}

// Items returns the keymap's bindings.
func (km *Keymap) Items() []*Item {
	km.mu.Lock()
	defer km.mu.Unlock()
	out := make([]*Item, len(km.items))
	copy(out, km.items)
	return out
}

// Item is an in-memory keymap item.
type Item struct {
	spec host.ItemSpec
}

// IDName implements host.KeymapItem.
func (it *Item) IDName() string {
	return it.spec.IDName
}

// Spec returns the binding description.
func (it *Item) Spec() host.ItemSpec {
	return it.spec
}
