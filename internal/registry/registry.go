// Package registry maintains the durable mapping from zone name to the
// person responsible for that zone.
package registry

import (
	"fmt"
	"log/slog"
	"sync"
)

// Sentinel is returned by Lookup for zones with no registered owner.
const Sentinel = "Unknown Concern"

// Entry is one registry row.
type Entry struct {
	Zone  string
	Owner string
}

// Store loads and saves the full registry table. Save replaces the whole
// table; the persisted file is the sole source of truth across restarts.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// Registry is the process-wide zone owner table. It is constructed once and
// passed to every component that needs it; all mutation goes through Upsert.
type Registry struct {
	store Store
	mu    sync.RWMutex
	// owners maps zone -> owner. zones preserves insertion order so Save
	// rewrites the table in a stable order.
	owners map[string]string
	zones  []string
}

// Load builds a Registry from the store. A missing or unreadable store is
// not fatal: the registry starts empty and the condition is logged as a
// warning, per the rule that notification must still work with sentinel
// owners.
func Load(store Store, logger *slog.Logger) *Registry {
	r := &Registry{store: store, owners: make(map[string]string)}

	entries, err := store.Load()
	if err != nil {
		logger.Warn("zone registry unavailable, starting empty", "error", err)
		return r
	}
	for _, e := range entries {
		if e.Zone == "" {
			continue
		}
		if _, ok := r.owners[e.Zone]; !ok {
			r.zones = append(r.zones, e.Zone)
		}
		r.owners[e.Zone] = e.Owner
	}
	return r
}

// Lookup returns the owner registered for zone, or Sentinel when the zone is
// absent. Never fails.
func (r *Registry) Lookup(zone string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[zone]
	if !ok || owner == "" {
		return Sentinel
	}
	return owner
}

// Upsert sets the owner for zone, inserting the zone when it is not present.
// The full table is written to the store before the in-memory state changes;
// a save failure leaves the registry exactly as it was.
func (r *Registry) Upsert(zone, owner string) error {
	if zone == "" {
		return fmt.Errorf("upsert registry: empty zone")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	zones := r.zones
	if _, ok := r.owners[zone]; !ok {
		zones = append(append([]string(nil), r.zones...), zone)
	}

	entries := make([]Entry, 0, len(zones))
	for _, z := range zones {
		e := Entry{Zone: z, Owner: r.owners[z]}
		if z == zone {
			e.Owner = owner
		}
		entries = append(entries, e)
	}

	if err := r.store.Save(entries); err != nil {
		return fmt.Errorf("save zone registry: %w", err)
	}

	r.zones = zones
	r.owners[zone] = owner
	return nil
}

// Zones returns the registered zone names in table order.
func (r *Registry) Zones() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.zones...)
}
