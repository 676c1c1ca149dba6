// Package oui classifies hardware addresses by manufacturer using the
// organizationally unique identifier (OUI) prefix.
//
// Lookups hit a built-in static table first and can optionally fall back to
// the IEEE OUI database via github.com/klauspost/oui for prefixes the table
// does not carry.
package oui

import (
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/klauspost/oui"
)

// Unknown is returned for hardware addresses with no table match.
const Unknown = "Unknown"

// Table maps OUI prefixes to manufacturer names. The zero value is not
// usable; construct with NewTable. A Table is immutable after construction
// and safe for concurrent lookups.
type Table struct {
	entries map[string]string

	useDB  bool
	dbOnce sync.Once
	db     oui.OuiDB
}

// Option configures a Table.
type Option func(*Table)

// WithIEEEDatabase enables fallback lookups against the embedded IEEE OUI
// database for prefixes missing from the static table.
func WithIEEEDatabase() Option {
	return func(t *Table) { t.useDB = true }
}

// WithEntries merges extra prefix-to-vendor pairs into the table. Keys are
// normalized like lookup input; later options win on conflict.
func WithEntries(entries map[string]string) Option {
	return func(t *Table) {
		for prefix, name := range entries {
			if key := NormalizePrefix(prefix); key != "" {
				t.entries[key] = name
			}
		}
	}
}

// NewTable builds a vendor table seeded with the built-in OUI entries.
func NewTable(opts ...Option) *Table {
	t := &Table{entries: make(map[string]string, len(builtinOUIs))}
	for prefix, name := range builtinOUIs {
		t.entries[prefix] = name
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Lookup returns the manufacturer for a hardware address, or Unknown. It is
// a pure function of the loaded table: the same input always yields the
// same name, and it never fails.
func (t *Table) Lookup(mac string) string {
	prefix := NormalizePrefix(mac)
	if prefix == "" {
		return Unknown
	}
	if name, ok := t.entries[prefix]; ok {
		return name
	}
	if name := t.lookupDB(mac); name != "" {
		return name
	}
	return Unknown
}

func (t *Table) lookupDB(mac string) string {
	if !t.useDB {
		return ""
	}
	t.dbOnce.Do(func() {
		db, err := oui.OpenStaticFile("")
		if err == nil {
			t.db = db
		}
	})
	if t.db == nil {
		return ""
	}
	hw, err := net.ParseMAC(strings.ReplaceAll(strings.TrimSpace(mac), "-", ":"))
	if err != nil {
		return ""
	}
	entry, err := t.db.Query(hw.String())
	if err != nil || entry == nil {
		return ""
	}
	return entry.Manufacturer
}

// NormalizePrefix reduces a hardware address (full or prefix, any common
// separator, any case) to its canonical OUI form "AA:BB:CC". Returns ""
// when fewer than three octets are recognizable.
func NormalizePrefix(mac string) string {
	mac = strings.ToUpper(strings.TrimSpace(mac))
	mac = strings.ReplaceAll(mac, "-", "")
	mac = strings.ReplaceAll(mac, ":", "")
	mac = strings.ReplaceAll(mac, ".", "")
	if len(mac) < 6 {
		return ""
	}
	for _, c := range mac[:6] {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return ""
		}
	}
	return fmt.Sprintf("%s:%s:%s", mac[0:2], mac[2:4], mac[4:6])
}
