// Package hwaddr resolves hardware addresses for hosts the neighbor cache
// snapshot missed.
//
// Resolution order: the caller's private cache snapshot, then one ARP echo
// (Unix only, via github.com/j-keck/arping), then one targeted neighbor
// cache lookup, since the preceding liveness probe usually leaves a fresh
// entry behind. Every step is best effort; an unresolved host simply has no
// hardware address.
package hwaddr

import (
	"context"
	"net"
	"time"

	"github.com/marcuoli/go-netinventory/pkg/netinventory/neighbor"
)

const defaultTimeout = 1 * time.Second

// Resolver resolves hardware addresses for individual hosts. It never
// mutates the snapshot it is given and is safe to call concurrently for
// different addresses.
type Resolver struct {
	Timeout time.Duration
	// Neighbors performs the follow-up targeted lookup. Defaults to the
	// platform reader.
	Neighbors neighbor.Reader
}

// NewResolver creates a Resolver with platform defaults.
func NewResolver() *Resolver {
	return &Resolver{
		Timeout:   defaultTimeout,
		Neighbors: neighbor.NewReader(),
	}
}

// Resolve returns the hardware address for addr in canonical uppercase
// colon-separated form, or "" when it cannot be determined. The snapshot,
// when it holds the address, always wins.
func (r *Resolver) Resolve(ctx context.Context, addr net.IP, snapshot []neighbor.Entry) string {
	if addr == nil || addr.To4() == nil {
		return ""
	}
	for _, e := range snapshot {
		if e.Addr.Equal(addr) {
			return e.MAC
		}
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if mac := arpingMAC(ctx, addr, timeout); mac != "" {
		return mac
	}

	if r.Neighbors == nil {
		return ""
	}
	return r.Neighbors.Lookup(ctx, addr)
}
