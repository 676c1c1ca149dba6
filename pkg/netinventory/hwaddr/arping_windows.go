//go:build windows

package hwaddr

import (
	"context"
	"net"
	"time"
)

// arpingMAC is unavailable on Windows; resolution falls through to the
// targeted neighbor cache lookup.
func arpingMAC(_ context.Context, _ net.IP, _ time.Duration) string {
	return ""
}
