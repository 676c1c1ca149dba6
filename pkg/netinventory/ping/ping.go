// Package ping provides single-host liveness probing via the platform ping
// command and a bounded concurrent subnet sweeper built on top of it.
package ping

import (
	"context"
	"net"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// DefaultTimeout is the per-host probe timeout when none is given.
const DefaultTimeout = 1 * time.Second

// graceTimeout is added to the context deadline beyond the ping timeout so
// the command can exit on its own before being killed.
const graceTimeout = 500 * time.Millisecond

// Pinger runs one ICMP echo per call through the OS ping command. It needs
// no raw sockets or elevated privileges and therefore works across
// platforms.
type Pinger struct {
	Timeout time.Duration
}

// NewPinger creates a Pinger with the default timeout.
func NewPinger() *Pinger {
	return &Pinger{Timeout: DefaultTimeout}
}

// IsAlive sends a single echo request to addr and reports whether a reply
// arrived within the timeout. It never returns an error: command failures,
// timeouts, and unroutable targets are all simply false. Safe to call from
// many goroutines at once.
func (p *Pinger) IsAlive(ctx context.Context, addr net.IP) bool {
	if addr == nil || addr.To4() == nil {
		return false
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	args := pingArgs(runtime.GOOS, addr.String(), timeout)

	cctx, cancel := context.WithTimeout(ctx, timeout+graceTimeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, args[0], args[1:]...)
	return cmd.Run() == nil
}

// pingArgs builds the ping invocation for one echo request with the timeout
// translated to the unit each platform expects.
func pingArgs(goos, addr string, timeout time.Duration) []string {
	switch goos {
	case "windows":
		// -n count, -w timeout in milliseconds
		return []string{"ping", "-n", "1", "-w", strconv.FormatInt(timeout.Milliseconds(), 10), addr}
	case "darwin", "freebsd", "netbsd", "openbsd":
		// -W wait time in milliseconds on the BSD lineage
		return []string{"ping", "-c", "1", "-W", strconv.FormatInt(timeout.Milliseconds(), 10), addr}
	default:
		// Linux -W takes whole seconds; round up so sub-second
		// timeouts do not collapse to zero.
		secs := int64((timeout + time.Second - 1) / time.Second)
		if secs < 1 {
			secs = 1
		}
		return []string{"ping", "-c", "1", "-W", strconv.FormatInt(secs, 10), addr}
	}
}
