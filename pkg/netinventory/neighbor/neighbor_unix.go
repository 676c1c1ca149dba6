//go:build !windows

package neighbor

import (
	"context"
	"net"
	"os"
	"os/exec"
	"runtime"
	"time"
)

const commandTimeout = 10 * time.Second

// unixReader reads the neighbor cache on Linux, macOS, and the BSDs.
// Linux exposes the table at /proc/net/arp; everywhere else it comes
// from `arp -a`.
type unixReader struct{}

func newPlatformReader() Reader {
	return &unixReader{}
}

func (r *unixReader) Entries(ctx context.Context) []Entry {
	if runtime.GOOS == "linux" {
		if data, err := os.ReadFile("/proc/net/arp"); err == nil {
			return parseProcNetARP(string(data))
		}
		// /proc unavailable (containers, hardened kernels); fall
		// through to the arp command.
	}
	out, err := runCommand(ctx, "arp", "-a")
	if err != nil {
		return nil
	}
	return parseUnixARP(out)
}

func (r *unixReader) Lookup(ctx context.Context, addr net.IP) string {
	if addr == nil || addr.To4() == nil {
		return ""
	}
	out, err := runCommand(ctx, "arp", "-n", addr.String())
	if err != nil {
		// Some BSDs lack -n in this position; retry the portable form.
		out, err = runCommand(ctx, "arp", "-a", addr.String())
		if err != nil {
			return ""
		}
	}
	if entries := parseUnixARP(out); len(entries) > 0 {
		if mac := findMAC(entries, addr.To4()); mac != "" {
			return mac
		}
	}
	// Linux `arp -n` prints a column table rather than BSD prose.
	return findMAC(parseLinuxARPn(out), addr.To4())
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	out, err := exec.CommandContext(cctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
