//go:build windows

package neighbor

import (
	"context"
	"net"
	"os/exec"
	"time"
)

const commandTimeout = 10 * time.Second

// windowsReader reads the neighbor cache via `arp -a`.
type windowsReader struct{}

func newPlatformReader() Reader {
	return &windowsReader{}
}

func (r *windowsReader) Entries(ctx context.Context) []Entry {
	out, err := runCommand(ctx, "arp", "-a")
	if err != nil {
		return nil
	}
	return parseWindowsARP(out)
}

func (r *windowsReader) Lookup(ctx context.Context, addr net.IP) string {
	if addr == nil || addr.To4() == nil {
		return ""
	}
	out, err := runCommand(ctx, "arp", "-a", addr.String())
	if err != nil {
		return ""
	}
	return findMAC(parseWindowsARP(out), addr.To4())
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
