//go:build !windows

package hwaddr

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/j-keck/arping"
)

// arpingMAC sends one ARP echo and returns the responding hardware address.
// ARP can reach hosts that drop ICMP, but may require elevated privileges;
// any failure yields "".
func arpingMAC(ctx context.Context, addr net.IP, timeout time.Duration) string {
	arping.SetTimeout(timeout)

	type response struct {
		mac net.HardwareAddr
		err error
	}
	ch := make(chan response, 1)
	go func() {
		mac, _, err := arping.Ping(addr)
		ch <- response{mac: mac, err: err}
	}()

	select {
	case <-ctx.Done():
		return ""
	case resp := <-ch:
		if resp.err != nil {
			return ""
		}
		return strings.ToUpper(resp.mac.String())
	}
}
