// Package hostname resolves display names for discovered hosts. Reverse
// DNS is tried first; hosts without PTR records (Windows boxes, many IoT
// devices) get one LLMNR query, built and parsed with
// github.com/miekg/dns.
package hostname

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	llmnrPort          = 5355
	llmnrMulticastAddr = "224.0.0.252"
	defaultTimeout     = 2 * time.Second
)

// Resolver resolves hostnames best effort.
type Resolver struct {
	Timeout time.Duration
}

// NewResolver creates a hostname resolver with defaults.
func NewResolver() *Resolver {
	return &Resolver{Timeout: defaultTimeout}
}

// Lookup returns a hostname for addr, or "" when none can be found. It
// never returns an error; name resolution is strictly optional metadata.
func (r *Resolver) Lookup(ctx context.Context, addr net.IP) string {
	if addr == nil || addr.To4() == nil {
		return ""
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if name := reverseDNS(ctx, addr, timeout); name != "" {
		return name
	}
	return r.llmnrPTR(ctx, addr, timeout)
}

func reverseDNS(ctx context.Context, addr net.IP, timeout time.Duration) string {
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver := &net.Resolver{}
	names, err := resolver.LookupAddr(lookupCtx, addr.String())
	if err != nil || len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}

// llmnrPTR sends one multicast PTR query and waits for a response from the
// target address.
func (r *Resolver) llmnrPTR(ctx context.Context, addr net.IP, timeout time.Duration) string {
	ip4 := addr.To4()
	reverseName := fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa.", ip4[3], ip4[2], ip4[1], ip4[0])

	msg := new(dns.Msg)
	msg.SetQuestion(reverseName, dns.TypePTR)
	msg.RecursionDesired = false // LLMNR does not use recursion

	data, err := msg.Pack()
	if err != nil {
		return ""
	}

	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return ""
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	mcastAddr := &net.UDPAddr{IP: net.ParseIP(llmnrMulticastAddr), Port: llmnrPort}
	if _, err := conn.WriteTo(data, mcastAddr); err != nil {
		return ""
	}

	buf := make([]byte, 4096)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			return ""
		}
		udpAddr, ok := from.(*net.UDPAddr)
		if !ok || !udpAddr.IP.Equal(addr) {
			continue
		}
		if name := ParsePTRResponse(buf[:n]); name != "" {
			return name
		}
	}
}

// ParsePTRResponse extracts the first PTR hostname from a DNS/LLMNR
// response packet, without its trailing dot. Returns "" for anything that
// is not a response carrying a PTR answer.
func ParsePTRResponse(data []byte) string {
	msg := new(dns.Msg)
	if err := msg.Unpack(data); err != nil {
		return ""
	}
	if !msg.Response {
		return ""
	}
	for _, rr := range msg.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			return strings.TrimSuffix(ptr.Ptr, ".")
		}
	}
	return ""
}
