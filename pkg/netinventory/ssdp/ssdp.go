// Package ssdp provides a supplemental discovery source: one SSDP M-SEARCH
// over the local network via github.com/koron/go-ssdp. Devices that ignore
// ICMP and never enter the neighbor cache (smart TVs, media boxes, NAS
// units) often still announce themselves over SSDP.
package ssdp

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/koron/go-ssdp"
)

const defaultTimeout = 3 * time.Second

// Notice is one SSDP response mapped to the announcing address.
type Notice struct {
	Addr     net.IP
	Server   string // SERVER header (device/OS hint), may be empty
	Location string // device description URL, may be empty
}

// Discovery performs SSDP M-SEARCH discovery.
type Discovery struct {
	Timeout time.Duration
}

// NewDiscovery creates an SSDP discovery helper with defaults.
func NewDiscovery() *Discovery {
	return &Discovery{Timeout: defaultTimeout}
}

// Discover sends one multicast M-SEARCH for all devices and returns one
// Notice per responding address. Best effort: any failure yields an empty
// result. Duplicate announcements from the same address collapse into the
// first one seen.
func (d *Discovery) Discover(ctx context.Context) []Notice {
	waitSec := int(d.Timeout.Seconds())
	if waitSec < 1 {
		waitSec = 1
	}

	type searchResult struct {
		services []ssdp.Service
		err      error
	}
	ch := make(chan searchResult, 1)
	go func() {
		services, err := ssdp.Search(ssdp.All, waitSec, "")
		ch <- searchResult{services: services, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil
	case res := <-ch:
		if res.err != nil {
			return nil
		}
		return collapse(res.services)
	}
}

func collapse(services []ssdp.Service) []Notice {
	seen := make(map[string]struct{})
	var notices []Notice
	for _, svc := range services {
		addr := addrFromLocation(svc.Location)
		if addr == nil {
			continue
		}
		key := addr.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		notices = append(notices, Notice{
			Addr:     addr,
			Server:   svc.Server,
			Location: svc.Location,
		})
	}
	return notices
}

// addrFromLocation extracts the IPv4 address from a device description URL
// like "http://192.168.1.20:8060/desc.xml".
func addrFromLocation(location string) net.IP {
	rest := strings.TrimPrefix(location, "http://")
	rest = strings.TrimPrefix(rest, "https://")
	if idx := strings.Index(rest, "/"); idx >= 0 {
		rest = rest[:idx]
	}
	host, _, err := net.SplitHostPort(rest)
	if err != nil {
		host = rest
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return nil
	}
	return ip.To4()
}
