// Package netinventory end-to-end scan tests with substituted stages.
package netinventory

import (
	"context"
	"net"
	"testing"

	"github.com/marcuoli/go-netinventory/pkg/netinventory/neighbor"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/oui"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/ssdp"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/webprobe"
)

type fakeNeighbors struct {
	entries []neighbor.Entry
}

func (f *fakeNeighbors) Entries(ctx context.Context) []neighbor.Entry { return f.entries }
func (f *fakeNeighbors) Lookup(ctx context.Context, addr net.IP) string {
	return neighborMAC(f.entries, addr)
}

func neighborMAC(entries []neighbor.Entry, addr net.IP) string {
	for _, e := range entries {
		if e.Addr.Equal(addr) {
			return e.MAC
		}
	}
	return ""
}

type fakeHardware struct {
	macs map[string]string
}

func (f *fakeHardware) Resolve(ctx context.Context, addr net.IP, snapshot []neighbor.Entry) string {
	if mac := neighborMAC(snapshot, addr); mac != "" {
		return mac
	}
	return f.macs[addr.String()]
}

type fakeProber struct {
	services map[string][]webprobe.Record
}

func (f *fakeProber) ProbePorts(ctx context.Context, addr net.IP, ports []int) []webprobe.Record {
	return f.services[addr.String()]
}

type fakeNotices struct {
	notices []ssdp.Notice
}

func (f *fakeNotices) Discover(ctx context.Context) []ssdp.Notice { return f.notices }

type fakeNames struct {
	names map[string]string
}

func (f *fakeNames) Lookup(ctx context.Context, addr net.IP) string {
	return f.names[addr.String()]
}

func entry(addr, mac string) neighbor.Entry {
	return neighbor.Entry{Addr: net.ParseIP(addr).To4(), MAC: mac}
}

func aliveSet(addrs ...string) func(context.Context, net.IP) bool {
	set := make(map[string]bool, len(addrs))
	for _, a := range addrs {
		set[a] = true
	}
	return func(ctx context.Context, addr net.IP) bool { return set[addr.String()] }
}

// testScanner builds a Scanner whose every stage is substituted, on the
// 192.168.1.0/24 network with local address 192.168.1.10.
func testScanner(opts Options) *Scanner {
	s := New(opts)
	s.Neighbors = &fakeNeighbors{}
	s.Alive = aliveSet()
	s.Hardware = &fakeHardware{}
	s.Vendors = oui.NewTable()
	s.Web = &fakeProber{}
	s.Notices = &fakeNotices{}
	s.Names = &fakeNames{}
	s.LocalAddr = func() (net.IP, error) { return net.ParseIP("192.168.1.10").To4(), nil }
	return s
}

func hostByAddr(t *testing.T, result *ScanResult, addr string) HostRecord {
	t.Helper()
	for _, h := range result.Hosts {
		if h.Addr.String() == addr {
			return h
		}
	}
	t.Fatalf("host %s not in result: %+v", addr, result.Hosts)
	return HostRecord{}
}

func TestRunMergesCacheAndSweep(t *testing.T) {
	s := testScanner(Options{})
	s.Neighbors = &fakeNeighbors{entries: []neighbor.Entry{
		entry("192.168.1.1", "A4:91:B1:11:22:33"),
		entry("192.168.1.20", "B8:27:EB:AA:BB:CC"),
		entry("10.9.9.9", "00:0C:29:00:00:01"), // other interface, out of range
	}}
	// .20 is in both sources, .30 only answers ping
	s.Alive = aliveSet("192.168.1.20", "192.168.1.30")
	s.Hardware = &fakeHardware{macs: map[string]string{
		"192.168.1.30": "DC:A6:32:01:02:03",
	}}

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	// Gateway, .20 (deduplicated), .30, and the local host
	if len(result.Hosts) != 4 {
		t.Fatalf("got %d hosts, want 4: %+v", len(result.Hosts), result.Hosts)
	}
	gw := hostByAddr(t, result, "192.168.1.1")
	if gw.Source != SourceCache || gw.MAC != "A4:91:B1:11:22:33" {
		t.Errorf("gateway = %+v", gw)
	}

	both := hostByAddr(t, result, "192.168.1.20")
	if both.Source != SourceCache {
		t.Errorf("cache-first host attributed to %q, want cache", both.Source)
	}
	if both.Vendor != "Raspberry Pi" {
		t.Errorf("vendor = %q, want Raspberry Pi", both.Vendor)
	}

	swept := hostByAddr(t, result, "192.168.1.30")
	if swept.Source != SourceSweep || swept.MAC != "DC:A6:32:01:02:03" {
		t.Errorf("swept host = %+v", swept)
	}

	local := hostByAddr(t, result, "192.168.1.10")
	if local.Source != SourceLocal {
		t.Errorf("local host source = %q, want local", local.Source)
	}
	if !result.LocalAddr.Equal(net.ParseIP("192.168.1.10")) {
		t.Errorf("LocalAddr = %v", result.LocalAddr)
	}

	for _, h := range result.Hosts {
		if h.Addr.String() == "10.9.9.9" {
			t.Error("out-of-range cache entry leaked into the result")
		}
	}
}

func TestRunSortsByAddress(t *testing.T) {
	s := testScanner(Options{})
	s.Alive = aliveSet("192.168.1.200", "192.168.1.3", "192.168.1.77")

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := []string{"192.168.1.3", "192.168.1.10", "192.168.1.77", "192.168.1.200"}
	if len(result.Hosts) != len(want) {
		t.Fatalf("got %d hosts, want %d", len(result.Hosts), len(want))
	}
	for i, h := range result.Hosts {
		if h.Addr.String() != want[i] {
			t.Errorf("host[%d] = %s, want %s", i, h.Addr, want[i])
		}
	}
}

func TestRunWebServicesAndNames(t *testing.T) {
	s := testScanner(Options{ResolveHostnames: true})
	s.Alive = aliveSet("192.168.1.50")
	s.Web = &fakeProber{services: map[string][]webprobe.Record{
		"192.168.1.50": {
			{Port: 80, Scheme: "http", StatusCode: 200, Server: "lighttpd", Title: "NAS"},
			{Port: 443, Scheme: "https", StatusCode: 200},
		},
	}}
	s.Names = &fakeNames{names: map[string]string{"192.168.1.50": "nas.lan"}}

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	host := hostByAddr(t, result, "192.168.1.50")
	if len(host.Services) != 2 || host.Services[0].Port != 80 || host.Services[1].Port != 443 {
		t.Errorf("services = %+v", host.Services)
	}
	if host.Hostname != "nas.lan" {
		t.Errorf("hostname = %q, want nas.lan", host.Hostname)
	}
}

func TestRunHostnamesOffByDefault(t *testing.T) {
	s := testScanner(Options{})
	s.Alive = aliveSet("192.168.1.50")
	s.Names = &fakeNames{names: map[string]string{"192.168.1.50": "nas.lan"}}

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got := hostByAddr(t, result, "192.168.1.50").Hostname; got != "" {
		t.Errorf("hostname resolved without opt-in: %q", got)
	}
}

func TestRunSSDP(t *testing.T) {
	notices := []ssdp.Notice{
		{Addr: net.ParseIP("192.168.1.60").To4(), Server: "Roku/9.0"},
		{Addr: net.ParseIP("10.0.0.60").To4(), Server: "out of range"},
	}

	// Disabled: the source must not be consulted
	s := testScanner(Options{})
	s.Notices = &fakeNotices{notices: notices}
	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(result.Hosts) != 1 { // local host only
		t.Fatalf("SSDP merged while disabled: %+v", result.Hosts)
	}

	// Enabled: in-range notices merge, out-of-range ones do not
	s = testScanner(Options{EnableSSDP: true})
	s.Notices = &fakeNotices{notices: notices}
	result, err = s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(result.Hosts) != 2 {
		t.Fatalf("got %d hosts, want 2: %+v", len(result.Hosts), result.Hosts)
	}
	if got := hostByAddr(t, result, "192.168.1.60"); got.Source != SourceSSDP {
		t.Errorf("SSDP host source = %q", got.Source)
	}
}

func TestRunNetworkOverride(t *testing.T) {
	s := testScanner(Options{Network: "10.1.2.0/24"})
	s.Alive = aliveSet("10.1.2.9")

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.Range.String() != "10.1.2.0/24" {
		t.Errorf("Range = %s, want 10.1.2.0/24", result.Range)
	}
	// Local host is outside the override but still reported
	hostByAddr(t, result, "10.1.2.9")
	hostByAddr(t, result, "192.168.1.10")
}

func TestRunNoLocalNetwork(t *testing.T) {
	s := testScanner(Options{})
	s.LocalAddr = func() (net.IP, error) { return nil, net.ErrClosed }

	if _, err := s.Run(context.Background()); err != ErrNoLocalNetwork {
		t.Fatalf("Run error = %v, want ErrNoLocalNetwork", err)
	}

	// An explicit network keeps the scan alive without a local address.
	s = testScanner(Options{Network: "10.1.2.0/24"})
	s.LocalAddr = func() (net.IP, error) { return nil, net.ErrClosed }
	s.Alive = aliveSet("10.1.2.9")

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run with override error: %v", err)
	}
	if len(result.Hosts) != 1 || result.Hosts[0].Addr.String() != "10.1.2.9" {
		t.Errorf("hosts = %+v", result.Hosts)
	}
}

func TestRunInvalidOverride(t *testing.T) {
	s := testScanner(Options{Network: "not-a-cidr"})
	if _, err := s.Run(context.Background()); err == nil {
		t.Fatal("Run accepted an invalid network override")
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := testScanner(Options{})
	result, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run on cancelled context error: %v", err)
	}
	// No sweep ran, but the local host is still reported.
	hostByAddr(t, result, "192.168.1.10")
}
