package netinventory

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/marcuoli/go-netinventory/pkg/netinventory/hostname"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/hwaddr"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/neighbor"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/netrange"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/oui"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/ping"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/ssdp"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/webprobe"
)

// HardwareResolver resolves a hardware address for one host, consulting the
// given neighbor cache snapshot first. Implemented by *hwaddr.Resolver.
type HardwareResolver interface {
	Resolve(ctx context.Context, addr net.IP, snapshot []neighbor.Entry) string
}

// PortProber probes one host's candidate ports for web services.
// Implemented by *webprobe.Prober.
type PortProber interface {
	ProbePorts(ctx context.Context, addr net.IP, ports []int) []webprobe.Record
}

// NoticeSource performs supplemental device discovery. Implemented by
// *ssdp.Discovery.
type NoticeSource interface {
	Discover(ctx context.Context) []ssdp.Notice
}

// NameResolver resolves a display name for one host. Implemented by
// *hostname.Resolver.
type NameResolver interface {
	Lookup(ctx context.Context, addr net.IP) string
}

// Scanner runs subnet scans. Construct with New; the dependency fields are
// exported so callers (and tests) can substitute their own implementations
// before the first Run.
type Scanner struct {
	Options Options

	// Neighbors reads the OS neighbor cache.
	Neighbors neighbor.Reader
	// Alive is the per-address liveness check used by the sweep.
	Alive ping.AliveFunc
	// Hardware resolves hardware addresses for hosts the snapshot missed.
	Hardware HardwareResolver
	// Vendors maps hardware addresses to manufacturer names.
	Vendors *oui.Table
	// Web probes hosts for reachable web services.
	Web PortProber
	// Notices is the supplemental discovery source, consulted only when
	// Options.EnableSSDP is set.
	Notices NoticeSource
	// Names resolves hostnames, consulted only when
	// Options.ResolveHostnames is set.
	Names NameResolver
	// LocalAddr determines the local IPv4 address.
	LocalAddr func() (net.IP, error)
}

// New creates a Scanner with platform defaults and the given options.
func New(opts Options) *Scanner {
	opts.applyDefaults()

	pinger := ping.NewPinger()
	pinger.Timeout = opts.PingTimeout

	prober := webprobe.NewProber(opts.HTTPTimeout)
	if opts.HTTPSPorts != nil {
		prober.HTTPSPorts = opts.HTTPSPorts
	}

	return &Scanner{
		Options:   opts,
		Neighbors: neighbor.NewReader(),
		Alive:     pinger.IsAlive,
		Hardware:  hwaddr.NewResolver(),
		Vendors:   oui.NewTable(),
		Web:       prober,
		Notices:   ssdp.NewDiscovery(),
		Names:     hostname.NewResolver(),
		LocalAddr: netrange.LocalAddr,
	}
}

// Run executes one full scan. The only fatal condition is an undeterminable
// scan range (ErrNoLocalNetwork); every later stage tolerates failure of its
// parts, and cancellation returns whatever has been gathered so far.
func (s *Scanner) Run(ctx context.Context) (*ScanResult, error) {
	started := time.Now()

	local, rng, err := s.resolveRange()
	if err != nil {
		return nil, err
	}
	debugLog("scan", "scanning %s (local address %v)", rng, local)

	result := &ScanResult{
		Range:     rng,
		LocalAddr: local,
		Started:   started,
	}

	hosts := make(map[uint32]*HostRecord)
	add := func(addr net.IP, src Source) *HostRecord {
		key := netrange.IPToUint32(addr)
		if rec, ok := hosts[key]; ok {
			return rec
		}
		rec := &HostRecord{Addr: addr, Source: src}
		hosts[key] = rec
		return rec
	}

	// Neighbor cache first: it is free and carries hardware addresses the
	// active stages would otherwise have to resolve.
	snapshot := s.Neighbors.Entries(ctx)
	for _, e := range snapshot {
		if !rng.Contains(e.Addr) && (local == nil || !e.Addr.Equal(local)) {
			continue
		}
		rec := add(e.Addr, SourceCache)
		if rec.MAC == "" {
			rec.MAC = e.MAC
		}
	}
	debugLog("neighbor", "cache snapshot: %d entries, %d in range", len(snapshot), len(hosts))

	for _, addr := range ping.Sweep(ctx, rng.Hosts(), s.Alive, ping.SweepOptions{
		Workers:  s.Options.SweepWorkers,
		Progress: s.Options.OnSweepProgress,
	}) {
		add(addr, SourceSweep)
	}
	debugLog("sweep", "%d hosts after sweep merge", len(hosts))

	if s.Options.EnableSSDP && s.Notices != nil {
		for _, n := range s.Notices.Discover(ctx) {
			if !rng.Contains(n.Addr) {
				continue
			}
			add(n.Addr, SourceSSDP)
			debugLogVerbose("ssdp", "%v announced %q", n.Addr, n.Server)
		}
	}

	if local != nil {
		rec := add(local, SourceLocal)
		rec.Source = SourceLocal
	}

	s.resolveHardware(ctx, hosts, snapshot)
	s.probeHosts(ctx, hosts)

	for _, rec := range hosts {
		result.Hosts = append(result.Hosts, *rec)
	}
	sort.Slice(result.Hosts, func(i, j int) bool {
		return netrange.Less(result.Hosts[i].Addr, result.Hosts[j].Addr)
	})

	result.Finished = time.Now()
	result.Duration = result.Finished.Sub(result.Started)
	debugLog("scan", "finished: %d hosts in %v", len(result.Hosts), result.Duration)
	return result, nil
}

// resolveRange determines the scan range, preferring the configured CIDR
// over auto-detection. Local address detection failure is fatal only when
// no override can supply the range.
func (s *Scanner) resolveRange() (net.IP, netrange.Range, error) {
	var local net.IP
	if s.LocalAddr != nil {
		local, _ = s.LocalAddr()
	}

	if s.Options.Network != "" {
		rng, err := netrange.Parse(s.Options.Network)
		if err != nil {
			return nil, netrange.Range{}, err
		}
		return local, rng, nil
	}

	if local == nil {
		return nil, netrange.Range{}, ErrNoLocalNetwork
	}
	rng, err := netrange.FromAddr(local, s.Options.Prefix)
	if err != nil {
		return nil, netrange.Range{}, fmt.Errorf("%w: %v", ErrNoLocalNetwork, err)
	}
	return local, rng, nil
}

// resolveHardware fills in MAC and vendor for every host. Hosts the cache
// snapshot already covered only need the vendor lookup.
func (s *Scanner) resolveHardware(ctx context.Context, hosts map[uint32]*HostRecord, snapshot []neighbor.Entry) {
	for _, rec := range hosts {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if rec.MAC == "" && s.Hardware != nil {
			rec.MAC = s.Hardware.Resolve(ctx, rec.Addr, snapshot)
		}
		if rec.MAC != "" && s.Vendors != nil {
			rec.Vendor = s.Vendors.Lookup(rec.MAC)
			debugLogVerbose("hwaddr", "%v is %s (%s)", rec.Addr, rec.MAC, rec.Vendor)
		}
	}
}

// probeHosts fans the per-host enrichment (web probing and optional
// hostname resolution) across a bounded worker pool. Workers write only to
// their own host's record; the map itself is not mutated.
func (s *Scanner) probeHosts(ctx context.Context, hosts map[uint32]*HostRecord) {
	if s.Web == nil {
		return
	}
	workers := s.Options.WebWorkers
	if workers > len(hosts) {
		workers = len(hosts)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan *HostRecord, len(hosts))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for rec := range jobs {
			rec.Services = s.Web.ProbePorts(ctx, rec.Addr, s.Options.Ports)
			if s.Options.ResolveHostnames && s.Names != nil {
				rec.Hostname = s.Names.Lookup(ctx, rec.Addr)
			}
			debugLogVerbose("webprobe", "%v: %d services", rec.Addr, len(rec.Services))
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

enqueue:
	for _, rec := range hosts {
		select {
		case <-ctx.Done():
			break enqueue
		case jobs <- rec:
		}
	}
	close(jobs)
	wg.Wait()
}
