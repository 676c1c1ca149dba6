// Package netinventory discovers devices on a local IPv4 subnet and probes
// them for reachable web services, producing a structured inventory.
//
// A scan merges the OS neighbor cache, an active ping sweep, and optionally
// SSDP announcements into a deduplicated host
// set, resolves hardware addresses and vendor names, and fans out bounded
// concurrent HTTP(S) probes across a fixed port list per host. Failures
// finer-grained than the whole scan never abort it; partial results are
// always returned.
package netinventory

import (
	"errors"
	"net"
	"time"

	"github.com/marcuoli/go-netinventory/pkg/netinventory/netrange"
	"github.com/marcuoli/go-netinventory/pkg/netinventory/webprobe"
)

// ErrNoLocalNetwork is returned when the local address cannot be determined
// and no network override was configured. It is the only scan-fatal
// condition and is distinct from a scan that simply found no devices.
var ErrNoLocalNetwork = errors.New("local network could not be determined")

// Source records which discovery path first observed a host.
type Source string

const (
	SourceCache Source = "cache"
	SourceSweep Source = "sweep"
	SourceSSDP  Source = "ssdp"
	SourceLocal Source = "local"
)

// HostRecord is one discovered device. Records are owned by the scan that
// created them and are immutable once Run returns.
type HostRecord struct {
	// Addr is the host's IPv4 address, unique within a scan.
	Addr net.IP
	// MAC is the hardware address in uppercase colon-separated form, or
	// "" when unresolved.
	MAC string
	// Vendor is the manufacturer derived from the MAC's OUI prefix:
	// "Unknown" when a MAC is present but unmatched, "" when no MAC.
	Vendor string
	// Hostname is the resolved display name, when hostname resolution
	// is enabled and succeeds.
	Hostname string
	// Source is the discovery path that first observed this host.
	Source Source
	// Services lists reachable web services in candidate-port order.
	Services []webprobe.Record
}

// ScanResult is the outcome of one scan. Every host lies within Range
// except the local host, which is always included.
type ScanResult struct {
	Range     netrange.Range
	LocalAddr net.IP
	Hosts     []HostRecord
	Started   time.Time
	Finished  time.Time
	Duration  time.Duration
}

// Options configures a scan. The zero value scans the auto-detected /24
// with all defaults.
type Options struct {
	// Ports to probe for web services on each host.
	// Default: webprobe.DefaultPorts.
	Ports []int
	// HTTPSPorts are tried encrypted first. Default: 443 and 8443.
	HTTPSPorts []int
	// PingTimeout bounds each liveness probe. Default 1s.
	PingTimeout time.Duration
	// HTTPTimeout bounds each web probe request. Default 3s.
	HTTPTimeout time.Duration
	// SweepWorkers is the liveness probe pool width. Default 50.
	SweepWorkers int
	// WebWorkers is the host-level web probe pool width. Default 5.
	WebWorkers int
	// Network overrides auto-detection with an explicit CIDR.
	Network string
	// Prefix is the prefix length used when auto-detecting the range.
	// Default 24.
	Prefix int
	// EnableSSDP merges SSDP announcements as a third discovery source.
	EnableSSDP bool
	// ResolveHostnames enables reverse-DNS/LLMNR hostname resolution.
	ResolveHostnames bool
	// OnSweepProgress, when set, receives a monotonically increasing
	// checked count during the sweep. Observational only.
	OnSweepProgress func(done, total int)
}

// DefaultPingTimeout bounds each liveness probe when unset.
const DefaultPingTimeout = 1 * time.Second

// DefaultWebWorkers is the default host-level web probe concurrency.
const DefaultWebWorkers = 5

// DefaultPrefix is the prefix length assumed when deriving the range from
// the local address.
const DefaultPrefix = 24

func (o *Options) applyDefaults() {
	if len(o.Ports) == 0 {
		o.Ports = webprobe.DefaultPorts
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = DefaultPingTimeout
	}
	if o.HTTPTimeout <= 0 {
		o.HTTPTimeout = webprobe.DefaultTimeout
	}
	if o.SweepWorkers <= 0 {
		o.SweepWorkers = 50
	}
	if o.WebWorkers <= 0 {
		o.WebWorkers = DefaultWebWorkers
	}
	if o.Prefix == 0 {
		o.Prefix = DefaultPrefix
	}
}
