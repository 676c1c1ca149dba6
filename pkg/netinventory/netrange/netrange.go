// Package netrange models IPv4 scan ranges: CIDR parsing, usable host
// enumeration, and detection of the local address and its /24 network.
package netrange

import (
	"fmt"
	"net"
	"time"
)

// Range is an IPv4 network range: a base address with its host bits zeroed
// and a prefix length between 1 and 30.
type Range struct {
	Base   net.IP
	Prefix int
}

// InvalidRangeError is returned for CIDRs the scanner cannot enumerate.
type InvalidRangeError struct {
	CIDR   string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range %q: %s", e.CIDR, e.Reason)
}

// Parse parses a CIDR string into a Range. The base address is masked down
// to the network address, so "192.168.1.17/24" yields base 192.168.1.0.
func Parse(cidr string) (Range, error) {
	_, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return Range{}, &InvalidRangeError{CIDR: cidr, Reason: err.Error()}
	}
	base := ipnet.IP.To4()
	if base == nil {
		return Range{}, &InvalidRangeError{CIDR: cidr, Reason: "not an IPv4 range"}
	}
	ones, bits := ipnet.Mask.Size()
	if bits != 32 {
		return Range{}, &InvalidRangeError{CIDR: cidr, Reason: "not an IPv4 mask"}
	}
	if ones < 1 || ones > 30 {
		return Range{}, &InvalidRangeError{CIDR: cidr, Reason: "prefix must be between 1 and 30"}
	}
	return Range{Base: base, Prefix: ones}, nil
}

// FromAddr derives the Range containing addr with the given prefix length.
func FromAddr(addr net.IP, prefix int) (Range, error) {
	ip4 := addr.To4()
	if ip4 == nil {
		return Range{}, &InvalidRangeError{CIDR: addr.String(), Reason: "not an IPv4 address"}
	}
	if prefix < 1 || prefix > 30 {
		return Range{}, &InvalidRangeError{CIDR: addr.String(), Reason: "prefix must be between 1 and 30"}
	}
	mask := net.CIDRMask(prefix, 32)
	return Range{Base: ip4.Mask(mask), Prefix: prefix}, nil
}

// String returns the range in CIDR notation.
func (r Range) String() string {
	return fmt.Sprintf("%s/%d", r.Base.String(), r.Prefix)
}

// IPNet returns the range as a *net.IPNet.
func (r Range) IPNet() *net.IPNet {
	return &net.IPNet{IP: r.Base, Mask: net.CIDRMask(r.Prefix, 32)}
}

// Contains reports whether addr falls inside the range.
func (r Range) Contains(addr net.IP) bool {
	return r.IPNet().Contains(addr)
}

// Hosts returns every usable host address in the range, in ascending order.
// The network and broadcast addresses are excluded.
func (r Range) Hosts() []net.IP {
	mask := net.CIDRMask(r.Prefix, 32)
	network := IPToUint32(r.Base) & IPToUint32(net.IP(mask))
	broadcast := network | ^IPToUint32(net.IP(mask))

	var res []net.IP
	for u := network + 1; u < broadcast; u++ {
		res = append(res, Uint32ToIP(u))
	}
	return res
}

// IPToUint32 converts an IPv4 address to its numeric form.
func IPToUint32(ip net.IP) uint32 {
	ip = ip.To4()
	return uint32(ip[0])<<24 | uint32(ip[1])<<16 | uint32(ip[2])<<8 | uint32(ip[3])
}

// Uint32ToIP converts a numeric IPv4 address back to net.IP.
func Uint32ToIP(u uint32) net.IP {
	return net.IPv4(byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}

// Less provides a stable numeric ordering for IPv4 addresses.
func Less(a, b net.IP) bool {
	return IPToUint32(a) < IPToUint32(b)
}

// LocalAddr returns the IPv4 address of the primary outbound interface.
// It opens an ephemeral UDP socket toward a public address and reads the
// bound local endpoint; no packet is actually sent. When that fails (for
// example with no default route), it falls back to the first up,
// non-loopback interface carrying a private IPv4 address.
func LocalAddr() (net.IP, error) {
	d := net.Dialer{Timeout: 2 * time.Second}
	conn, err := d.Dial("udp4", "8.8.8.8:80")
	if err == nil {
		addr := conn.LocalAddr().(*net.UDPAddr)
		_ = conn.Close()
		if ip4 := addr.IP.To4(); ip4 != nil {
			return ip4, nil
		}
	}
	return firstPrivateAddr()
}

func firstPrivateAddr() (net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipnet.IP.To4()
			if ip4 == nil || !ip4.IsPrivate() {
				continue
			}
			return ip4, nil
		}
	}
	return nil, fmt.Errorf("no usable IPv4 interface address found")
}
