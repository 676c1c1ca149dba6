// Package netrange tests for range parsing and host enumeration.
package netrange

import (
	"net"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		cidr    string
		base    string
		prefix  int
		wantErr bool
	}{
		{"192.168.1.0/24", "192.168.1.0", 24, false},
		// Host bits are masked away
		{"192.168.1.17/24", "192.168.1.0", 24, false},
		{"10.0.0.0/8", "10.0.0.0", 8, false},
		{"172.16.5.128/30", "172.16.5.128", 30, false},

		// Prefix bounds
		{"10.0.0.0/0", "", 0, true},
		{"10.0.0.0/31", "", 0, true},
		{"10.0.0.0/32", "", 0, true},

		// Not parseable / not IPv4
		{"", "", 0, true},
		{"not-a-cidr", "", 0, true},
		{"192.168.1.0", "", 0, true},
		{"2001:db8::/64", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.cidr, func(t *testing.T) {
			rng, err := Parse(tt.cidr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.cidr, rng)
				}
				if _, ok := err.(*InvalidRangeError); !ok {
					t.Errorf("Parse(%q) error type = %T, want *InvalidRangeError", tt.cidr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.cidr, err)
			}
			if rng.Base.String() != tt.base || rng.Prefix != tt.prefix {
				t.Errorf("Parse(%q) = %s/%d, want %s/%d", tt.cidr, rng.Base, rng.Prefix, tt.base, tt.prefix)
			}
		})
	}
}

func TestFromAddr(t *testing.T) {
	rng, err := FromAddr(net.ParseIP("192.168.1.42"), 24)
	if err != nil {
		t.Fatalf("FromAddr error: %v", err)
	}
	if rng.String() != "192.168.1.0/24" {
		t.Errorf("FromAddr = %s, want 192.168.1.0/24", rng)
	}

	if _, err := FromAddr(net.ParseIP("2001:db8::1"), 24); err == nil {
		t.Error("FromAddr accepted an IPv6 address")
	}
	if _, err := FromAddr(net.ParseIP("192.168.1.42"), 32); err == nil {
		t.Error("FromAddr accepted prefix 32")
	}
}

func TestHosts(t *testing.T) {
	tests := []struct {
		cidr  string
		count int
		first string
		last  string
	}{
		{"192.168.1.0/24", 254, "192.168.1.1", "192.168.1.254"},
		{"192.168.1.0/30", 2, "192.168.1.1", "192.168.1.2"},
		{"10.20.0.0/23", 510, "10.20.0.1", "10.20.1.254"},
	}

	for _, tt := range tests {
		t.Run(tt.cidr, func(t *testing.T) {
			rng, err := Parse(tt.cidr)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			hosts := rng.Hosts()
			if len(hosts) != tt.count {
				t.Fatalf("len(Hosts()) = %d, want %d", len(hosts), tt.count)
			}
			if hosts[0].String() != tt.first {
				t.Errorf("first host = %s, want %s", hosts[0], tt.first)
			}
			if hosts[len(hosts)-1].String() != tt.last {
				t.Errorf("last host = %s, want %s", hosts[len(hosts)-1], tt.last)
			}
			for i := 1; i < len(hosts); i++ {
				if !Less(hosts[i-1], hosts[i]) {
					t.Fatalf("hosts not ascending at index %d: %s then %s", i, hosts[i-1], hosts[i])
				}
			}
		})
	}
}

func TestContains(t *testing.T) {
	rng, _ := Parse("192.168.1.0/24")

	tests := []struct {
		addr string
		want bool
	}{
		{"192.168.1.1", true},
		{"192.168.1.254", true},
		{"192.168.1.0", true},
		{"192.168.2.1", false},
		{"10.0.0.1", false},
	}
	for _, tt := range tests {
		if got := rng.Contains(net.ParseIP(tt.addr)); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestUint32RoundTrip(t *testing.T) {
	for _, s := range []string{"0.0.0.1", "192.168.1.1", "255.255.255.254", "10.0.0.0"} {
		ip := net.ParseIP(s)
		if got := Uint32ToIP(IPToUint32(ip)); !got.Equal(ip) {
			t.Errorf("round trip %s = %s", s, got)
		}
	}
}
