// Package neighbor reads the operating system's neighbor (ARP) cache and
// turns it into typed address/hardware-address pairs.
//
// The cache is read best effort: a missing command, a failed invocation, or
// unparseable output all yield an empty result rather than an error, so the
// scan can continue on sweep results alone. Parsing is split into pure
// text-to-entries functions so every platform format is testable anywhere.
package neighbor

import (
	"bufio"
	"context"
	"net"
	"strings"
)

// Entry is one neighbor-cache row: an IPv4 address and its hardware address
// in canonical uppercase colon-separated form.
type Entry struct {
	Addr net.IP
	MAC  string
}

// Reader reads the platform neighbor cache.
type Reader interface {
	// Entries returns the current cache contents. Best effort: failures
	// yield an empty slice, never an error.
	Entries(ctx context.Context) []Entry
	// Lookup returns the hardware address for one IP, or "" when the
	// cache holds no complete entry for it.
	Lookup(ctx context.Context, addr net.IP) string
}

// NewReader returns the neighbor cache reader for the current platform.
func NewReader() Reader {
	return newPlatformReader()
}

// normalizeMAC converts a hardware address to uppercase colon-separated
// form, accepting dash separators (Windows) and mixed case. Returns "" for
// anything that does not parse as a MAC.
func normalizeMAC(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", ":")
	hw, err := net.ParseMAC(s)
	if err != nil {
		return ""
	}
	return strings.ToUpper(hw.String())
}

// incompleteMAC reports hardware addresses that mark unresolved or
// broadcast entries and must be skipped.
func incompleteMAC(s string) bool {
	switch strings.ToLower(s) {
	case "", "(incomplete)", "<incomplete>", "incomplete", "00:00:00:00:00:00", "ff:ff:ff:ff:ff:ff", "ff-ff-ff-ff-ff-ff":
		return true
	}
	return false
}

// parseProcNetARP parses the Linux /proc/net/arp table. Columns:
// IP address, HW type, Flags, HW address, Mask, Device.
func parseProcNetARP(text string) []Entry {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(text))
	if !scanner.Scan() { // header line
		return entries
	}
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		if incompleteMAC(fields[3]) {
			continue
		}
		ip := net.ParseIP(fields[0])
		if ip == nil || ip.To4() == nil {
			continue
		}
		mac := normalizeMAC(fields[3])
		if mac == "" {
			continue
		}
		entries = append(entries, Entry{Addr: ip.To4(), MAC: mac})
	}
	return entries
}

// parseUnixARP parses BSD-style `arp -a` output, one entry per line:
// "host (192.168.1.1) at aa:bb:cc:dd:ee:ff [ether] on en0".
func parseUnixARP(text string) []Entry {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()

		open := strings.Index(line, "(")
		end := strings.Index(line, ")")
		if open < 0 || end < 0 || open >= end {
			continue
		}
		ip := net.ParseIP(line[open+1 : end])
		if ip == nil || ip.To4() == nil {
			continue
		}

		at := strings.Index(line, " at ")
		if at < 0 {
			continue
		}
		rest := line[at+4:]
		macStr := rest
		if sp := strings.IndexAny(rest, " ["); sp >= 0 {
			macStr = rest[:sp]
		}
		if incompleteMAC(macStr) {
			continue
		}
		mac := normalizeMAC(macStr)
		if mac == "" {
			continue
		}
		entries = append(entries, Entry{Addr: ip.To4(), MAC: mac})
	}
	return entries
}

// parseWindowsARP parses Windows `arp -a` output. Entries live in table
// sections introduced by an "Internet Address  Physical Address  Type"
// header under each "Interface:" block, with dash-separated MACs.
func parseWindowsARP(text string) []Entry {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(text))
	inTable := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.Contains(line, "Internet Address") && strings.Contains(line, "Physical Address") {
			inTable = true
			continue
		}
		if strings.HasPrefix(line, "Interface:") {
			inTable = false
			continue
		}
		if !inTable {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if incompleteMAC(fields[1]) {
			continue
		}
		ip := net.ParseIP(fields[0])
		if ip == nil || ip.To4() == nil {
			continue
		}
		mac := normalizeMAC(fields[1])
		if mac == "" {
			continue
		}
		entries = append(entries, Entry{Addr: ip.To4(), MAC: mac})
	}
	return entries
}

// parseLinuxARPn parses the column table printed by Linux `arp -n`:
// "Address  HWtype  HWaddress  Flags Mask  Iface".
func parseLinuxARPn(text string) []Entry {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || fields[0] == "Address" {
			continue
		}
		ip := net.ParseIP(fields[0])
		if ip == nil || ip.To4() == nil {
			continue
		}
		if incompleteMAC(fields[2]) {
			continue
		}
		mac := normalizeMAC(fields[2])
		if mac == "" {
			continue
		}
		entries = append(entries, Entry{Addr: ip.To4(), MAC: mac})
	}
	return entries
}

// findMAC returns the hardware address for addr within parsed entries.
func findMAC(entries []Entry, addr net.IP) string {
	for _, e := range entries {
		if e.Addr.Equal(addr) {
			return e.MAC
		}
	}
	return ""
}
