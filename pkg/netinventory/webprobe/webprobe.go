// Package webprobe checks discovered hosts for reachable HTTP(S) services
// on a fixed candidate port list, capturing status code, Server header, and
// page title.
//
// Certificate validation is relaxed so self-signed devices (routers, NAS
// boxes, printers) still produce a record; the scheme actually used is kept
// on the record. Any connection-level failure skips the port silently; a
// record exists only for ports that answered at the transport level.
package webprobe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// DefaultPorts is the candidate port list probed on every host.
var DefaultPorts = []int{80, 443, 8080, 8000, 8443, 8888, 3000, 5000, 9090}

// DefaultHTTPSPorts are the ports conventionally associated with TLS and
// therefore tried encrypted first.
var DefaultHTTPSPorts = []int{443, 8443}

const (
	// DefaultTimeout bounds each individual request.
	DefaultTimeout = 3 * time.Second
	// maxBodyBytes caps how much of a response body is read for title
	// extraction.
	maxBodyBytes = 64 * 1024
	// maxTitleRunes caps the recorded title length.
	maxTitleRunes = 100
)

var titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// Record describes one reachable web service on a host.
type Record struct {
	Port       int
	Scheme     string // "http" or "https"
	StatusCode int
	Server     string // Server response header, may be empty
	Title      string // first <title> text, may be empty
}

// Prober probes hosts for web services.
type Prober struct {
	Timeout    time.Duration
	HTTPSPorts []int

	client *http.Client
}

// NewProber creates a Prober with relaxed certificate validation and the
// given per-request timeout (DefaultTimeout when zero). The prober is safe
// for concurrent use across hosts.
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		Timeout:    timeout,
		HTTPSPorts: DefaultHTTPSPorts,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
				DialContext: (&net.Dialer{
					Timeout: timeout,
				}).DialContext,
				DisableKeepAlives: true,
			},
		},
	}
}

// ProbePorts attempts one request per candidate port against addr and
// returns a record per port that answered, in port-list order. Nothing
// listening anywhere yields an empty result, never an error. Each port is
// tried exactly once per scheme; there are no retries.
func (p *Prober) ProbePorts(ctx context.Context, addr net.IP, ports []int) []Record {
	if addr == nil {
		return nil
	}
	if len(ports) == 0 {
		ports = DefaultPorts
	}

	var records []Record
	for _, port := range ports {
		select {
		case <-ctx.Done():
			return records
		default:
		}
		if rec, ok := p.probeOne(ctx, addr, port); ok {
			records = append(records, rec)
		}
	}
	return records
}

// probeOne tries the port's preferred scheme order and returns the first
// successful record.
func (p *Prober) probeOne(ctx context.Context, addr net.IP, port int) (Record, bool) {
	for _, scheme := range p.schemesFor(port) {
		rec, err := p.request(ctx, scheme, addr, port)
		if err != nil {
			continue
		}
		return rec, true
	}
	return Record{}, false
}

func (p *Prober) schemesFor(port int) []string {
	httpsPorts := p.HTTPSPorts
	if httpsPorts == nil {
		httpsPorts = DefaultHTTPSPorts
	}
	for _, hp := range httpsPorts {
		if port == hp {
			return []string{"https", "http"}
		}
	}
	return []string{"http"}
}

func (p *Prober) request(ctx context.Context, scheme string, addr net.IP, port int) (Record, error) {
	url := fmt.Sprintf("%s://%s/", scheme, net.JoinHostPort(addr.String(), fmt.Sprintf("%d", port)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Record{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Record{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	return Record{
		Port:       port,
		Scheme:     scheme,
		StatusCode: resp.StatusCode,
		Server:     resp.Header.Get("Server"),
		Title:      ExtractTitle(body),
	}, nil
}

// ExtractTitle returns the first <title> text in markup, case-insensitive,
// whitespace-collapsed, capped at 100 runes. Malformed or title-less markup
// yields "".
func ExtractTitle(body []byte) string {
	m := titleRe.FindSubmatch(body)
	if m == nil {
		return ""
	}
	title := strings.Join(strings.Fields(string(m[1])), " ")
	runes := []rune(title)
	if len(runes) > maxTitleRunes {
		title = string(runes[:maxTitleRunes])
	}
	return title
}
