package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/marcuoli/go-netinventory/pkg/netinventory"
)

func parsePorts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("ports list is empty")
	}
	parts := strings.Split(s, ",")
	ports := make([]int, 0, len(parts))
	for _, p := range parts {
		var v int
		_, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &v)
		if err != nil || v <= 0 || v > 65535 {
			return nil, fmt.Errorf("invalid port: %q", p)
		}
		ports = append(ports, v)
	}
	return ports, nil
}

func main() {
	var (
		network  string
		portsStr string
		timeout  time.Duration
		workers  int
		useSSDP  bool
		names    bool
		verbose  bool
	)

	flag.StringVar(&network, "network", "", "CIDR to scan (default: auto-detected /24)")
	flag.StringVar(&portsStr, "ports", "", "Comma-separated web ports to probe (default: common web ports)")
	flag.DurationVar(&timeout, "timeout", 0, "Per-request web probe timeout")
	flag.IntVar(&workers, "workers", 0, "Ping sweep concurrency")
	flag.BoolVar(&useSSDP, "ssdp", false, "Also discover devices via SSDP")
	flag.BoolVar(&names, "names", false, "Resolve hostnames for discovered devices")
	flag.BoolVar(&verbose, "v", false, "Verbose output")
	flag.Parse()

	if verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
		netinventory.SetDebugLevel(netinventory.DebugVerbose)
		netinventory.SetDebugLogger(func(component, format string, args ...interface{}) {
			gologger.Verbose().Msgf("[%s] %s", component, fmt.Sprintf(format, args...))
		})
	}

	opts := netinventory.Options{
		Network:          network,
		HTTPTimeout:      timeout,
		SweepWorkers:     workers,
		EnableSSDP:       useSSDP,
		ResolveHostnames: names,
	}
	if portsStr != "" {
		ports, err := parsePorts(portsStr)
		if err != nil {
			gologger.Fatal().Msgf("invalid ports: %v", err)
		}
		opts.Ports = ports
	}
	if !verbose {
		lastPct := -1
		opts.OnSweepProgress = func(done, total int) {
			pct := done * 100 / total
			if pct/10 != lastPct/10 {
				lastPct = pct
				gologger.Info().Msgf("sweep progress: %d%% (%d/%d)", pct, done, total)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanner := netinventory.New(opts)
	gologger.Info().Msg("starting network scan")

	result, err := scanner.Run(ctx)
	if err != nil {
		gologger.Fatal().Msgf("scan failed: %v", err)
	}
	if ctx.Err() != nil {
		gologger.Warning().Msg("scan interrupted, showing partial results")
	}

	render(result)
	gologger.Info().Msgf("found %d device(s) on %s in %v",
		len(result.Hosts), result.Range, result.Duration.Round(time.Millisecond))
}

func render(result *netinventory.ScanResult) {
	for _, host := range result.Hosts {
		line := host.Addr.String()
		if host.Addr.Equal(result.LocalAddr) {
			line += " (this host)"
		}
		if host.Hostname != "" {
			line += "  " + host.Hostname
		}
		if host.MAC != "" {
			line += fmt.Sprintf("  %s  %s", host.MAC, host.Vendor)
		}
		fmt.Println(line)
		for _, svc := range host.Services {
			detail := fmt.Sprintf("  %s:%d  HTTP %d", svc.Scheme, svc.Port, svc.StatusCode)
			if svc.Server != "" {
				detail += "  " + svc.Server
			}
			if svc.Title != "" {
				detail += fmt.Sprintf("  %q", svc.Title)
			}
			fmt.Println(detail)
		}
	}
}
