// Package discovery finds the target console's microSD Management
// service on the local network via WS-Discovery multicast Probe and
// resolves its NetBIOS name via a DPWS GetMetadata fetch.
package discovery

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/anvilsmith/microsdc/internal/dbg"
	"github.com/google/uuid"
	"golang.org/x/net/ipv4"
)

// multicastAddr is the standard WS-Discovery multicast group and port.
const multicastAddr = "239.255.255.250:3702"

const probeAction = "http://schemas.xmlsoap.org/ws/2005/04/discovery/Probe"

// DebugLogger is an optional trace callback, matching the convention
// used throughout this module's packages.
type DebugLogger = dbg.Logger

// ProbeMatch is one WS-Discovery ProbeMatch response.
type ProbeMatch struct {
	// Address is the responder's source IP, used to dedupe responses and
	// as the Target IP once the responder's name has been resolved.
	Address string
	// XAddrs are the transport addresses (typically HTTP URLs) at
	// which the responder's DPWS metadata can be fetched.
	XAddrs []string
}

// Options controls a Probe/Discover call.
type Options struct {
	// Timeout bounds how long Probe waits for ProbeMatch responses.
	// Zero selects a 3 second default.
	Timeout time.Duration
	// Interface is not read by Probe: the probe is sent from a socket
	// bound to 0.0.0.0, on whichever interface the system routes the
	// multicast group through.
	Interface *net.Interface

	DebugLogger DebugLogger
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return 3 * time.Second
	}
	return o.Timeout
}

// Probe sends one WS-Discovery Probe to the multicast group and collects
// ProbeMatch responses until ctx is done or Options.Timeout elapses,
// deduplicating by source address.
func Probe(ctx context.Context, opts Options) ([]ProbeMatch, error) {
	groupAddr, err := net.ResolveUDPAddr("udp4", multicastAddr)
	if err != nil {
		return nil, fmt.Errorf("discovery: resolving multicast address: %w", err)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, fmt.Errorf("discovery: opening probe socket: %w", err)
	}
	defer conn.Close()

	pc := ipv4.NewPacketConn(conn)
	if err := pc.SetMulticastTTL(1); err != nil {
		opts.DebugLogger.Log("probe: SetMulticastTTL failed: %v", err)
	}
	if err := pc.SetMulticastLoopback(true); err != nil {
		opts.DebugLogger.Log("probe: SetMulticastLoopback failed: %v", err)
	}

	msg, messageID, err := buildProbeMessage()
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(opts.timeout())
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("discovery: setting probe deadline: %w", err)
	}

	if _, err := conn.WriteToUDP(msg, groupAddr); err != nil {
		return nil, fmt.Errorf("discovery: sending probe: %w", err)
	}
	opts.DebugLogger.Log("probe: sent to %s, waiting up to %s", multicastAddr, opts.timeout())

	seen := make(map[string]bool)
	var matches []ProbeMatch

	buf := make([]byte, 65536)
	for {
		select {
		case <-ctx.Done():
			return matches, nil
		default:
		}

		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				break
			}
			return matches, fmt.Errorf("discovery: reading probe response: %w", err)
		}

		host := src.IP.String()
		if seen[host] {
			continue
		}

		xaddrs, err := parseProbeMatch(buf[:n], messageID)
		if err != nil {
			opts.DebugLogger.Log("probe: ignoring malformed response from %s: %v", host, err)
			continue
		}

		seen[host] = true
		matches = append(matches, ProbeMatch{Address: host, XAddrs: xaddrs})
		opts.DebugLogger.Log("probe: match from %s, xaddrs=%v", host, xaddrs)
	}

	return matches, nil
}

func buildProbeMessage() (msg []byte, messageID string, err error) {
	id := uuid.New().URN()
	return encodeProbeEnvelope(id), id, nil
}
