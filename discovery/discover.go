package discovery

import (
	"context"
	"fmt"
	"net"
	"time"
)

// cacheProbeTimeout bounds the fast-path TCP dial used to validate a
// cached (name, ip) pairing before falling back to full multicast
// discovery.
const cacheProbeTimeout = 200 * time.Millisecond

// Target is a resolved console: an address to dial and the name it
// answered to, suitable for caching under RememberEntry.
type Target struct {
	Name string
	IP   string
}

// DiscoverOptions bundles Options with the cache path used to remember
// and short-circuit future lookups.
type DiscoverOptions struct {
	Options
	CachePath string
}

// Discover finds the console's microSD Management service. It first
// consults the cache at opts.CachePath: for every unexpired entry it
// opens a short-timeout TCP probe to ip:139 and, on success, accepts
// that cached name without further work. If no cached entry answers, it
// falls back to a WS-Discovery Probe and DPWS metadata fetch, then
// updates the cache on success.
//
// If more than one console answers the Probe, Discover returns a
// NeedsUserInput error carrying every candidate in Detail rather than
// guessing.
func Discover(ctx context.Context, now time.Time, opts DiscoverOptions) (Target, error) {
	var cached []CacheEntry
	if opts.CachePath != "" {
		var err error
		cached, err = LoadCache(opts.CachePath)
		if err != nil {
			opts.DebugLogger.Log("discover: cache load failed: %v", err)
		}
	}

	for _, e := range cached {
		if e.expired(now) {
			continue
		}
		if fastProbe(ctx, e.IP) {
			opts.DebugLogger.Log("discover: cached %s (%s) answered fast probe", e.Name, e.IP)
			return Target{Name: e.Name, IP: e.IP}, nil
		}
		opts.DebugLogger.Log("discover: cached %s (%s) failed fast probe, invalidating", e.Name, e.IP)
	}

	matches, err := Probe(ctx, opts.Options)
	if err != nil {
		return Target{}, fmt.Errorf("discovery: probe: %w", err)
	}
	if len(matches) == 0 {
		if ip, name, ok := onlyFreshCacheEntry(cached, now); ok {
			opts.DebugLogger.Log("discover: no probe responders, falling back to cached %s (%s)", name, ip)
			return Target{Name: name, IP: ip}, nil
		}
		return Target{}, &Error{Kind: NoResponders}
	}

	if len(matches) > 1 {
		return Target{}, &Error{Kind: NeedsUserInput, Detail: describeMatches(matches)}
	}

	match := matches[0]
	name, err := ResolveName(ctx, match, opts.Options)
	if err != nil {
		if ip, cname, ok := onlyFreshCacheEntry(cached, now); ok {
			opts.DebugLogger.Log("discover: metadata resolution failed (%v), falling back to cached %s", err, cname)
			return Target{Name: cname, IP: ip}, nil
		}
		return Target{}, err
	}

	target := Target{Name: name, IP: match.Address}
	if opts.CachePath != "" {
		if err := RememberEntry(opts.CachePath, name, match.Address, now); err != nil {
			opts.DebugLogger.Log("discover: cache save failed: %v", err)
		}
	}
	return target, nil
}

func onlyFreshCacheEntry(entries []CacheEntry, now time.Time) (ip, name string, ok bool) {
	var fresh []CacheEntry
	for _, e := range entries {
		if !e.expired(now) {
			fresh = append(fresh, e)
		}
	}
	if len(fresh) != 1 {
		return "", "", false
	}
	return fresh[0].IP, fresh[0].Name, true
}

// fastProbe reports whether ip answers a TCP connect on port 139 within
// cacheProbeTimeout, used to validate a cached entry before falling back
// to multicast discovery.
func fastProbe(ctx context.Context, ip string) bool {
	dialer := net.Dialer{Timeout: cacheProbeTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(ip, "139"))
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func describeMatches(matches []ProbeMatch) string {
	s := ""
	for i, m := range matches {
		if i > 0 {
			s += ", "
		}
		s += m.Address
	}
	return s
}
