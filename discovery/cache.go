package discovery

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// cacheTTL is how long a cached ip/name pairing is trusted before
// discovery re-probes instead of dialing straight to the cached address.
const cacheTTL = 24 * time.Hour

// CacheEntry is one remembered console, keyed by name in the cache file.
type CacheEntry struct {
	Name string
	IP   string
	Seen time.Time
}

func (e CacheEntry) expired(now time.Time) bool {
	return now.Sub(e.Seen) > cacheTTL
}

// LoadCache reads the tab-separated "name\tip\tunix-seen" cache file. A
// missing file is not an error; it just yields no entries.
func LoadCache(path string) ([]CacheEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("discovery: opening cache: %w", err)
	}
	defer f.Close()

	var entries []CacheEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			continue
		}
		seenUnix, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, CacheEntry{
			Name: fields[0],
			IP:   fields[1],
			Seen: time.Unix(seenUnix, 0),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("discovery: reading cache: %w", err)
	}
	return entries, nil
}

// SaveCache overwrites path with entries, one per line.
func SaveCache(path string, entries []CacheEntry) error {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s\t%s\t%d\n", e.Name, e.IP, e.Seen.Unix())
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("discovery: writing cache: %w", err)
	}
	return nil
}

// RememberEntry replaces or appends name's entry and persists the result.
func RememberEntry(path, name, ip string, now time.Time) error {
	entries, err := LoadCache(path)
	if err != nil {
		return err
	}
	replaced := false
	for i := range entries {
		if entries[i].Name == name {
			entries[i].IP = ip
			entries[i].Seen = now
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, CacheEntry{Name: name, IP: ip, Seen: now})
	}
	return SaveCache(path, entries)
}

// FindFresh returns the cached IP for name if an entry exists and hasn't
// expired under cacheTTL as of now.
func FindFresh(entries []CacheEntry, name string, now time.Time) (string, bool) {
	for _, e := range entries {
		if e.Name == name && !e.expired(now) {
			return e.IP, true
		}
	}
	return "", false
}
