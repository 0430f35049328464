package discovery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

const metadataAction = "http://schemas.xmlsoap.org/ws/2004/09/transfer/Get"

// metadataEnvelope is the DPWS GetMetadata request body, sent over HTTP
// rather than multicast UDP.
type metadataEnvelope struct {
	messageID string
	to        string
}

func (m metadataEnvelope) encode() []byte {
	return encodeGetEnvelope(m.to, m.messageID)
}

// ResolveName fetches DPWS metadata from match's XAddrs, stopping at the
// first candidate that answers with a FriendlyName. It
// tries candidates concurrently, bounded by a small semaphore, and
// returns the first success; slower or failing candidates are abandoned.
func ResolveName(ctx context.Context, match ProbeMatch, opts Options) (string, error) {
	if len(match.XAddrs) == 0 {
		return "", &Error{Kind: MetadataUnreachable, Detail: "probe match carried no XAddrs"}
	}

	type result struct {
		name string
		err  error
	}

	sem := make(chan struct{}, 5)
	results := make(chan result, len(match.XAddrs))

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, addr := range match.XAddrs {
		addr := addr
		go func() {
			sem <- struct{}{}
			defer func() { <-sem }()
			name, err := fetchFriendlyName(fetchCtx, addr, opts)
			select {
			case results <- result{name: name, err: err}:
			case <-fetchCtx.Done():
			}
		}()
	}

	var lastErr error
	for i := 0; i < len(match.XAddrs); i++ {
		select {
		case r := <-results:
			if r.err != nil {
				lastErr = r.err
				opts.DebugLogger.Log("metadata: candidate failed: %v", r.err)
				continue
			}
			return r.name, nil
		case <-ctx.Done():
			return "", &Error{Kind: MetadataUnreachable, Detail: ctx.Err().Error()}
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate produced a name")
	}
	return "", &Error{Kind: NameUnresolvable, Detail: lastErr.Error()}
}

func fetchFriendlyName(ctx context.Context, xaddr string, opts Options) (string, error) {
	body := metadataEnvelope{messageID: uuid.New().URN(), to: xaddr}.encode()

	httpClient := &http.Client{Timeout: opts.timeout()}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, xaddr, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building metadata request for %s: %w", xaddr, err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching metadata from %s: %w", xaddr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("metadata fetch from %s: status %s", xaddr, resp.Status)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading metadata response from %s: %w", xaddr, err)
	}

	name, err := extractFriendlyName(respBody)
	if err != nil {
		return "", fmt.Errorf("%s: %w", xaddr, err)
	}
	return name, nil
}
