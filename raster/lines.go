package raster

import (
	"bytes"
	"strings"
	"sync"
)

// lastLines keeps the last n lines written to it.
type lastLines struct {
	mu      sync.Mutex
	partial bytes.Buffer
	current int
	lines   []string
}

func newLastLines(limit int) *lastLines {
	return &lastLines{lines: make([]string, limit)}
}

func (ll *lastLines) Write(p []byte) (int, error) {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.partial.Write(p)
	b := ll.partial.Bytes()
	pos := 0
	for {
		i := bytes.IndexAny(b[pos:], "\n\r")
		if i < 0 {
			break
		}
		ll.add(string(b[pos : pos+i+1]))
		pos += i + 1
	}
	rest := append([]byte(nil), b[pos:]...)
	ll.partial.Reset()
	ll.partial.Write(rest)
	return len(p), nil
}

func (ll *lastLines) add(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	ll.lines[ll.current] = line
	ll.current = (ll.current + 1) % len(ll.lines)
}

// String returns the buffered lines, oldest first, including any
// unterminated tail.
func (ll *lastLines) String() string {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	var sb strings.Builder
	for i := 0; i < len(ll.lines); i++ {
		sb.WriteString(ll.lines[(ll.current+i)%len(ll.lines)])
	}
	sb.Write(ll.partial.Bytes())
	return strings.TrimSpace(sb.String())
}
