package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/nyxlang/nyxc/pkgs/lexer"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
	ansiReset  = "\x1b[0m"
)

// Collector accumulates diagnostics bucketed by InputFileID and
// renders them against the file's own source bytes. It never fails:
// recording an error only increments counts, it never returns one.
type Collector struct {
	buckets map[lexer.InputFileID]*bucket
	sources map[lexer.InputFileID]*lexer.SourceBuffer
	paths   map[lexer.InputFileID]string
	// Colorize enables ANSI escapes in rendered output. The driver sets
	// this after probing the output stream with go-isatty.
	Colorize bool
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{
		buckets: make(map[lexer.InputFileID]*bucket),
		sources: make(map[lexer.InputFileID]*lexer.SourceBuffer),
		paths:   make(map[lexer.InputFileID]string),
	}
}

// RegisterFile associates a file id with the source buffer used to
// render caret context for diagnostics recorded against it.
func (c *Collector) RegisterFile(id lexer.InputFileID, path string, buf *lexer.SourceBuffer) {
	c.paths[id] = path
	c.sources[id] = buf
}

func (c *Collector) bucketFor(id lexer.InputFileID) *bucket {
	b, ok := c.buckets[id]
	if !ok {
		b = &bucket{}
		c.buckets[id] = b
	}
	return b
}

// AddError records a fatal diagnostic against file id.
func (c *Collector) AddError(id lexer.InputFileID, offset, line uint32, message string) {
	b := c.bucketFor(id)
	b.records = append(b.records, Record{Message: message, FileOffset: offset, Line: line, IsWarning: false})
	b.errors++
}

// AddWarning records a non-fatal diagnostic against file id.
func (c *Collector) AddWarning(id lexer.InputFileID, offset, line uint32, message string) {
	b := c.bucketFor(id)
	b.records = append(b.records, Record{Message: message, FileOffset: offset, Line: line, IsWarning: true})
	b.warnings++
}

// ErrorCount and WarningCount total across every bucketed file.
func (c *Collector) ErrorCount() int {
	n := 0
	for _, b := range c.buckets {
		n += b.errors
	}
	return n
}

func (c *Collector) WarningCount() int {
	n := 0
	for _, b := range c.buckets {
		n += b.warnings
	}
	return n
}

// Suggest returns the closest keyword/identifier in candidates to got,
// for a "did you mean …?" hint, or "" if nothing is close enough.
func Suggest(got string, candidates []string) string {
	best := fuzzy.RankFind(got, candidates)
	if len(best) == 0 {
		for _, c := range candidates {
			if fuzzy.LevenshteinDistance(got, c) <= 1 {
				return c
			}
		}
		return ""
	}
	sort.Sort(best)
	return best[0].Target
}

// Emit re-renders the stored records of each file id in order, in the
// order given; files not listed in order are not rendered.
func (c *Collector) Emit(w io.Writer, order []lexer.InputFileID) {
	for _, id := range order {
		b, ok := c.buckets[id]
		if !ok {
			continue
		}
		for _, r := range b.records {
			c.render(w, id, r)
		}
	}
}

// render prints one caret-underlined diagnostic for record r in file
// id, per the collector's fixed layout: a source line, a filler line
// of '~' with '^' under the offset, then the message.
func (c *Collector) render(w io.Writer, id lexer.InputFileID, r Record) {
	src := c.sources[id]
	path := c.paths[id]

	var bytes []byte
	if src != nil {
		bytes = src.Bytes()
	}

	offset := int(r.FileOffset)
	if offset > len(bytes) {
		offset = len(bytes)
	}
	if offset < 0 {
		offset = 0
	}

	start := offset
	for start > 0 && bytes[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(bytes) && bytes[end] != '\n' {
		end++
	}

	line := cleanControlBytes(bytes[start:end])
	col := offset - start

	filler := make([]byte, col)
	for i := range filler {
		filler[i] = '~'
	}

	severity := "error"
	color := ansiRed
	if r.IsWarning {
		severity = "warning"
		color = ansiYellow
	}

	header := fmt.Sprintf("%s:%d:%d: %s: %s", path, r.Line, col+1, severity, r.Message)
	if c.Colorize {
		header = color + ansiBold + header + ansiReset
	}

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, string(line))
	fmt.Fprintf(w, "%s^\n", filler)
}

func cleanControlBytes(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c < 0x20 || c == 0x7f {
			continue
		}
		out = append(out, c)
	}
	return out
}

// String renders every record in the given order to a string, mostly
// for tests.
func (c *Collector) String(order []lexer.InputFileID) string {
	var sb strings.Builder
	c.Emit(&sb, order)
	return sb.String()
}
