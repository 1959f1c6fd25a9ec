// Package driver implements the multi-file worklist loop: it owns the
// ordered input-file queue (core units plus files pulled in by
// @include), resets the lexer between files while the entity table and
// error collector persist across the whole run, and drains Included
// files FIFO as @include directives discover them.
package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"

	"github.com/nyxlang/nyxc/pkgs/ast"
	"github.com/nyxlang/nyxc/pkgs/diag"
	"github.com/nyxlang/nyxc/pkgs/entity"
	"github.com/nyxlang/nyxc/pkgs/lexer"
	"github.com/nyxlang/nyxc/pkgs/parser"
)

// Version is the frontend's own version descriptor, checked with
// golang.org/x/mod/semver so --version always reports a valid tag.
const Version = "v0.1.0"

func init() {
	if !semver.IsValid(Version) {
		panic(fmt.Sprintf("driver: Version %q is not a valid semver tag", Version))
	}
}

// queueEntry is one file in the worklist: its id, path, kind, and
// lifecycle state. No entry ever transitions back from Finished.
type queueEntry struct {
	id    lexer.InputFileID
	path  string
	kind  lexer.FileKind
	state lexer.FileState
}

// Context is the frontend's process-wide state — flags, the
// input/output queues, and version — passed explicitly rather than
// held as a package-level singleton so tests (and eventually a
// language server) can run multiple frontends in one process.
type Context struct {
	Entities *entity.Table
	Errors   *diag.Collector

	Verbose bool
	Colours bool

	Version string

	queue       []*queueEntry
	outputs     []string
	nextFileID  lexer.InputFileID
	digests     map[[32]byte]lexer.InputFileID
	byPath      map[string]lexer.InputFileID
	TopLevel    map[lexer.InputFileID][]ast.Node
	FileOrder   []lexer.InputFileID
}

// New returns a driver ready to accept input files via AddCoreUnit.
func New() *Context {
	return &Context{
		Entities: entity.NewTable(),
		Errors:   diag.NewCollector(),
		Version:  Version,
		digests:  make(map[[32]byte]lexer.InputFileID),
		byPath:   make(map[string]lexer.InputFileID),
		TopLevel: make(map[lexer.InputFileID][]ast.Node),
	}
}

func (c *Context) nextID() lexer.InputFileID {
	c.nextFileID++
	return c.nextFileID
}

// AddCoreUnit enqueues path as a CoreUnit input, in the order the
// caller supplies — core units are always processed in this order
// before any Included file is drained.
func (c *Context) AddCoreUnit(path string) {
	id := c.nextID()
	c.queue = append(c.queue, &queueEntry{id: id, path: path, kind: lexer.CoreUnit, state: lexer.Pending})
	c.byPath[path] = id
}

// SetOutputs records the output path list; Validate checks it against
// the input count.
func (c *Context) SetOutputs(paths []string) { c.outputs = paths }

// enqueueIncluded appends an @include-discovered file as Pending,
// unless the same path was already enqueued — the driver dedups by
// path up front so a diamond include only ever parses once. A copy of
// a file under a different path is still queued and parsed; runOne
// only records a warning when its content digest matches.
func (c *Context) enqueueIncluded(path string) lexer.InputFileID {
	if id, ok := c.byPath[path]; ok {
		return id
	}
	id := c.nextID()
	c.queue = append(c.queue, &queueEntry{id: id, path: path, kind: lexer.Included, state: lexer.Pending})
	c.byPath[path] = id
	return id
}

// Run executes parse_impl_: repeatedly pulls the next Pending file,
// parses it with a fresh lexer reset onto its bytes but the same
// entity table and error collector, and drains any @include files the
// parse discovers, until the queue is exhausted. Returns false if any
// file failed to parse clean.
func (c *Context) Run() bool {
	ok := true
	for {
		entry, done := c.nextPending()
		if done {
			break
		}
		if !c.runOne(entry) {
			ok = false
		}
	}
	return ok
}

// nextPending implements get_next_include_: scans the queue for the
// first Included-or-CoreUnit Pending entry, marks it Finished as
// bookkeeping (not as a success signal), and returns it.
func (c *Context) nextPending() (*queueEntry, bool) {
	for _, e := range c.queue {
		if e.state == lexer.Pending {
			e.state = lexer.Finished
			return e, false
		}
	}
	return nil, true
}

func (c *Context) runOne(entry *queueEntry) bool {
	content, err := os.ReadFile(entry.path)
	if err != nil {
		c.Errors.AddError(entry.id, 0, 0, fmt.Sprintf("driver: cannot open %s: %v", entry.path, err))
		return false
	}

	buf := lexer.NewSourceBuffer(entry.id, entry.path, entry.kind, content)
	if existing, dup := c.digests[buf.Digest()]; dup && existing != entry.id {
		c.Errors.AddWarning(entry.id, 0, 0, fmt.Sprintf("driver: %s is a byte-for-byte duplicate of an already-processed file", entry.path))
	}
	c.digests[buf.Digest()] = entry.id
	c.Errors.RegisterFile(entry.id, entry.path, buf)

	lex := lexer.New(buf.Bytes())
	ctx := parser.NewContext(lex, c.Entities, c.Errors, entry.id)

	ok := parser.Parse(ctx)
	c.TopLevel[entry.id] = ctx.Decls
	c.FileOrder = append(c.FileOrder, entry.id)

	dir := filepath.Dir(entry.path)
	for _, inc := range ctx.Includes {
		resolved := inc
		if !filepath.IsAbs(inc) {
			resolved = filepath.Join(dir, inc)
		}
		c.enqueueIncluded(resolved)
	}

	buf.MarkFinished()
	return ok
}

// Validate checks the output-count invariant once every input has
// been registered.
func (c *Context) Validate() error {
	coreUnits := 0
	for _, e := range c.queue {
		if e.kind == lexer.CoreUnit {
			coreUnits++
		}
	}
	if coreUnits == 0 {
		return fmt.Errorf("driver: no input files")
	}
	if len(c.outputs) != 0 && len(c.outputs) != coreUnits {
		return fmt.Errorf("driver: %d output paths for %d core-unit inputs", len(c.outputs), coreUnits)
	}
	return nil
}
