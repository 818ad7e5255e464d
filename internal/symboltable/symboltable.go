// Package symboltable implements the scoped symbol table shared by the
// lexer (which records lexical occurrences as it scans) and the semantic
// analyser (which resolves names and annotates types).
package symboltable

import (
	"fmt"
	"io"
)

// Position is a (line, column) pair recording one textual appearance of
// a name.
type Position struct {
	Line   int
	Column int
}

// Entry is a named binding: its inferred/declared type and every source
// position at which it was seen. Type is empty until something (the
// semantic analyser, ordinarily) resolves it.
type Entry struct {
	Name        string
	Type        string
	Occurrences []Position
}

// frame is a single lexical scope: a name-to-entry mapping with unique
// keys within the frame. order preserves first-declaration order so scope
// printing is deterministic.
type frame struct {
	byName map[string]*Entry
	order  []string
}

func newFrame() frame {
	return frame{byName: make(map[string]*Entry)}
}

// Table is an ordered stack of scope frames. Frame 0 is the global
// frame; lookup scans frames innermost to outermost, first hit wins.
type Table struct {
	frames []frame
}

// New returns a table with a single global frame already pushed.
func New() *Table {
	return &Table{frames: []frame{newFrame()}}
}

// EnterScope pushes a new, empty frame.
func (t *Table) EnterScope() {
	t.frames = append(t.frames, newFrame())
}

// ExitScope pops the innermost frame. It never pops below one frame;
// calling it with only the global frame remaining is a no-op.
func (t *Table) ExitScope() {
	if len(t.frames) <= 1 {
		return
	}
	t.frames = t.frames[:len(t.frames)-1]
}

// top returns the innermost frame.
func (t *Table) top() frame {
	return t.frames[len(t.frames)-1]
}

// AddOccurrence creates the entry in the top frame with an empty type if
// it is not already present there, then appends (line, column) to its
// occurrence list. It returns the entry.
func (t *Table) AddOccurrence(name string, line, column int) *Entry {
	top := t.top()
	entry, ok := top.byName[name]
	if !ok {
		entry = &Entry{Name: name}
		top.byName[name] = entry
		top.order = append(top.order, name)
		t.frames[len(t.frames)-1] = top
	}
	entry.Occurrences = append(entry.Occurrences, Position{Line: line, Column: column})
	return entry
}

// Lookup scans frames from innermost to outermost and returns the first
// entry found, or nil.
func (t *Table) Lookup(name string) *Entry {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if entry, ok := t.frames[i].byName[name]; ok {
			return entry
		}
	}
	return nil
}

// Exists reports whether name resolves in any visible frame.
func (t *Table) Exists(name string) bool {
	return t.Lookup(name) != nil
}

// DefinedInCurrentScope reports whether name is bound in the innermost
// frame only.
func (t *Table) DefinedInCurrentScope(name string) bool {
	_, ok := t.top().byName[name]
	return ok
}

// ScopeCount returns the number of live frames (for reporting).
func (t *Table) ScopeCount() int {
	return len(t.frames)
}

// Scope returns the frame at depth k (0 = global) in declaration order,
// for printing.
func (t *Table) Scope(k int) []*Entry {
	if k < 0 || k >= len(t.frames) {
		return nil
	}
	f := t.frames[k]
	entries := make([]*Entry, 0, len(f.order))
	for _, name := range f.order {
		entries = append(entries, f.byName[name])
	}
	return entries
}

// Print writes every scope's bindings, in declaration order, to w.
func (t *Table) Print(w io.Writer) {
	for k := range t.frames {
		fmt.Fprintf(w, "Scope %d:\n", k)
		for _, e := range t.Scope(k) {
			typ := e.Type
			if typ == "" {
				typ = "<unresolved>"
			}
			fmt.Fprintf(w, "  %s : %s occurs at:", e.Name, typ)
			for _, p := range e.Occurrences {
				fmt.Fprintf(w, " (%d,%d)", p.Line, p.Column)
			}
			fmt.Fprintln(w)
		}
	}
}
