package hoist

import "typedjs/internal/ast"

type ChangeKind uint8

const (
	FieldRemoved ChangeKind = iota + 1
	InstanceInserted
	StaticInserted
)

func (k ChangeKind) String() string {
	switch k {
	case FieldRemoved:
		return "remove"
	case InstanceInserted:
		return "insert-instance"
	case StaticInserted:
		return "insert-static"
	}
	return "change?"
}

// Change describes one edit. List is the statement list whose scope changed:
// the constructor body for instance fields, the enclosing list otherwise.
type Change struct {
	Kind  ChangeKind
	Class ast.ClassID
	List  ast.ListRef
	Stmt  ast.StmtID // inserted statement, NoStmtID for removals
}

// ChangeSink receives a mark for every removal and insertion.
type ChangeSink interface {
	MarkChanged(c Change)
}

// ChangeCounter tallies changes per kind and per scope.
type ChangeCounter struct {
	Total   int
	ByKind  map[ChangeKind]int
	ByScope map[ast.ListRef]int
}

func NewChangeCounter() *ChangeCounter {
	return &ChangeCounter{
		ByKind:  make(map[ChangeKind]int),
		ByScope: make(map[ast.ListRef]int),
	}
}

func (c *ChangeCounter) MarkChanged(ch Change) {
	c.Total++
	c.ByKind[ch.Kind]++
	c.ByScope[ch.List]++
}
