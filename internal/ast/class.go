package ast

import (
	"slices"

	"typedjs/internal/source"
	"typedjs/internal/token"
	"typedjs/internal/typeexpr"
)

type MemberKind uint8

const (
	MemberMethod MemberKind = iota
	MemberGetter
	MemberSetter
	MemberField
)

func (k MemberKind) String() string {
	switch k {
	case MemberGetter:
		return "get"
	case MemberSetter:
		return "set"
	case MemberField:
		return "field"
	}
	return "method"
}

// Member is one class body element. Name holds the raw key spelling
// (quotes kept for string keys); computed keys live in Key instead.
type Member struct {
	Kind     MemberKind
	Static   bool
	Computed bool
	Name     string
	NameSpan source.Span
	Key      ExprID
	// методы, геттеры, сеттеры
	Func FuncID
	// поля
	Type typeexpr.Node
	Init ExprID

	Doc  *token.Trivia
	Span source.Span
}

// IsConstructor reports whether the member is the class constructor.
func (m *Member) IsConstructor() bool {
	if m.Kind != MemberMethod || m.Static || m.Computed {
		return false
	}
	return m.Name == "constructor" || m.Name == "'constructor'" || m.Name == `"constructor"`
}

type Class struct {
	Name     string // empty for anonymous class expressions
	NameSpan source.Span
	Extends  ExprID
	Members  []MemberID
	Doc      *token.Trivia
	Span     source.Span
}

type Classes struct {
	Arena   *Arena[Class]
	Members *Arena[Member]
}

func NewClasses(capHint uint) *Classes {
	return &Classes{
		Arena:   NewArena[Class](capHint),
		Members: NewArena[Member](capHint * 8),
	}
}

func (c *Classes) New(class Class) ClassID {
	return ClassID(c.Arena.Allocate(class))
}

func (c *Classes) Get(id ClassID) *Class {
	return c.Arena.Get(uint32(id))
}

func (c *Classes) NewMember(m Member) MemberID {
	return MemberID(c.Members.Allocate(m))
}

func (c *Classes) Member(id MemberID) *Member {
	return c.Members.Get(uint32(id))
}

// Constructor returns the constructor member of the class, if declared.
func (c *Classes) Constructor(id ClassID) (MemberID, *Member, bool) {
	class := c.Get(id)
	if class == nil {
		return NoMemberID, nil, false
	}
	for _, mid := range class.Members {
		m := c.Member(mid)
		if m != nil && m.IsConstructor() {
			return mid, m, true
		}
	}
	return NoMemberID, nil, false
}

// Fields lists field members in declaration order.
func (c *Classes) Fields(id ClassID) []MemberID {
	class := c.Get(id)
	if class == nil {
		return nil
	}
	var out []MemberID
	for _, mid := range class.Members {
		if m := c.Member(mid); m != nil && m.Kind == MemberField {
			out = append(out, mid)
		}
	}
	return out
}

// RemoveMember drops member from the class body. The member stays in the arena.
func (c *Classes) RemoveMember(id ClassID, member MemberID) bool {
	class := c.Get(id)
	if class == nil {
		return false
	}
	idx := slices.Index(class.Members, member)
	if idx < 0 {
		return false
	}
	class.Members = slices.Delete(class.Members, idx, idx+1)
	return true
}

// InsertMember puts member at position at (clamped to the body length).
func (c *Classes) InsertMember(id ClassID, at int, member MemberID) {
	class := c.Get(id)
	if class == nil {
		return
	}
	at = max(0, min(at, len(class.Members)))
	class.Members = slices.Insert(class.Members, at, member)
}
