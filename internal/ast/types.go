package ast

import (
	"fmt"

	"fortio.org/safecast"

	"typedjs/internal/typeast"
)

type SiteKind uint8

const (
	SiteVar    SiteKind = iota + 1 // ID = StmtID, Index = declarator
	SiteParam                      // ID = FuncID, Index = parameter
	SiteReturn                     // ID = FuncID
	SiteField                      // ID = MemberID
)

func (k SiteKind) String() string {
	switch k {
	case SiteVar:
		return "var"
	case SiteParam:
		return "param"
	case SiteReturn:
		return "return"
	case SiteField:
		return "field"
	}
	return "invalid"
}

// TypeSite identifies an annotation site: the owning node plus a slot in it.
type TypeSite struct {
	Kind  SiteKind
	ID    uint32
	Index uint32
}

func VarSite(stmt StmtID, decl int) TypeSite {
	return TypeSite{Kind: SiteVar, ID: uint32(stmt), Index: siteIndex(decl)}
}

func ParamSite(fn FuncID, param int) TypeSite {
	return TypeSite{Kind: SiteParam, ID: uint32(fn), Index: siteIndex(param)}
}

func siteIndex(i int) uint32 {
	n, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("site index overflow: %w", err))
	}
	return n
}

func ReturnSite(fn FuncID) TypeSite {
	return TypeSite{Kind: SiteReturn, ID: uint32(fn)}
}

func FieldSite(member MemberID) TypeSite {
	return TypeSite{Kind: SiteField, ID: uint32(member)}
}

// TypeTable is the side table of canonical types attached to annotation sites.
// Sites keeps insertion order for deterministic dumps.
type TypeTable struct {
	types map[TypeSite]typeast.Type
	Sites []TypeSite
}

func NewTypeTable() *TypeTable {
	return &TypeTable{types: make(map[TypeSite]typeast.Type)}
}

// Set attaches t to site; a second Set for the same site replaces the type.
func (tt *TypeTable) Set(site TypeSite, t typeast.Type) {
	if _, ok := tt.types[site]; !ok {
		tt.Sites = append(tt.Sites, site)
	}
	tt.types[site] = t
}

func (tt *TypeTable) Lookup(site TypeSite) (typeast.Type, bool) {
	t, ok := tt.types[site]
	return t, ok
}

func (tt *TypeTable) Len() int {
	return len(tt.types)
}
