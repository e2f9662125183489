package typeast

import (
	"fmt"
	"slices"
)

// Equal compares two trees structurally. Order matters everywhere.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case Any, Void, Unknown, Null, Boolean, Number, String:
		return true
	case *Named:
		b := b.(*Named)
		return slices.Equal(a.Name, b.Name) && equalList(a.Args, b.Args)
	case *Union:
		return equalList(a.Members, b.(*Union).Members)
	case *Record:
		b := b.(*Record)
		return slices.EqualFunc(a.Fields, b.Fields, func(x, y Field) bool {
			return x.Name == y.Name && Equal(x.Type, y.Type)
		})
	case *Function:
		b := b.(*Function)
		return slices.EqualFunc(a.Params, b.Params, func(x, y Param) bool {
			return x.Name == y.Name && Equal(x.Type, y.Type)
		}) && Equal(a.This, b.This) && Equal(a.New, b.New) && Equal(a.Return, b.Return)
	case *Rest:
		return Equal(a.Inner, b.(*Rest).Inner)
	case *Optional:
		return Equal(a.Inner, b.(*Optional).Inner)
	}
	panic(fmt.Errorf("typeast: unknown type %T", a))
}

func equalList(a, b []Type) bool {
	return slices.EqualFunc(a, b, Equal)
}
