// Package typeast is the canonical type tree shared by every type-aware pass.
//
// Both annotation grammars normalize into this one representation. Trees are
// immutable after construction; Equal is structural and order-sensitive, and
// field and parameter order is declaration order.
package typeast
