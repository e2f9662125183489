// Package hoist rewrites class field declarations into plain statements.
//
// Instance fields become `this.name = init;` (or a bare `this.name;` when the
// field has no initializer) at the front of the constructor body, in
// declaration order. Static fields become `C.name = init;` statements placed
// right after the statement that declares or binds the class. Computed keys
// turn into bracket access and the key expression is moved, not copied.
//
// Every class must already have a constructor (see package ctor). A class
// whose static target cannot be named, such as a class expression passed as
// an argument, is reported with CnvCannotConvertFields and left as is.
package hoist
