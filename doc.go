// Package dbus implements the DBus argument type system: parsing a
// type signature into a tree of ArgumentNodes, boxing and unboxing
// scalar values, and marshalling containers (arrays, structs,
// dictionaries, variants) to and from a wire cursor.
//
// This package models the argument machinery only. It has no notion
// of a bus connection, method dispatch, or introspection; callers
// supply their own MessageIterator (see the wire package for the
// in-memory implementation used by this repository's own tests) and
// their own CallFrame to bind arguments into.
package dbus
