package dbus

import "github.com/havelange/dbusarg/wire"

// MessageIterator is the wire cursor ArgumentNode marshals to and
// unmarshals from. dbus/wire.Iterator is this repository's own
// implementation, standing in for a real bus transport (out of
// scope here).
type MessageIterator = wire.MessageIterator

// signatureReporter is an optional capability a MessageIterator may
// implement: reporting the DBus signature text at the cursor's
// current position. unmarshalVariant needs it to build the transient
// ArgumentNode for a variant's embedded value; most call sites never
// need it.
type signatureReporter interface {
	SignatureAt() string
}
