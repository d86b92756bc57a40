package dbus

// nullMarkerType is a distinguished singleton standing in for an
// absent element inside an unmarshalled sequence or mapping, so that
// a nil host value is never silently dropped from the result
// (spec.md P8).
type nullMarkerType struct{}

func (nullMarkerType) String() string { return "<dbus-null>" }

// NullMarker is the well-known null-marker value substituted for a
// nil element during unmarshal.
var NullMarker any = nullMarkerType{}
