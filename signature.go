package dbus

// ValidateSingle reports whether sig is exactly one complete DBus
// type (spec.md P1/P2, I4). Multi-type signatures such as "iiu" are
// only valid at the message level, outside this core, and are
// rejected here.
func ValidateSingle(sig string) bool {
	head, rest, err := parseType(sig)
	return err == nil && head != "" && rest == ""
}

// parseType extracts the first complete DBus type from sig, validates
// its grammar as it goes, and returns the type's own text, whatever
// follows it in sig, and an error if sig does not begin with a valid
// type. A bare dict-entry ("{...}") is rejected here, since a
// dict-entry is only a valid type as an array's element, never
// standalone.
//
// Together with parseTypeCtx, its implementation, this is the one
// place the signature grammar is defined: [ValidateSingle] calls
// parseType, and [SignatureCursor] calls parseTypeCtx, per spec.md
// §4.1 ("purely syntactic; produces the same tree irrespective of
// host environment").
func parseType(sig string) (head, rest string, err error) {
	return parseTypeCtx(sig, false)
}

// parseTypeCtx is parseType's implementation. allowDictEntry is true
// only while parsing the element type directly after an 'a', since
// that is the one grammar position a dict-entry type is allowed in.
func parseTypeCtx(sig string, allowDictEntry bool) (head, rest string, err error) {
	if sig == "" {
		return "", "", malformedSignature(sig, "empty signature")
	}
	code := sig[0]
	switch {
	case isScalarCode(code):
		return sig[:1], sig[1:], nil
	case code == 'v':
		return sig[:1], sig[1:], nil
	case code == 'a':
		elemHead, elemRest, err := parseTypeCtx(sig[1:], true)
		if err != nil {
			return "", "", err
		}
		return "a" + elemHead, elemRest, nil
	case code == '(':
		i := 1
		fields := 0
		for i < len(sig) && sig[i] != ')' {
			_, rest, err := parseTypeCtx(sig[i:], false)
			if err != nil {
				return "", "", err
			}
			fields++
			i = len(sig) - len(rest)
		}
		if i >= len(sig) {
			return "", "", malformedSignature(sig, "missing closing ) in struct definition")
		}
		if fields == 0 {
			return "", "", malformedSignature(sig, "struct must have at least one field")
		}
		return sig[:i+1], sig[i+1:], nil
	case code == '{':
		if !allowDictEntry {
			return "", "", malformedSignature(sig, "dict entry type is only valid as an array element")
		}
		keyHead, afterKey, err := parseTypeCtx(sig[1:], false)
		if err != nil {
			return "", "", err
		}
		if len(keyHead) != 1 || !isScalarCode(keyHead[0]) {
			return "", "", malformedSignature(sig, "complex type as dict entry key")
		}
		_, afterVal, err := parseTypeCtx(afterKey, false)
		if err != nil {
			return "", "", err
		}
		if afterVal == "" || afterVal[0] != '}' {
			return "", "", malformedSignature(sig, "missing closing } in dict entry definition")
		}
		return sig[:len(sig)-len(afterVal)+1], afterVal[1:], nil
	default:
		return "", "", malformedSignature(sig, "unknown type specifier %q", string(code))
	}
}

// SignatureCursor is a forward cursor over a signature string, per
// spec.md §4.1's init/current/recurse/next contract. It does not
// allocate ArgumentNodes; it only emits the tokens [FromIterator]
// consumes.
type SignatureCursor struct {
	sig string
}

// NewSignatureCursor constructs a cursor positioned at the first type
// in sig. sig may describe more than one sibling type (e.g. a
// struct's field list); [FromSignature] is the entry point for
// callers that have a single complete type.
func NewSignatureCursor(sig string) *SignatureCursor {
	return &SignatureCursor{sig: sig}
}

// Current returns the type code at the cursor, or 0 if the cursor has
// no type left to offer.
func (c *SignatureCursor) Current() byte {
	if c.sig == "" {
		return 0
	}
	return c.sig[0]
}

// HasMore reports whether the cursor has a current type.
func (c *SignatureCursor) HasMore() bool {
	return c.sig != ""
}

// Next advances the cursor past its current complete type, and
// reports whether another type follows.
//
// Next uses parseTypeCtx directly, rather than parseType, because the
// cursor's current position may legitimately be a dict-entry type: a
// cursor produced by Recurse-ing into an array whose element is a
// dict-entry sits exactly there.
func (c *SignatureCursor) Next() (bool, error) {
	_, rest, err := parseTypeCtx(c.sig, true)
	if err != nil {
		return false, err
	}
	c.sig = rest
	return c.sig != "", nil
}

// Recurse returns a cursor over the type(s) nested inside the
// container at the cursor's current position: the single element
// type for an array, the field list for a struct, or the key/value
// pair for a dict-entry.
func (c *SignatureCursor) Recurse() (*SignatureCursor, error) {
	head, _, err := parseTypeCtx(c.sig, true)
	if err != nil {
		return nil, err
	}
	switch head[0] {
	case 'a':
		return &SignatureCursor{sig: head[1:]}, nil
	case '(', '{':
		return &SignatureCursor{sig: head[1 : len(head)-1]}, nil
	default:
		return nil, malformedSignature(c.sig, "type %q is not a container", string(head[0]))
	}
}
