package wire

// oneType extracts the first complete DBus type from sig and returns
// it along with whatever follows it in sig.
//
// oneType assumes sig is already known to be well-formed: the wire
// package never has to report a parse error to a caller, because by
// the time a value reaches the wire its signature was already
// validated when the owning ArgumentNode was constructed.
func oneType(sig string) (head, rest string) {
	if sig == "" {
		return "", ""
	}
	switch sig[0] {
	case 'a':
		h, r := oneType(sig[1:])
		return "a" + h, r
	case '(':
		return splitDelimited(sig, '(', ')')
	case '{':
		return splitDelimited(sig, '{', '}')
	default:
		return sig[:1], sig[1:]
	}
}

func splitDelimited(sig string, open, shut byte) (head, rest string) {
	depth := 1
	i := 1
	for i < len(sig) && depth > 0 {
		switch sig[i] {
		case open:
			depth++
		case shut:
			depth--
		}
		i++
	}
	return sig[:i], sig[i:]
}

// splitTypes splits sig into the sequence of complete top-level types
// it contains.
func splitTypes(sig string) []string {
	var out []string
	for sig != "" {
		var h string
		h, sig = oneType(sig)
		out = append(out, h)
	}
	return out
}
