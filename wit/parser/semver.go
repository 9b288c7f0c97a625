package parser

// isValidSemver checks a captured version span against strict semantic
// versioning: major.minor.patch, optionally followed by -prerelease and
// +build. The version scan is greedy and token-based, so validation happens
// here over the whole span at once.
func isValidSemver(s string) bool {
	rest, ok := eatNumericID(s)
	if !ok {
		return false
	}
	rest, ok = eatByte(rest, '.')
	if !ok {
		return false
	}
	rest, ok = eatNumericID(rest)
	if !ok {
		return false
	}
	rest, ok = eatByte(rest, '.')
	if !ok {
		return false
	}
	rest, ok = eatNumericID(rest)
	if !ok {
		return false
	}

	if len(rest) > 0 && rest[0] == '-' {
		rest, ok = eatDottedIDs(rest[1:], true)
		if !ok {
			return false
		}
	}
	if len(rest) > 0 && rest[0] == '+' {
		rest, ok = eatDottedIDs(rest[1:], false)
		if !ok {
			return false
		}
	}
	return len(rest) == 0
}

func eatByte(s string, ch byte) (string, bool) {
	if len(s) == 0 || s[0] != ch {
		return s, false
	}
	return s[1:], true
}

// eatNumericID consumes a digit run with no leading zero.
func eatNumericID(s string) (string, bool) {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	if n == 0 {
		return s, false
	}
	if n > 1 && s[0] == '0' {
		return s, false
	}
	return s[n:], true
}

// eatDottedIDs consumes one or more dot-separated identifiers made of
// [0-9A-Za-z-]. In prerelease position a purely numeric identifier must not
// have a leading zero; build identifiers have no such rule.
func eatDottedIDs(s string, prerelease bool) (string, bool) {
	for {
		n := 0
		numeric := true
		for n < len(s) && isSemverIDChar(s[n]) {
			if !isDigit(s[n]) {
				numeric = false
			}
			n++
		}
		if n == 0 {
			return s, false
		}
		if prerelease && numeric && n > 1 && s[0] == '0' {
			return s, false
		}
		s = s[n:]
		if len(s) == 0 || s[0] != '.' {
			return s, true
		}
		s = s[1:]
	}
}

func isSemverIDChar(ch byte) bool {
	return isDigit(ch) || isLetter(ch) || ch == '-'
}
