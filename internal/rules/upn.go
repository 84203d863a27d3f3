package rules

// UPN check-digit validation. A UPN is thirteen characters: an initial
// check letter, eleven digits, and a final character that is a digit for
// permanent UPNs or a letter for temporary ones.
//
// Letters map into the 23-letter sequence that excludes I, O and S, via
// banded ranges: A-H, J-N, P-R, T-Z.

// letterIndex maps a check letter to its index 0-22, false when the letter
// is not in the sequence.
func letterIndex(c byte) (int, bool) {
	switch {
	case c >= 'A' && c <= 'H':
		return int(c - 'A'), true
	case c >= 'J' && c <= 'N':
		return int(c-'A') - 1, true
	case c >= 'P' && c <= 'R':
		return int(c-'A') - 2, true
	case c >= 'T' && c <= 'Z':
		return int(c-'A') - 3, true
	}
	return 0, false
}

// finalCode maps the thirteenth character: digits carry their own value,
// letters carry 10 plus their sequence index.
func finalCode(c byte) (int, bool) {
	if c >= '0' && c <= '9' {
		return int(c - '0'), true
	}
	idx, ok := letterIndex(c)
	if !ok {
		return 0, false
	}
	return 10 + idx, true
}

// ValidUPN reports whether a 13-character UPN carries the correct check
// letter. Middle digit i (1-based) is weighted i+1, the final character 13;
// the weighted sum mod 23 must equal the initial letter's index.
func ValidUPN(upn string) bool {
	if len(upn) != 13 {
		return false
	}
	initial, ok := letterIndex(upn[0])
	if !ok {
		return false
	}
	sum := 0
	for i := 1; i <= 11; i++ {
		c := upn[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * (i + 1) % 23
	}
	last, ok := finalCode(upn[12])
	if !ok {
		return false
	}
	sum += last * 13 % 23
	return sum%23 == initial
}
