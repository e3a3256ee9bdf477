package ledger

import "iter"

// ScanUnits yields the raw record units found in store contents. The
// store is not line-oriented: each write appended one self-contained
// `{...}` unit which may span lines, so boundaries are found by brace
// matching (string- and escape-aware, nested objects included).
//
// Anything between units that does not open a unit is ignored, and an
// unbalanced trailing fragment (e.g. from a crash mid-write) is dropped
// silently. The sequence is lazy and restartable.
func ScanUnits(data []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		depth := 0
		start := -1
		inString := false
		escaped := false

		for i := 0; i < len(data); i++ {
			b := data[i]

			if inString {
				switch {
				case escaped:
					escaped = false
				case b == '\\':
					escaped = true
				case b == '"':
					inString = false
				}
				continue
			}

			switch b {
			case '"':
				// strings only matter inside a unit
				if depth > 0 {
					inString = true
				}
			case '{':
				if depth == 0 {
					start = i
				}
				depth++
			case '}':
				if depth == 0 {
					// stray closer outside any unit
					continue
				}
				depth--
				if depth == 0 {
					if !yield(data[start : i+1]) {
						return
					}
					start = -1
				}
			}
		}
	}
}
