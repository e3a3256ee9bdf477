package tool

import "strings"

// NormalizeDocument strips everything but digits from a tax id.
func NormalizeDocument(doc string) string {
	var b strings.Builder
	for _, r := range doc {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPF checks the two verifier digits of a Brazilian CPF.
// Input may contain punctuation; CPFs with all digits equal are rejected.
func IsValidCPF(cpf string) bool {
	cpf = NormalizeDocument(cpf)
	if len(cpf) != 11 {
		return false
	}

	allEqual := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	for t := 9; t < 11; t++ {
		sum := 0
		for c := 0; c < t; c++ {
			sum += int(cpf[c]-'0') * (t + 1 - c)
		}
		d := ((10 * sum) % 11) % 10
		if int(cpf[t]-'0') != d {
			return false
		}
	}
	return true
}
