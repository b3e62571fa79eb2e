// Package numwords spells out whole amounts in lowercase English using the
// Indian grouping: crore (10^7), lakh (10^5), thousand, hundred.
package numwords

import (
	"errors"
	"strings"
)

var ErrNegative = errors.New("numwords: negative input")

var (
	ones  = [...]string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	teens = [...]string{"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}
	tens  = [...]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

// Convert returns the words for n, e.g. 868 → "eight hundred sixty eight"
// and 100000 → "one lakh". Zero is "zero".
func Convert(n int64) (string, error) {
	if n < 0 {
		return "", ErrNegative
	}
	if n == 0 {
		return "zero", nil
	}

	var parts []string

	// Above the crore unit the count of crores is itself spelled out in the
	// same grouping ("one thousand crore").
	if c := n / crore; c > 0 {
		w, _ := Convert(c)
		parts = append(parts, w, "crore")
		n %= crore
	}
	if l := n / lakh; l > 0 {
		parts = append(parts, belowThousand(int(l)), "lakh")
		n %= lakh
	}
	if t := n / thousand; t > 0 {
		parts = append(parts, belowThousand(int(t)), "thousand")
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, belowThousand(int(n)))
	}
	return strings.Join(parts, " "), nil
}

// MustConvert is Convert for inputs already known to be non-negative.
func MustConvert(n int64) string {
	w, err := Convert(n)
	if err != nil {
		panic(err)
	}
	return w
}

// belowThousand spells 1..999; callers never pass zero.
func belowThousand(n int) string {
	var words []string
	if n >= 100 {
		words = append(words, ones[n/100], "hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		words = append(words, tens[n/10])
		if n%10 > 0 {
			words = append(words, ones[n%10])
		}
	case n >= 10:
		words = append(words, teens[n-10])
	case n > 0:
		words = append(words, ones[n])
	}
	return strings.Join(words, " ")
}
