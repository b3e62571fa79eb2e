package pricing

import (
	"regexp"
	"strconv"
)

var firstNumber = regexp.MustCompile(`\d+`)

// TotalAvailableQuantity multiplies the received case count by the first
// integer found in the case description ("qty:100 box" → 100 per case).
// Missing inputs or a description without digits yield zero.
func TotalAvailableQuantity(receivedCase int, caseQuantity string) int {
	if receivedCase <= 0 || caseQuantity == "" {
		return 0
	}
	m := firstNumber.FindString(caseQuantity)
	if m == "" {
		return 0
	}
	perCase, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return receivedCase * perCase
}
