package catalog

import (
	"strings"

	"glowcart/internal/domain"
)

// skinTypeBits maps the human-facing skin type literals onto their bit flags.
var skinTypeBits = map[string]int{
	"dry":         domain.SkinDry,
	"oily":        domain.SkinOily,
	"combination": domain.SkinCombination,
	"sensitive":   domain.SkinSensitive,
	"normal":      domain.SkinNormal,
}

// SkinTypeBit maps a skin type literal to exactly one bit flag. Unrecognized
// literals fall back to Normal's bit instead of failing, so a recommendation
// always has a working skin dimension.
func SkinTypeBit(name string) int {
	if bit, ok := skinTypeBits[strings.ToLower(strings.TrimSpace(name))]; ok {
		return bit
	}
	return domain.SkinNormal
}

// MatchesSkin reports whether a product's skin mask overlaps the requested
// mask. Any overlap counts, not subset containment. A requested mask of 0 is
// the "no filter" sentinel and matches everything.
func MatchesSkin(productMask, requestedMask int) bool {
	if requestedMask == 0 {
		return true
	}
	return productMask&requestedMask != 0
}
