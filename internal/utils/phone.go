package utils

import "strings"

// NormalizePhone converts caller MSISDNs to the canonical Nigerian national
// format (0XXXXXXXXXX). Accepts "+234...", "234..." and already-national
// numbers; anything unrecognized is returned trimmed but otherwise untouched.
func NormalizePhone(phone string) string {
	p := strings.TrimSpace(phone)
	p = strings.ReplaceAll(p, " ", "")
	p = strings.TrimPrefix(p, "+")

	if strings.HasPrefix(p, "234") && len(p) == 13 {
		return "0" + p[3:]
	}
	return p
}

// MaskBVN hides all but the last four digits of a BVN.
func MaskBVN(bvn string) string {
	if len(bvn) <= 4 {
		return bvn
	}
	return strings.Repeat("*", len(bvn)-4) + bvn[len(bvn)-4:]
}
