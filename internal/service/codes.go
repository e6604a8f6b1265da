package service

import (
	"crypto/rand"
	"time"
)

// Unambiguous alphabet for human-facing codes (no 0/O, 1/I/L).
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

func randomCode(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out)
}

// newBatchCode is timestamp-derived so codes sort by receipt time, with a
// random suffix to stay unique under concurrent receipts in the same second.
func newBatchCode(now time.Time) string {
	return "B-" + now.UTC().Format("20060102-150405") + "-" + randomCode(4)
}

// newOrderCode generates the human-facing short code used on confirmation
// screens and pickup slips.
func newOrderCode() string {
	return "CK-" + randomCode(6)
}
