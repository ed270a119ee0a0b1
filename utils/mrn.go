package utils

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const mrnSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateMRN produces a medical record number of the form
// {tenantCode}-{base36 millisecond timestamp}{4 char random suffix},
// uppercased. The MRN column carries a unique index and callers retry with a
// fresh value on conflict, so the suffix only needs to make same-millisecond
// collisions unlikely.
func GenerateMRN(tenantCode string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return strings.ToUpper(fmt.Sprintf("%s-%s%s", tenantCode, ts, randomSuffix(4)))
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp-derived suffix rather than panic in a request path.
		ns := strconv.FormatInt(time.Now().UnixNano(), 36)
		for len(ns) < n {
			ns += "0"
		}
		return ns[len(ns)-n:]
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = mrnSuffixAlphabet[int(b)%len(mrnSuffixAlphabet)]
	}
	return string(out)
}
