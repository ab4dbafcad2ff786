package reconcile

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

// IdentityPrefix distinguishes derived identities from anything a feed
// or a user could have typed into a description.
const IdentityPrefix = "rs-"

// Scheme selects the digest used for identity derivation.
type Scheme string

const (
	// SchemeFNV64 digests the joined triple with FNV-1a 64-bit. Default.
	SchemeFNV64 Scheme = "fnv64"

	// SchemeLegacy31 reproduces the original rolling multiply-add hash
	// (h = h*31 + code point, signed 32-bit wraparound, absolute value).
	// Byte-compatible with identities already embedded in calendars
	// synced by the previous implementation.
	SchemeLegacy31 Scheme = "legacy31"
)

// Valid reports whether s names a known scheme.
func (s Scheme) Valid() bool {
	return s == SchemeFNV64 || s == SchemeLegacy31
}

// Derive maps an event's (title, start, location) triple to its identity
// string. The same triple always yields the same identity, across runs
// and process restarts; reconciliation correctness depends on nothing
// else. Collisions are possible and are handled by the engine's
// content-key rescue, never assumed away.
func Derive(scheme Scheme, title string, start time.Time, location string) string {
	joined := joinTriple(title, start, location)

	var digest uint64
	switch scheme {
	case SchemeLegacy31:
		digest = legacy31(joined)
	default:
		h := fnv.New64a()
		h.Write([]byte(joined))
		digest = h.Sum64()
	}

	return IdentityPrefix + strconv.FormatUint(digest, 10)
}

// ContentKey maps the same triple to the secondary lookup key: a plain
// delimited concatenation with no hashing. prefix is the managed title
// prefix, stripped when present so source and target keys compare
// directly.
func ContentKey(prefix, title string, start time.Time, location string) string {
	title = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(title), prefix))
	return joinTriple(title, start, location)
}

func joinTriple(title string, start time.Time, location string) string {
	return strings.TrimSpace(title) + "|" + strconv.FormatInt(start.Unix(), 10) + "|" + strings.TrimSpace(location)
}

// legacy31 folds s with the original h*31+c hash, truncating to a signed
// 32-bit word on every step and taking the absolute value at the end.
// The fold runs over UTF-16 code units, not runes: the prior sync
// implementation hashed per code unit, so a supplementary-plane
// character contributes its surrogate pair.
func legacy31(s string) uint64 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return uint64(v)
}
