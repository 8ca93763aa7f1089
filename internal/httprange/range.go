// Package httprange parses and resolves HTTP byte-range requests
// (RFC 7233 "bytes" ranges) against resources of known size.
package httprange

import (
	"net/textproto"
	"strconv"
	"strings"
)

// State classifies a Range header value.
type State int

const (
	// Absent means no Range header was sent.
	Absent State = iota
	// Malformed means the header was present but unusable; the caller
	// should fall back to serving the full resource.
	Malformed
	// Present means at least one well-formed range spec was parsed.
	Present
)

// Anchor tells which fields of a Spec are meaningful.
type Anchor int

const (
	// AnchorAbsolute is a "start-end" range; Start and End are both set.
	AnchorAbsolute Anchor = iota
	// AnchorToEnd is a "start-" range; only Start is set.
	AnchorToEnd
	// AnchorFromEnd is a "-N" suffix range; Suffix holds N.
	AnchorFromEnd
)

// Spec is one range taken from a Range header, before validation
// against a resource size. Offsets are end-inclusive.
type Spec struct {
	Anchor Anchor
	Start  int64
	End    int64
	Suffix int64
}

const bytesPrefix = "bytes="

// Parse parses a raw Range header value. An empty value reports Absent.
// Any unit other than bytes, any bad numeric token, an inverted
// "start-end" pair, or an empty range list reports Malformed with no
// specs. Specs come back in header order; callers that honor only the
// first range still get the whole list so the header is validated as a
// unit.
func Parse(s string) (State, []Spec) {
	if s == "" {
		return Absent, nil
	}
	if !strings.HasPrefix(s, bytesPrefix) {
		return Malformed, nil
	}
	var specs []Spec
	for _, ra := range strings.Split(s[len(bytesPrefix):], ",") {
		ra = textproto.TrimString(ra)
		if ra == "" {
			continue
		}
		dash := strings.Index(ra, "-")
		if dash < 0 {
			return Malformed, nil
		}
		start := textproto.TrimString(ra[:dash])
		end := textproto.TrimString(ra[dash+1:])
		spec, ok := parseSpec(start, end)
		if !ok {
			return Malformed, nil
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return Malformed, nil
	}
	return Present, specs
}

func parseSpec(start, end string) (Spec, bool) {
	if start == "" {
		// "-N": the last N bytes of the resource.
		n, err := strconv.ParseInt(end, 10, 64)
		if err != nil || n < 0 {
			return Spec{}, false
		}
		return Spec{Anchor: AnchorFromEnd, Suffix: n}, true
	}
	i, err := strconv.ParseInt(start, 10, 64)
	if err != nil || i < 0 {
		return Spec{}, false
	}
	if end == "" {
		// "start-": from start to the end of the resource.
		return Spec{Anchor: AnchorToEnd, Start: i}, true
	}
	j, err := strconv.ParseInt(end, 10, 64)
	if err != nil || j < i {
		return Spec{}, false
	}
	return Spec{Anchor: AnchorAbsolute, Start: i, End: j}, true
}
