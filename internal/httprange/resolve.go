package httprange

import "strconv"

// Resolved is a concrete end-inclusive byte span validated against a
// resource size, with 0 <= Start <= End <= size-1.
type Resolved struct {
	Start int64
	End   int64
}

// Length returns the number of bytes covered by the span.
func (r Resolved) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange renders the span as a Content-Range header value,
// e.g. "bytes 100-199/1000".
func (r Resolved) ContentRange(size int64) string {
	return "bytes " + strconv.FormatInt(r.Start, 10) + "-" +
		strconv.FormatInt(r.End, 10) + "/" + strconv.FormatInt(size, 10)
}

// ContentRangeUnsatisfiable renders the Content-Range value carried by
// a 416 response, e.g. "bytes */1000".
func ContentRangeUnsatisfiable(size int64) string {
	return "bytes */" + strconv.FormatInt(size, 10)
}

// Resolve clamps the spec against a resource of the given size. ok is
// false when the range cannot be satisfied: a start at or past the end
// of the resource, a suffix of zero bytes, or any suffix against an
// empty resource.
func (s Spec) Resolve(size int64) (r Resolved, ok bool) {
	switch s.Anchor {
	case AnchorAbsolute:
		if s.Start >= size {
			return Resolved{}, false
		}
		end := s.End
		if end > size-1 {
			end = size - 1
		}
		return Resolved{Start: s.Start, End: end}, true
	case AnchorToEnd:
		if s.Start >= size {
			return Resolved{}, false
		}
		return Resolved{Start: s.Start, End: size - 1}, true
	default: // AnchorFromEnd
		if size == 0 || s.Suffix == 0 {
			return Resolved{}, false
		}
		start := size - s.Suffix
		if start < 0 {
			start = 0
		}
		return Resolved{Start: start, End: size - 1}, true
	}
}
