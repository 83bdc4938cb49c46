package resp

import (
	"bytes"
)

const (
	// MaxBulkLength is the largest declared bulk string length accepted
	MaxBulkLength = 512 << 20

	// MaxNestingDepth bounds how deep aggregate frames may nest
	MaxNestingDepth = 1024
)

var crlf = []byte("\r\n")

// ExpectLength returns the number of bytes at the start of buf that make up
// one complete frame. It returns ErrNotComplete when buf ends before the
// frame does. buf is never modified and nothing is allocated on success.
func ExpectLength(buf []byte) (int, error) {
	return frameLength(buf, 0)
}

func frameLength(buf []byte, depth int) (int, error) {
	if len(buf) == 0 {
		return 0, ErrNotComplete
	}
	switch Type(buf[0]) {
	case TypeSimpleString, TypeSimpleError, TypeInteger, TypeBoolean, TypeDouble:
		end, err := lineEnd(buf)
		if err != nil {
			return 0, err
		}
		return end + len(crlf), nil
	case TypeNull:
		return nullLength(buf)
	case TypeBulkString:
		return bulkLength(buf)
	case TypeArray, TypeSet:
		return sequenceLength(buf, depth)
	case TypeMap:
		return mapLength(buf, depth)
	}
	return 0, invalidType(buf[0], "frame prefix")
}

// lineEnd returns the offset of the first CRLF after the prefix byte. A CR
// at the very end of buf is not a line end until its LF arrives.
func lineEnd(buf []byte) (int, error) {
	i := bytes.Index(buf[1:], crlf)
	if i < 0 {
		return 0, ErrNotComplete
	}
	return i + 1, nil
}

// header parses the decimal length or count of an aggregate or bulk frame.
// It returns the value and the offset of the CRLF ending the header line.
func header(buf []byte) (int64, int, error) {
	end, err := lineEnd(buf)
	if err != nil {
		return 0, 0, err
	}
	n, ok := parseDecimal(buf[1:end])
	if !ok {
		return 0, 0, invalidLength(buf[1:end], nil)
	}
	return n, end, nil
}

// parseDecimal parses an optionally negative decimal number without allocating
func parseDecimal(b []byte) (int64, bool) {
	neg := false
	if len(b) > 0 && b[0] == '-' {
		neg = true
		b = b[1:]
	}
	if len(b) == 0 || len(b) > 18 {
		return 0, false
	}
	var n int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

func nullLength(buf []byte) (int, error) {
	const size = len("_\r\n")
	for i := 1; i < size && i < len(buf); i++ {
		if buf[i] != crlf[i-1] {
			return 0, invalidFrame("null frame must be %q, got %q", "_\r\n", buf[:i+1])
		}
	}
	if len(buf) < size {
		return 0, ErrNotComplete
	}
	return size, nil
}

// $<length>\r\n<bytes>\r\n
func bulkLength(buf []byte) (int, error) {
	n, end, err := header(buf)
	if err != nil {
		return 0, err
	}
	if n == -1 {
		return end + len(crlf), nil
	}
	if n < 0 || n > MaxBulkLength {
		return 0, invalidLength(buf[1:end], nil)
	}
	total := end + len(crlf) + int(n) + len(crlf)
	if len(buf) < total {
		return 0, ErrNotComplete
	}
	return total, nil
}

// *<number-of-elements>\r\n<element-1>...<element-n>
// ~<number-of-elements>\r\n<element-1>...<element-n>
func sequenceLength(buf []byte, depth int) (int, error) {
	n, end, err := header(buf)
	if err != nil {
		return 0, err
	}
	if n == -1 && Type(buf[0]) == TypeArray {
		return end + len(crlf), nil
	}
	if n < 0 {
		return 0, invalidLength(buf[1:end], nil)
	}
	if depth >= MaxNestingDepth {
		return 0, invalidFrame("nesting deeper than %d", MaxNestingDepth)
	}

	total := end + len(crlf)
	for i := int64(0); i < n; i++ {
		l, err := frameLength(buf[total:], depth+1)
		if err != nil {
			return 0, err
		}
		total += l
	}
	return total, nil
}

// %<number-of-entries>\r\n<key-1><value-1>...<key-n><value-n>
func mapLength(buf []byte, depth int) (int, error) {
	n, end, err := header(buf)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, invalidLength(buf[1:end], nil)
	}
	if depth >= MaxNestingDepth {
		return 0, invalidFrame("nesting deeper than %d", MaxNestingDepth)
	}

	total := end + len(crlf)
	for i := int64(0); i < n; i++ {
		l, err := keyLength(buf[total:])
		if err != nil {
			return 0, err
		}
		total += l

		l, err = frameLength(buf[total:], depth+1)
		if err != nil {
			return 0, err
		}
		total += l
	}
	return total, nil
}

// keyLength measures a map key, which must be a simple string
func keyLength(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, ErrNotComplete
	}
	if Type(buf[0]) != TypeSimpleString {
		return 0, invalidType(buf[0], "simplestring map key")
	}
	end, err := lineEnd(buf)
	if err != nil {
		return 0, err
	}
	return end + len(crlf), nil
}
