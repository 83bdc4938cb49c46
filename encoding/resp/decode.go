package resp

import (
	"strconv"
)

// Decode parses the frame at the start of buf and returns it together with
// the number of bytes it occupies. buf is left untouched whatever the result,
// the caller drops the consumed prefix on success. ErrNotComplete is returned
// when buf holds only part of a frame.
func Decode(buf []byte) (Frame, int, error) {
	n, err := ExpectLength(buf)
	if err != nil {
		return nil, 0, err
	}
	f, m, err := parse(buf[:n])
	if err != nil {
		return nil, 0, err
	}
	if m != n {
		return nil, 0, invalidFrame("frame spans %d bytes, expect %d", m, n)
	}
	return f, n, nil
}

// parse decodes one frame from buf which is expected to be a complete span,
// the bounds are still checked so a short buffer yields ErrNotComplete.
func parse(buf []byte) (Frame, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrNotComplete
	}
	switch Type(buf[0]) {
	case TypeSimpleString:
		line, n, err := payload(buf)
		if err != nil {
			return nil, 0, err
		}
		return SimpleString(line), n, nil
	case TypeSimpleError:
		line, n, err := payload(buf)
		if err != nil {
			return nil, 0, err
		}
		return SimpleError(line), n, nil
	case TypeInteger:
		return parseInteger(buf)
	case TypeBoolean:
		return parseBoolean(buf)
	case TypeDouble:
		return parseDouble(buf)
	case TypeNull:
		n, err := nullLength(buf)
		if err != nil {
			return nil, 0, err
		}
		return Null{}, n, nil
	case TypeBulkString:
		return parseBulkString(buf)
	case TypeArray, TypeSet:
		return parseSequence(buf)
	case TypeMap:
		return parseMap(buf)
	}
	return nil, 0, invalidType(buf[0], "frame prefix")
}

// payload returns the bytes between the prefix and the first CRLF
func payload(buf []byte) ([]byte, int, error) {
	end, err := lineEnd(buf)
	if err != nil {
		return nil, 0, err
	}
	return buf[1:end], end + len(crlf), nil
}

func parseInteger(buf []byte) (Frame, int, error) {
	line, n, err := payload(buf)
	if err != nil {
		return nil, 0, err
	}
	v, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return nil, 0, &FrameError{Kind: ErrParseInt, Err: err}
	}
	return Integer(v), n, nil
}

func parseBoolean(buf []byte) (Frame, int, error) {
	line, n, err := payload(buf)
	if err != nil {
		return nil, 0, err
	}
	if len(line) == 1 {
		switch line[0] {
		case 't':
			return Boolean(true), n, nil
		case 'f':
			return Boolean(false), n, nil
		}
	}
	return nil, 0, invalidFrame("boolean must be t or f, got %q", line)
}

func parseDouble(buf []byte) (Frame, int, error) {
	line, n, err := payload(buf)
	if err != nil {
		return nil, 0, err
	}
	v, err := strconv.ParseFloat(string(line), 64)
	if err != nil {
		return nil, 0, &FrameError{Kind: ErrParseFloat, Err: err}
	}
	return Double(v), n, nil
}

func parseBulkString(buf []byte) (Frame, int, error) {
	size, end, err := header(buf)
	if err != nil {
		return nil, 0, err
	}
	if size == -1 {
		return NullBulkString{}, end + len(crlf), nil
	}
	if size < 0 || size > MaxBulkLength {
		return nil, 0, invalidLength(buf[1:end], nil)
	}
	start := end + len(crlf)
	stop := start + int(size)
	if len(buf) < stop+len(crlf) {
		return nil, 0, ErrNotComplete
	}
	// the trailing CRLF is consumed but not checked
	data := make([]byte, size)
	copy(data, buf[start:stop])
	return BulkString(data), stop + len(crlf), nil
}

func parseSequence(buf []byte) (Frame, int, error) {
	count, end, err := header(buf)
	if err != nil {
		return nil, 0, err
	}
	if count == -1 && Type(buf[0]) == TypeArray {
		return NullArray{}, end + len(crlf), nil
	}
	if count < 0 {
		return nil, 0, invalidLength(buf[1:end], nil)
	}

	off := end + len(crlf)
	// every frame takes at least 3 bytes, never trust count for the allocation
	items := make([]Frame, 0, minInt(count, int64(len(buf)-off)/3))
	for i := int64(0); i < count; i++ {
		f, n, err := parse(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
		off += n
	}
	if Type(buf[0]) == TypeSet {
		return Set(items), off, nil
	}
	return Array(items), off, nil
}

func parseMap(buf []byte) (Frame, int, error) {
	count, end, err := header(buf)
	if err != nil {
		return nil, 0, err
	}
	if count < 0 {
		return nil, 0, invalidLength(buf[1:end], nil)
	}

	off := end + len(crlf)
	m := NewMap()
	for i := int64(0); i < count; i++ {
		if off >= len(buf) {
			return nil, 0, ErrNotComplete
		}
		if Type(buf[off]) != TypeSimpleString {
			return nil, 0, invalidType(buf[off], "simplestring map key")
		}
		key, n, err := parse(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		off += n

		value, n, err := parse(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		off += n
		m.Set(string(key.(SimpleString)), value)
	}
	return m, off, nil
}

func minInt(a, b int64) int {
	if a < b {
		return int(a)
	}
	return int(b)
}
