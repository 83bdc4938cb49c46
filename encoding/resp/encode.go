package resp

import (
	"math"
	"strconv"
)

// Encode serializes f. It never fails.
func Encode(f Frame) []byte {
	return AppendFrame(make([]byte, 0, 64), f)
}

// AppendFrame appends the encoding of f to dst and returns the extended
// buffer. A nil frame is written as Null.
func AppendFrame(dst []byte, f Frame) []byte {
	if f == nil {
		return Null{}.appendTo(dst)
	}
	return f.appendTo(dst)
}

func appendLine(dst []byte, prefix Type, s string) []byte {
	dst = append(dst, byte(prefix))
	dst = append(dst, s...)
	return append(dst, crlf...)
}

// appendText writes a line frame whose payload may not hold CR or LF,
// any that slipped in are written as spaces so the stream stays framed
func appendText(dst []byte, prefix Type, s string) []byte {
	dst = append(dst, byte(prefix))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\r' || c == '\n' {
			c = ' '
		}
		dst = append(dst, c)
	}
	return append(dst, crlf...)
}

func appendHeader(dst []byte, prefix Type, n int) []byte {
	dst = append(dst, byte(prefix))
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, crlf...)
}

func (s SimpleString) appendTo(dst []byte) []byte {
	return appendText(dst, TypeSimpleString, string(s))
}

func (e SimpleError) appendTo(dst []byte) []byte {
	return appendText(dst, TypeSimpleError, string(e))
}

// :+42\r\n, :-7\r\n
func (i Integer) appendTo(dst []byte) []byte {
	dst = append(dst, byte(TypeInteger))
	if i >= 0 {
		dst = append(dst, '+')
	}
	dst = strconv.AppendInt(dst, int64(i), 10)
	return append(dst, crlf...)
}

func (b BulkString) appendTo(dst []byte) []byte {
	dst = appendHeader(dst, TypeBulkString, len(b))
	dst = append(dst, b...)
	return append(dst, crlf...)
}

func (NullBulkString) appendTo(dst []byte) []byte {
	return append(dst, "$-1\r\n"...)
}

func (a Array) appendTo(dst []byte) []byte {
	dst = appendHeader(dst, TypeArray, len(a))
	for _, f := range a {
		dst = AppendFrame(dst, f)
	}
	return dst
}

func (Null) appendTo(dst []byte) []byte {
	return append(dst, "_\r\n"...)
}

func (NullArray) appendTo(dst []byte) []byte {
	return append(dst, "*-1\r\n"...)
}

func (b Boolean) appendTo(dst []byte) []byte {
	if b {
		return append(dst, "#t\r\n"...)
	}
	return append(dst, "#f\r\n"...)
}

// Magnitudes above 1e8 or below 1e-8 are written in scientific notation,
// everything else in fixed point. Both carry an explicit sign.
func (d Double) appendTo(dst []byte) []byte {
	v := float64(d)
	dst = append(dst, byte(TypeDouble))
	switch {
	case math.IsNaN(v):
		return append(dst, "nan\r\n"...)
	case math.IsInf(v, 1):
		return append(dst, "inf\r\n"...)
	case math.IsInf(v, -1):
		return append(dst, "-inf\r\n"...)
	}

	if math.Signbit(v) {
		dst = append(dst, '-')
	} else {
		dst = append(dst, '+')
	}
	abs := math.Abs(v)
	if abs != 0 && (abs > 1e8 || abs < 1e-8) {
		dst = appendScientific(dst, abs)
	} else {
		dst = strconv.AppendFloat(dst, abs, 'f', -1, 64)
	}
	return append(dst, crlf...)
}

// appendScientific writes 1.23456e8 rather than go's 1.23456e+08
func appendScientific(dst []byte, abs float64) []byte {
	var scratch [32]byte
	s := strconv.AppendFloat(scratch[:0], abs, 'e', -1, 64)
	i := 0
	for s[i] != 'e' {
		i++
	}
	dst = append(dst, s[:i+1]...)
	exp := s[i+1:]
	if exp[0] == '-' {
		dst = append(dst, '-')
	}
	exp = exp[1:]
	for len(exp) > 1 && exp[0] == '0' {
		exp = exp[1:]
	}
	return append(dst, exp...)
}

// %2\r\n+foo\r\n,-1.23456789\r\n+hello\r\n$5\r\nworld\r\n
func (m *Map) appendTo(dst []byte) []byte {
	dst = appendHeader(dst, TypeMap, m.Len())
	m.Range(func(key string, value Frame) bool {
		dst = appendText(dst, TypeSimpleString, key)
		dst = AppendFrame(dst, value)
		return true
	})
	return dst
}

func (s Set) appendTo(dst []byte) []byte {
	dst = appendHeader(dst, TypeSet, len(s))
	for _, f := range s {
		dst = AppendFrame(dst, f)
	}
	return dst
}
