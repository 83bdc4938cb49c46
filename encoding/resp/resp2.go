package resp

import (
	"strconv"
)

// EncodeResp2 serializes f for a client that has not switched to RESP3.
func EncodeResp2(f Frame) []byte {
	return AppendFrameResp2(make([]byte, 0, 64), f)
}

// AppendFrameResp2 appends f in the RESP2 dialect. Types RESP2 lacks are
// downgraded the way redis does it:
//
//	Integer  :42 without the explicit sign
//	Null     $-1
//	Boolean  :1 or :0
//	Double   bulk string of the decimal text
//	Set      array
//	Map      flat array of key, value pairs
func AppendFrameResp2(dst []byte, f Frame) []byte {
	switch v := f.(type) {
	case nil, Null:
		return NullBulkString{}.appendTo(dst)
	case Integer:
		return appendLine(dst, TypeInteger, strconv.FormatInt(int64(v), 10))
	case Boolean:
		if v {
			return append(dst, ":1\r\n"...)
		}
		return append(dst, ":0\r\n"...)
	case Double:
		return BulkString(doubleText(v)).appendTo(dst)
	case Array:
		return appendSequenceResp2(dst, v)
	case Set:
		return appendSequenceResp2(dst, v)
	case *Map:
		dst = appendHeader(dst, TypeArray, v.Len()*2)
		v.Range(func(key string, value Frame) bool {
			dst = BulkString(key).appendTo(dst)
			dst = AppendFrameResp2(dst, value)
			return true
		})
		return dst
	default:
		return f.appendTo(dst)
	}
}

func appendSequenceResp2(dst []byte, frames []Frame) []byte {
	dst = appendHeader(dst, TypeArray, len(frames))
	for _, f := range frames {
		dst = AppendFrameResp2(dst, f)
	}
	return dst
}

// doubleText is the RESP3 double body without the prefix, the plus sign and CRLF
func doubleText(d Double) []byte {
	var scratch [40]byte
	b := d.appendTo(scratch[:0])
	b = b[1 : len(b)-2]
	if b[0] == '+' {
		b = b[1:]
	}
	return append([]byte(nil), b...)
}
