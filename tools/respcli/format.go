package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/distributedio/respd/encoding/resp"
)

// Format renders a frame the way redis-cli prints replies
func Format(f resp.Frame) string {
	var b strings.Builder
	format(&b, f, "")
	return strings.TrimSuffix(b.String(), "\n")
}

func format(b *strings.Builder, f resp.Frame, indent string) {
	switch v := f.(type) {
	case resp.SimpleString:
		b.WriteString(string(v))
	case resp.SimpleError:
		b.WriteString("(error) " + string(v))
	case resp.Integer:
		b.WriteString("(integer) " + strconv.FormatInt(int64(v), 10))
	case resp.BulkString:
		b.WriteString(strconv.Quote(string(v)))
	case resp.Boolean:
		if v {
			b.WriteString("(true)")
		} else {
			b.WriteString("(false)")
		}
	case resp.Double:
		b.WriteString("(double) " + strconv.FormatFloat(float64(v), 'g', -1, 64))
	case resp.NullBulkString, resp.NullArray, resp.Null:
		b.WriteString("(nil)")
	case resp.Array:
		formatList(b, []resp.Frame(v), indent, "(empty array)")
		return
	case resp.Set:
		formatList(b, []resp.Frame(v), indent, "(empty set)")
		return
	case *resp.Map:
		if v.Len() == 0 {
			b.WriteString("(empty hash)\n")
			return
		}
		i := 0
		width := len(strconv.Itoa(v.Len()))
		v.Range(func(k string, val resp.Frame) bool {
			i++
			if i > 1 {
				b.WriteString(indent)
			}
			prefix := fmt.Sprintf("%*d# ", width, i)
			b.WriteString(prefix + strconv.Quote(k) + " => ")
			format(b, val, indent+strings.Repeat(" ", len(prefix)))
			return true
		})
		return
	default:
		b.WriteString(fmt.Sprintf("(unknown %T)", f))
	}
	b.WriteString("\n")
}

func formatList(b *strings.Builder, items []resp.Frame, indent string, empty string) {
	if len(items) == 0 {
		b.WriteString(empty + "\n")
		return
	}
	width := len(strconv.Itoa(len(items)))
	for i, item := range items {
		if i > 0 {
			b.WriteString(indent)
		}
		prefix := fmt.Sprintf("%*d) ", width, i+1)
		b.WriteString(prefix)
		format(b, item, indent+strings.Repeat(" ", len(prefix)))
	}
}
