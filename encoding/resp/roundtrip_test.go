package resp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var doubles = []float64{
	0, 1, -1, 0.5, 1.234567, -1.23456789, 1.23456e8, -1.23456e-9,
	1e8, -1e8, 1e-8, -1e-8,
	math.Nextafter(1e8, math.Inf(1)), math.Nextafter(1e8, 0),
	math.Nextafter(1e-8, 0), math.Nextafter(1e-8, 1),
	math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1), math.Inf(-1),
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 _-:"

func randText(r *rand.Rand) string {
	b := make([]byte, r.Intn(12))
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}

func randBytes(r *rand.Rand) []byte {
	b := make([]byte, r.Intn(40))
	for i := range b {
		b[i] = byte(r.Intn(256))
	}
	if len(b) > 2 && r.Intn(2) == 0 {
		b[len(b)/2], b[len(b)/2+1] = '\r', '\n'
	}
	return b
}

func randFrame(r *rand.Rand, depth int) Frame {
	kinds := 12
	if depth >= 3 {
		kinds = 9 // leaves only
	}
	switch r.Intn(kinds) {
	case 0:
		return SimpleString(randText(r))
	case 1:
		return SimpleError(randText(r))
	case 2:
		return Integer(int64(r.Uint64()))
	case 3:
		return BulkString(randBytes(r))
	case 4:
		return NullBulkString{}
	case 5:
		return Null{}
	case 6:
		return NullArray{}
	case 7:
		return Boolean(r.Intn(2) == 0)
	case 8:
		if r.Intn(2) == 0 {
			return Double(doubles[r.Intn(len(doubles))])
		}
		return Double((r.Float64() - 0.5) * math.Pow(10, float64(r.Intn(40)-20)))
	case 9:
		a := make(Array, r.Intn(5))
		for i := range a {
			a[i] = randFrame(r, depth+1)
		}
		return a
	case 10:
		s := make(Set, r.Intn(5))
		for i := range s {
			s[i] = randFrame(r, depth+1)
		}
		return s
	default:
		m := NewMap()
		for i := r.Intn(5); i > 0; i-- {
			m.Set(randText(r), randFrame(r, depth+1))
		}
		return m
	}
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(20240601))
	for i := 0; i < 2000; i++ {
		f := randFrame(r, 0)
		enc := Encode(f)

		n, err := ExpectLength(enc)
		require.NoError(t, err, "%q", enc)
		require.Equal(t, len(enc), n)

		got, n, err := Decode(enc)
		require.NoError(t, err, "%q", enc)
		require.Equal(t, len(enc), n)
		require.True(t, Equal(f, got), "expect %#v, got %#v", f, got)
		require.Equal(t, enc, Encode(got))
	}
}

func TestRoundTripDoubles(t *testing.T) {
	for _, v := range doubles {
		got, _, err := Decode(Encode(Double(v)))
		require.NoError(t, err)
		assert.Equal(t, v, float64(got.(Double)), "%q", Encode(Double(v)))
	}
}

// feed a stream of frames in random fragments, every frame must come out
// exactly once and failed attempts must leave the buffer untouched
func TestRoundTripFragmented(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	var frames []Frame
	var stream []byte
	for i := 0; i < 200; i++ {
		f := randFrame(r, 0)
		frames = append(frames, f)
		stream = AppendFrame(stream, f)
	}

	b := NewBuffer(16)
	var got []Frame
	for len(stream) > 0 {
		n := 1 + r.Intn(32)
		if n > len(stream) {
			n = len(stream)
		}
		b.Write(stream[:n])
		stream = stream[n:]
		for {
			before := string(b.Bytes())
			f, err := b.Decode()
			if err != nil {
				require.Equal(t, ErrNotComplete, err)
				require.Equal(t, before, string(b.Bytes()))
				break
			}
			got = append(got, f)
		}
	}
	require.Equal(t, 0, b.Len())
	require.Equal(t, len(frames), len(got))
	for i := range frames {
		assert.True(t, Equal(frames[i], got[i]), "frame %d", i)
	}
}
