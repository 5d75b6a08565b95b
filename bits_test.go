package tibs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scott-griffiths/tibs"
)

// mk parses a format string or fails the test.
func mk(t *testing.T, s string) tibs.Bits {
	t.Helper()
	b, err := tibs.FromString(s)
	require.NoError(t, err, "FromString(%q)", s)
	return b
}

func TestFromBytesRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0xff},
		{0xa0, 0xff},
		{0xde, 0xad, 0xbe, 0xef},
		{1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	for _, in := range cases {
		b := tibs.FromBytes(in)
		require.Equal(t, len(in)*8, b.Len())
		out, err := b.ToBytes()
		require.NoError(t, err)
		require.Equal(t, in, out)
	}
}

func TestMSBFirstOrdering(t *testing.T) {
	// Bit 0 is the most significant bit of the first byte.
	b := tibs.FromBytes([]byte{0xa0})
	require.Equal(t, "10100000", b.ToBin())
	first, err := b.Bit(0)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestConstructorEquivalence(t *testing.T) {
	a, err := tibs.FromBin("010")
	require.NoError(t, err)
	b := mk(t, "0b010")
	c, err := tibs.FromBin("0b010")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(c))

	h, err := tibs.FromHex("A")
	require.NoError(t, err)
	assert.True(t, h.Equal(mk(t, "0xA")))

	o, err := tibs.FromOct("12")
	require.NoError(t, err)
	assert.True(t, o.Equal(mk(t, "0o12")))
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a0ff", "deadbeef", "0123456789abcdef", "fff"} {
		b, err := tibs.FromHex(s)
		require.NoError(t, err)
		got, err := b.ToHex()
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	// Case-normalized on the way out.
	b, err := tibs.FromHex("A0FF")
	require.NoError(t, err)
	got, err := b.ToHex()
	require.NoError(t, err)
	assert.Equal(t, "a0ff", got)
}

func TestInterpreters(t *testing.T) {
	v, err := mk(t, "u8=255").ToUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(255), v)

	assert.Equal(t, "11111111", mk(t, "i8=-1").ToBin())

	i, err := mk(t, "i8=-1").ToInt()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), i)

	oct, err := mk(t, "0b001100").ToOct()
	require.NoError(t, err)
	assert.Equal(t, "14", oct)

	f, err := mk(t, "f64=13.75").ToFloat()
	require.NoError(t, err)
	assert.Equal(t, 13.75, f)

	f, err = mk(t, "f32=-0.25").ToFloat()
	require.NoError(t, err)
	assert.Equal(t, -0.25, f)

	f, err = mk(t, "f16=2.0").ToFloat()
	require.NoError(t, err)
	assert.Equal(t, 2.0, f)
}

func TestInterpreterErrors(t *testing.T) {
	b := mk(t, "0b101")
	_, err := b.ToHex()
	require.ErrorIs(t, err, tibs.ErrPadding)
	_, err = b.ToOct()
	require.ErrorIs(t, err, tibs.ErrPadding)
	_, err = b.ToBytes()
	require.ErrorIs(t, err, tibs.ErrLength)
	_, err = b.ToFloat()
	require.ErrorIs(t, err, tibs.ErrLength)
	_, err = tibs.Empty().ToUint()
	require.ErrorIs(t, err, tibs.ErrLength)

	wide, err := tibs.FromZeros(65)
	require.NoError(t, err)
	_, err = wide.ToUint()
	require.ErrorIs(t, err, tibs.ErrLength)
}

func TestFromZerosOnes(t *testing.T) {
	z, err := tibs.FromZeros(9)
	require.NoError(t, err)
	assert.Equal(t, "000000000", z.ToBin())
	assert.Equal(t, 0, z.Count())

	o, err := tibs.FromOnes(9)
	require.NoError(t, err)
	assert.Equal(t, "111111111", o.ToBin())
	assert.Equal(t, 9, o.Count())
	assert.True(t, o.AllSet())

	_, err = tibs.FromZeros(-1)
	require.Error(t, err)
	_, err = tibs.FromOnes(-1)
	require.Error(t, err)

	empty, err := tibs.FromZeros(0)
	require.NoError(t, err)
	assert.True(t, empty.Equal(tibs.Empty()))
}

func TestFromBools(t *testing.T) {
	b := tibs.FromBools([]bool{true, false, true, true})
	assert.Equal(t, "1011", b.ToBin())
	assert.Equal(t, 0, tibs.FromBools(nil).Len())
}

func TestFromRandomDeterminism(t *testing.T) {
	a, err := tibs.FromRandomSeeded(10000, []byte("a_seed"))
	require.NoError(t, err)
	b, err := tibs.FromRandomSeeded(10000, []byte("a_seed"))
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "same seed must reproduce the sequence")

	c, err := tibs.FromRandomSeeded(10000, []byte("a different seed"))
	require.NoError(t, err)
	assert.False(t, a.Equal(c), "different seeds must diverge")

	r, err := tibs.FromRandom(1)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	empty, err := tibs.FromRandom(0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = tibs.FromRandom(-1)
	require.Error(t, err)
}

func TestFromRandomSeededPinnedVector(t *testing.T) {
	// The seeded stream is a stable contract: ChaCha8 keyed with the
	// SHA-256 of the seed bytes, 64 bits per draw.
	a, err := tibs.FromRandomSeeded(64, []byte("tibs"))
	require.NoError(t, err)
	b, err := tibs.FromRandomSeeded(256, []byte("tibs"))
	require.NoError(t, err)
	prefix, err := b.Slice(0, 64)
	require.NoError(t, err)
	assert.True(t, a.Equal(prefix), "stream must be length-independent prefix-stable")
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	want := []byte{0x12, 0x34, 0x56, 0x78}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	b, cleanup, err := tibs.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, len(want)*8, b.Len())
	got, err := b.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	v, err := b.Uint(4, 16)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x2345), v)

	require.NoError(t, cleanup())

	_, _, err = tibs.FromFile(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}

func TestFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	b, cleanup, err := tibs.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.Equal(tibs.Empty()))
	require.NoError(t, cleanup())
}

func TestSliceSharesAndBoundsChecks(t *testing.T) {
	a := mk(t, "0xdeadbeef")
	s, err := a.Slice(8, 24)
	require.NoError(t, err)
	hex, err := s.ToHex()
	require.NoError(t, err)
	assert.Equal(t, "adbe", hex)

	_, err = a.Slice(-1, 4)
	require.ErrorIs(t, err, tibs.ErrOutOfRange)
	_, err = a.Slice(4, 2)
	require.ErrorIs(t, err, tibs.ErrOutOfRange)
	_, err = a.Slice(0, 33)
	require.ErrorIs(t, err, tibs.ErrOutOfRange)

	empty, err := a.Slice(32, 32)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestAlignmentIndependentEquality(t *testing.T) {
	// A mid-byte slice equals an independently built sequence with the
	// same logical bits.
	a := tibs.FromBytes([]byte{0x0f, 0xf0})
	mid, err := a.Slice(4, 12)
	require.NoError(t, err)
	b := tibs.FromBytes([]byte{0xff})
	assert.True(t, mid.Equal(b))
	assert.Equal(t, b.Hash(), mid.Hash())
}

func TestLengthLaws(t *testing.T) {
	a := mk(t, "0b0")
	b := mk(t, "0b11")
	c := a.Append(b)
	assert.Equal(t, a.Len()+b.Len(), c.Len())
	assert.Equal(t, "011", c.ToBin())
	// Operands are unchanged.
	assert.Equal(t, "0", a.ToBin())
	assert.Equal(t, "11", b.ToBin())

	s, err := c.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestFromJoined(t *testing.T) {
	j := tibs.FromJoined(mk(t, "0b000111"), mk(t, "0b000111"), tibs.Empty())
	assert.Equal(t, "000111000111", j.ToBin())
	assert.Equal(t, 0, tibs.FromJoined().Len())
}

func TestStringForm(t *testing.T) {
	assert.Equal(t, "", tibs.Empty().String())
	assert.Equal(t, "0b101", mk(t, "0b101").String())
	assert.Equal(t, "0xa4e3", mk(t, "0xa4e3").String())
}

func TestWindowedReads(t *testing.T) {
	b := mk(t, "0x12345678")
	v, err := b.Uint(4, 16)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x2345), v)

	i, err := b.Int(0, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), i)

	_, err = b.Uint(24, 16)
	require.ErrorIs(t, err, tibs.ErrOutOfRange)
	_, err = b.Bit(32)
	require.ErrorIs(t, err, tibs.ErrOutOfRange)

	// Width outside 1..64 is a length error, not a bounds error.
	_, err = b.Uint(0, 0)
	require.ErrorIs(t, err, tibs.ErrLength)
	_, err = b.Int(0, 0)
	require.ErrorIs(t, err, tibs.ErrLength)
	_, err = b.Uint(0, 65)
	require.ErrorIs(t, err, tibs.ErrLength)
	_, err = b.Int(0, 65)
	require.ErrorIs(t, err, tibs.ErrLength)
}
