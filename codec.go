package fsst

import (
	"encoding/binary"
	"errors"
)

// ErrTruncatedTable is returned by newDecoderFromTableBytes when buf ends
// before a complete length histogram, or before all the symbol bytes it
// promises.
var ErrTruncatedTable = errors.New("fsst: truncated table")

// ErrBadEndianTag is returned by newDecoderFromTableBytes when the
// leading tag byte is neither endianLittle nor endianBig.
var ErrBadEndianTag = errors.New("fsst: unrecognized endian tag")

// ErrTruncatedStream is returned by decodeWithTable when a trailing
// escape byte has no literal following it.
var ErrTruncatedStream = errors.New("fsst: truncated encoded stream")

// encoder holds a finalized table's lookup structures, ready to turn
// strings into code streams. Read-only once constructed.
type encoder struct {
	t *table
}

// newEncoder builds an encoder over a finalized table.
func newEncoder(t *table) *encoder { return &encoder{t: t} }

// encodeString probes up to 8 bytes at a time and writes either a
// single learned code byte or an escape pair (fsstEscapeCode,
// literalByte). Pre-writing the literal byte before the lookup means
// the escape path never needs a second write.
func (e *encoder) encodeString(in []byte) []byte {
	out := make([]byte, 2*len(in))
	posIn, posOut := 0, 0
	for posIn < len(in) {
		probe := newSymbolFromBytes(in[posIn:])
		out[posOut+1] = probe.first()
		code, consumedIn, emittedOut := e.t.encodeFor(probe)
		out[posOut] = code
		posOut += emittedOut
		posIn += consumedIn
	}
	return out[:posOut]
}

// encode is encodeString with an optional leading table dump.
func (e *encoder) encode(in []byte, includeTable bool) []byte {
	body := e.encodeString(in)
	if !includeTable {
		return body
	}
	dump := e.t.dump()
	out := make([]byte, 0, len(dump)+len(body))
	out = append(out, dump...)
	out = append(out, body...)
	return out
}

// decoder holds the dense parallel arrays the fast decode path needs:
// each learned code's full symbol value (as a little-endian u64) and
// its byte length, independent of the table that produced them.
type decoder struct {
	symbols [fsstMaxSymbols]uint64
	lens    [fsstMaxSymbols]uint8
}

// newDecoderFromTable copies a finalized table's learned symbols, in
// code order, into the decoder's dense arrays.
func newDecoderFromTable(t *table) *decoder {
	d := &decoder{}
	for i := 0; i < t.len(); i++ {
		s := t.getSymbol(uint16(i))
		d.symbols[i] = s.val
		d.lens[i] = uint8(s.length())
	}
	return d
}

// newDecoderFromTableBytes reads a serialized table (the dump() format)
// from the front of buf and returns the decoder it describes plus the
// number of bytes consumed, so the caller can decode whatever follows
// in a combined buffer.
func newDecoderFromTableBytes(buf []byte) (consumed int, d *decoder, err error) {
	if len(buf) < 9 {
		return 0, nil, ErrTruncatedTable
	}
	tag := buf[0]
	if tag != endianLittle && tag != endianBig {
		return 0, nil, ErrBadEndianTag
	}
	foreign := tag != nativeEndianTag()

	d = &decoder{}
	pos, code := 9, 0
	for length := 1; length <= 8; length++ {
		count := int(buf[length])
		for i := 0; i < count; i++ {
			if pos+length > len(buf) {
				return 0, nil, ErrTruncatedTable
			}
			var num uint64
			if foreign {
				num = uint64(buf[pos])
				for k := 1; k < length; k++ {
					num <<= 8
					num |= uint64(buf[pos+k])
				}
			} else {
				num = uint64(buf[pos+length-1])
				for k := length - 2; k >= 0; k-- {
					num <<= 8
					num |= uint64(buf[pos+k])
				}
			}
			d.symbols[code] = num
			d.lens[code] = uint8(length)
			code++
			pos += length
		}
	}
	return pos, d, nil
}

// storeCode writes the full 8-byte symbol word for codes[*posIn] into
// out[*posOut:] and advances both cursors: *posIn by one code byte,
// *posOut by that symbol's length. The 8-byte overwrite deliberately
// spills past the symbol's own bytes into the next code's eventual
// slot; the caller's buffer sizing and loop bounds make that safe.
func (d *decoder) storeCode(codes []byte, posIn, posOut *int, out []byte) {
	code := codes[*posIn]
	binary.LittleEndian.PutUint64(out[*posOut:], d.symbols[code])
	*posIn++
	*posOut += int(d.lens[code])
}

// decode is the word-parallel fast path: four codes at a time are
// screened for an embedded 0xFF escape sentinel via an SWAR mask before
// being stored; the tail runs the same per-code logic one byte at a
// time. It does not validate the stream: callers must ensure codes
// came from this table's encoder.
func (d *decoder) decode(codes []byte) []byte {
	out := make([]byte, len(codes)*8+8)
	posIn, posOut := 0, 0

	for posIn+4 < len(codes) {
		w := binary.LittleEndian.Uint32(codes[posIn : posIn+4])
		escapeMask := (w & 0x80808080) & (((^w & 0x7F7F7F7F) + 0x7F7F7F7F) ^ 0x80808080)
		if escapeMask == 0 {
			d.storeCode(codes, &posIn, &posOut, out)
			d.storeCode(codes, &posIn, &posOut, out)
			d.storeCode(codes, &posIn, &posOut, out)
			d.storeCode(codes, &posIn, &posOut, out)
			continue
		}
		e := trailingZeroBits32(escapeMask) >> 3
		for ; e > 0; e-- {
			d.storeCode(codes, &posIn, &posOut, out)
		}
		out[posOut] = codes[posIn+1]
		posIn += 2
		posOut++
	}

	for posIn < len(codes) {
		if codes[posIn] == fsstEscapeCode {
			out[posOut] = codes[posIn+1]
			posIn += 2
			posOut++
		} else {
			d.storeCode(codes, &posIn, &posOut, out)
		}
	}

	return out[:posOut]
}

// trailingZeroBits32 counts trailing zero bits in a nonzero 32-bit word.
func trailingZeroBits32(w uint32) int {
	n := 0
	for w&1 == 0 {
		n++
		w >>= 1
	}
	return n
}

// decodeWithTable is the safe, byte-at-a-time fallback: it looks up
// each code directly in t rather than the decoder's dense arrays, and
// is used to validate the fast path's output. Unlike decode, it
// validates the stream: a trailing escape byte with no literal
// following it is reported as ErrTruncatedStream rather than panicking.
func decodeWithTable(t *table, codes []byte) ([]byte, error) {
	out := make([]byte, 0, len(codes)*4)
	pos := 0
	for pos < len(codes) {
		b := codes[pos]
		pos++
		if b == fsstEscapeCode {
			if pos >= len(codes) {
				return nil, ErrTruncatedStream
			}
			out = append(out, codes[pos])
			pos++
			continue
		}
		s := t.getSymbol(uint16(b))
		for i := 0; i < int(s.length()); i++ {
			out = append(out, byte(s.val>>(8*i)))
		}
	}
	return out, nil
}
