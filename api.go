package fsst

const (
	sampleTarget = 1 << 14 // bytes of sample material to gather before training
	sampleMaxSz  = 2 * sampleTarget
	sampleLine   = 512 // slice size drawn from any one input during sampling
	sampleSeed   = 4637947
)

// SymbolTable is the public handle to a learned, finalized symbol
// table. It is read-only once returned by BuildTableBySampling or
// EncodeString, and safe to share across goroutines that only read it.
type SymbolTable struct {
	t *table
}

// Dump serializes the table to its wire format: an endian tag, a
// length histogram, then
// each learned symbol's bytes grouped by ascending length.
func (st *SymbolTable) Dump() []byte { return st.t.dump() }

// Len reports the number of learned symbols (0..255).
func (st *SymbolTable) Len() int { return st.t.len() }

// takeSample assembles a deterministic pseudo-random sample composed of
// up-to-sampleLine-byte slices drawn from inputs, bounding the amount
// of material the builder has to scan on large corpora. Inputs whose
// total size already falls under the target are used verbatim.
func takeSample(inputs [][]byte) [][]byte {
	var total int
	for _, in := range inputs {
		total += len(in)
	}
	if total < sampleTarget || len(inputs) == 0 {
		return inputs
	}

	buf := make([]byte, sampleMaxSz)
	sample := make([][]byte, 0, len(inputs))
	pos := 0
	rng := fsstHash(sampleSeed)

	for pos < sampleMaxSz {
		rng = fsstHash(rng)
		idx := int(rng % uint64(len(inputs)))
		for len(inputs[idx]) == 0 {
			idx = (idx + 1) % len(inputs)
		}

		numChunks := (len(inputs[idx]) + sampleLine - 1) / sampleLine
		rng = fsstHash(rng)
		off := sampleLine * int(rng%uint64(numChunks))

		n := min(len(inputs[idx])-off, sampleLine)
		if pos+n > sampleMaxSz {
			break
		}
		copy(buf[pos:pos+n], inputs[idx][off:off+n])
		sample = append(sample, buf[pos:pos+n:pos+n])
		pos += n

		if pos >= sampleTarget {
			break
		}
	}
	return sample
}

// BuildTableBySampling learns a symbol table from a representative
// sample drawn from strings, without encoding anything. Useful when a
// table needs to be trained once and reused across many encode calls.
func BuildTableBySampling(strings [][]byte) *SymbolTable {
	return &SymbolTable{t: buildFromSamples(takeSample(strings))}
}

// EncodeAllStrings learns a table from strings, then encodes every one
// of them with it, returning the table alongside the per-string code
// streams in input order.
func EncodeAllStrings(strings [][]byte) (*SymbolTable, [][]byte) {
	st := BuildTableBySampling(strings)
	enc := newEncoder(st.t)
	out := make([][]byte, len(strings))
	for i, s := range strings {
		out[i] = enc.encodeString(s)
	}
	return st, out
}

// EncodeString trains a table from str alone and encodes str with it.
// When includeTable is true, the returned buffer begins with the
// table's serialized form (see SymbolTable.Dump), followed by the code
// stream; DecodeCombined splits the two back apart.
func EncodeString(str []byte, includeTable bool) (*SymbolTable, []byte) {
	t := buildFromSingleString(str)
	enc := newEncoder(t)
	return &SymbolTable{t: t}, enc.encode(str, includeTable)
}

// DecodeString decodes a single code stream produced against st.
func DecodeString(st *SymbolTable, encoded []byte) []byte {
	return newDecoderFromTable(st.t).decode(encoded)
}

// DecodeAllStrings decodes a batch of code streams produced against st,
// reusing one decoder across the whole batch.
func DecodeAllStrings(st *SymbolTable, encoded [][]byte) [][]byte {
	dec := newDecoderFromTable(st.t)
	out := make([][]byte, len(encoded))
	for i, e := range encoded {
		out[i] = dec.decode(e)
	}
	return out
}

// DecodeCombined splits a buffer produced by EncodeString(str, true):
// it reads the leading serialized table, then decodes everything after
// it as that table's code stream.
func DecodeCombined(buf []byte) ([]byte, error) {
	consumed, dec, err := newDecoderFromTableBytes(buf)
	if err != nil {
		return nil, err
	}
	return dec.decode(buf[consumed:]), nil
}
