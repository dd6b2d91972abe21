package fsst

// table is the perfect-hash symbol table: the learned codebook plus the
// three lookup structures (byteCodes, shortCodes, hashTab) that let
// encodeFor and findLongestSymbolCode resolve any prefix of the input in
// constant time.
//
// Before finalize, learned symbols occupy codes [fsstCodeBase,
// fsstCodeBase+nSymbols). Codes 0..255 mirror the raw bytes (used as the
// escape fallback and by the training loop). After finalize, learned
// codes are renumbered into [0, nSymbols), grouped by ascending length,
// and the mirror codes are gone: only table.symbols[0:nSymbols] and the
// three lookup arrays are meaningful.
type table struct {
	byteCodes  [fsstCodeBase]uint16    // first byte -> [length<<12 | code]
	shortCodes [65536]uint16          // first two bytes -> [length<<12 | code]
	hashTab    [fsstHashTabSize]symbol // 3-8 byte symbols, keyed by hash(value&0xFFFFFF)
	symbols    [fsstCodeMax]symbol     // code -> symbol
	lenHisto   [8]uint16               // count of symbols at length i+1
	nSymbols   uint16                  // number of learned symbols (0..255)
	finalized  bool
}

// newTable builds an empty table: every byte mirrors itself as a
// length-1 pseudo-symbol (the escape fallback), and the hash table is
// empty.
func newTable() *table {
	t := &table{}
	for i := range fsstCodeBase {
		t.symbols[i] = newSymbolFromByte(byte(i), uint16(i))
		t.byteCodes[i] = packCodeLength(uint16(i), 1)
	}
	for i := fsstCodeBase; i < fsstCodeMax; i++ {
		t.symbols[i] = symbol{icl: fsstICLFree}
	}
	for i := range t.shortCodes {
		t.shortCodes[i] = packCodeLength(uint16(i&fsstMask8), 1)
	}
	for i := range t.hashTab {
		t.hashTab[i] = symbol{icl: fsstICLFree}
	}
	return t
}

// len reports the number of learned symbols (0..255).
func (t *table) len() int { return int(t.nSymbols) }

// getSymbol returns the symbol stored under code.
func (t *table) getSymbol(code uint16) symbol { return t.symbols[code] }

// add assigns s the next free learned code and installs it into the
// lookup structure appropriate for its length. It fails (returns false,
// leaving the table unchanged) if the table is already at capacity or,
// for length >= 3, the symbol's hash slot is already taken. This
// implementation never probes past a collision.
func (t *table) add(s symbol) bool {
	if int(t.nSymbols) >= fsstMaxSymbols {
		return false
	}
	length := s.length()
	code := uint32(fsstCodeBase) + uint32(t.nSymbols)
	s.setCodeLen(code, length)

	switch {
	case length == 1:
		t.byteCodes[s.first()] = packCodeLength(uint16(code), 1)
	case length == 2:
		t.shortCodes[s.first2()] = packCodeLength(uint16(code), 2)
	default:
		idx := s.hash() & (fsstHashTabSize - 1)
		if t.hashTab[idx].taken() {
			return false
		}
		t.hashTab[idx] = s
	}

	t.symbols[code] = s
	t.nSymbols++
	t.lenHisto[length-1]++
	return true
}

// findLongestSymbolCode returns the code of the longest learned symbol
// matching a prefix of b, falling back to a single-byte (possibly
// escape) code if nothing longer matches. Used by the training loop to
// segment a sample into symbols.
func (t *table) findLongestSymbolCode(b []byte) uint16 {
	probe := newSymbolFromBytes(b)
	hashEntry := t.hashTab[probe.hash()&(fsstHashTabSize-1)]
	if probe.prefixMatch(hashEntry) {
		return hashEntry.code()
	}
	if len(b) >= 2 {
		if code := t.shortCodes[probe.first2()] & fsstCodeMask; code >= fsstCodeBase {
			return code
		}
	}
	return t.byteCodes[probe.first()] & fsstCodeMask
}

// encodeFor is the hot encode-path lookup: given a probe symbol built
// from the next up-to-8 bytes of input, it returns (code, consumedIn,
// emittedOut): the code byte to emit, how many input bytes it
// represents, and how many output bytes were written (1, or 2 for an
// escape).
func (t *table) encodeFor(probe symbol) (code uint8, consumedIn int, emittedOut int) {
	hashEntry := t.hashTab[probe.hash()&(fsstHashTabSize-1)]
	if probe.prefixMatch(hashEntry) {
		return uint8(hashEntry.code()), int(hashEntry.length()), 1
	}
	packed := t.shortCodes[probe.first2()]
	consumedIn = int(packed >> fsstLenBits)
	emittedOut = 1 + int((packed&fsstCodeBase)>>8)
	return uint8(packed), consumedIn, emittedOut
}

// clear un-installs every learned symbol, restoring byteCodes,
// shortCodes, and hashTab to their default (escape-only) state.
func (t *table) clear() {
	for i := fsstCodeBase; i < fsstCodeBase+int(t.nSymbols); i++ {
		s := t.symbols[i]
		switch s.length() {
		case 1:
			t.byteCodes[s.first()] = packCodeLength(uint16(s.first()), 1)
		case 2:
			t.shortCodes[s.first2()] = packCodeLength(uint16(s.first2()&fsstMask8), 1)
		default:
			t.hashTab[s.hash()&(fsstHashTabSize-1)] = symbol{icl: fsstICLFree}
		}
	}
	t.lenHisto = [8]uint16{}
	t.nSymbols = 0
}

// finalize renumbers learned codes so that symbols of length 1 come
// first, then length 2, and so on through length 8, moving codes from
// the construction range [fsstCodeBase, fsstCodeBase+nSymbols) down into
// [0, nSymbols). Every lookup structure is rewritten to the new codes.
func (t *table) finalize() {
	var codeStart [8]uint16
	for i := range 7 {
		codeStart[i+1] = codeStart[i] + t.lenHisto[i]
	}

	newCode := make([]uint16, t.nSymbols)
	for i := range int(t.nSymbols) {
		s := t.symbols[fsstCodeBase+i]
		length := s.length()
		idx := length - 1
		newCode[i] = codeStart[idx]
		codeStart[idx]++
		s.setCodeLen(uint32(newCode[i]), length)
		t.symbols[newCode[i]] = s
	}

	for i := range t.byteCodes {
		if code := t.byteCodes[i] & fsstCodeMask; code >= fsstCodeBase {
			t.byteCodes[i] = newCode[code-fsstCodeBase] | (1 << fsstLenBits)
		} else {
			t.byteCodes[i] = fsstCodeMask | (1 << fsstLenBits)
		}
	}

	for i := range t.shortCodes {
		if code := t.shortCodes[i] & fsstCodeMask; code >= fsstCodeBase {
			lenNibble := t.shortCodes[i] &^ fsstCodeMask
			t.shortCodes[i] = newCode[code-fsstCodeBase] | lenNibble
		} else {
			t.shortCodes[i] = t.byteCodes[i&fsstMask8]
		}
	}

	for i := range t.hashTab {
		if t.hashTab[i].taken() {
			code := t.hashTab[i].code()
			t.hashTab[i] = t.symbols[newCode[code-fsstCodeBase]]
		}
	}

	t.finalized = true
}

// dump serializes the finalized table to its wire format: one endian tag
// byte, the 8-byte length histogram, then each learned symbol's bytes
// (in ascending length order) written in `length` bytes, in the
// machine's native endian.
func (t *table) dump() []byte {
	total := 9
	for i, count := range t.lenHisto {
		total += (i + 1) * int(count)
	}
	buf := make([]byte, 9, total)
	buf[0] = nativeEndianTag()
	for i, count := range t.lenHisto {
		buf[1+i] = byte(count)
	}
	for i := range int(t.nSymbols) {
		s := t.symbols[i]
		v := s.val
		for range int(s.length()) {
			buf = append(buf, byte(v))
			v >>= 8
		}
	}
	return buf
}
