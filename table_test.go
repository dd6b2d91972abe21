package fsst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableAddFind(t *testing.T) {
	tbl := newTable()
	require.True(t, tbl.add(newSymbolFromBytes([]byte{'x'})))
	require.True(t, tbl.add(newSymbolFromBytes([]byte{'a', 'b'})))
	require.True(t, tbl.add(newSymbolFromBytes([]byte{'a', 'b', 'c'})))

	code := tbl.findLongestSymbolCode([]byte("abcd"))
	got := tbl.getSymbol(code)
	require.GreaterOrEqual(t, got.length(), uint32(2))
}

func TestTableAddRejectsSecondSymbolInSameHashSlot(t *testing.T) {
	tbl := newTable()
	s1 := newSymbolFromBytes([]byte("abc"))
	require.True(t, tbl.add(s1))

	idx := s1.hash() & (fsstHashTabSize - 1)
	for b := 0; b < 256; b++ {
		cand := newSymbolFromBytes([]byte{byte(b), 'Q', 'R'})
		if cand.val == s1.val {
			continue
		}
		if cand.hash()&(fsstHashTabSize-1) == idx {
			require.False(t, tbl.add(cand))
			return
		}
	}
	t.Skip("no colliding candidate found in search budget")
}

func TestTableClear(t *testing.T) {
	tbl := newTable()
	tbl.add(newSymbolFromBytes([]byte{'a'}))
	tbl.add(newSymbolFromBytes([]byte{'b', 'c'}))
	tbl.add(newSymbolFromBytes([]byte{'d', 'e', 'f'}))
	require.Equal(t, 3, tbl.len())

	tbl.clear()
	require.Equal(t, 0, tbl.len())
	for _, c := range tbl.lenHisto {
		require.Zero(t, c)
	}
	require.Equal(t, tbl.byteCodes['a'], packCodeLength('a', 1))
}

func TestTableFinalizeOrdersByLength(t *testing.T) {
	tbl := newTable()
	tbl.add(newSymbolFromBytes([]byte("defg"))) // length 4
	tbl.add(newSymbolFromBytes([]byte("a")))    // length 1
	tbl.add(newSymbolFromBytes([]byte("bc")))   // length 2
	tbl.finalize()

	require.True(t, tbl.finalized)
	require.Equal(t, uint32(1), tbl.getSymbol(0).length())
	require.Equal(t, uint32(2), tbl.getSymbol(1).length())
	require.Equal(t, uint32(4), tbl.getSymbol(2).length())

	// An unknown 2-byte prefix must still resolve through byteCodes: it
	// takes its first byte's entry, which for 'Q' (no learned symbol)
	// carries the fsstCodeMask escape marker.
	sc := tbl.shortCodes[int('Z')<<8|int('Q')]
	require.Equal(t, tbl.byteCodes['Q'], sc)
	require.Equal(t, uint16(fsstCodeMask), sc&fsstCodeMask)
}

func TestTableDumpLayout(t *testing.T) {
	tbl := newTable()
	tbl.add(newSymbolFromBytes([]byte("a")))
	tbl.add(newSymbolFromBytes([]byte("bc")))
	tbl.finalize()

	buf := tbl.dump()
	require.Contains(t, []byte{endianLittle, endianBig}, buf[0])
	require.Equal(t, byte(1), buf[1]) // one length-1 symbol
	require.Equal(t, byte(1), buf[2]) // one length-2 symbol
	require.Len(t, buf, 9+1+2)
}
