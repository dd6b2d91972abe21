package fsst

import "sort"

// countFrac gates how aggressively expandCandidate admits a candidate:
// multi-sample builds require a symbol to clear a frequency floor scaled
// by the round's sampleFrac; single-string builds admit everything.
const countFracMulti = 5

// builder runs the five-round greedy learner: each round counts symbol
// (and symbol-pair) frequencies over the sample set, derives a fresh
// candidate table from those counts, and keeps whichever round's table
// produced the best gain.
type builder struct {
	counter   counters
	countFrac int
}

func newBuilder(countFrac int) *builder {
	return &builder{countFrac: countFrac}
}

// buildFromSamples learns a table over a multi-string sample set.
func buildFromSamples(samples [][]byte) *table {
	return newBuilder(countFracMulti).run(samples)
}

// buildFromSingleString learns a table from a single string, admitting
// every observed symbol (countFrac = 0).
func buildFromSingleString(s []byte) *table {
	return newBuilder(0).run([][]byte{s})
}

var sampleFracSchedule = [...]int{8, 38, 68, 98, 128}

func (b *builder) run(samples [][]byte) *table {
	t := newTable()

	var bestGain int64
	var bestSingle [2 * fsstCodeMax]uint8
	var bestTable table

	for round, sampleFrac := range sampleFracSchedule {
		gain := b.computeFreq(samples, sampleFrac, t)
		if round == 0 || gain > bestGain {
			bestGain = gain
			bestSingle = b.counter.backupSingle()
			bestTable = *t
		}
		if round == len(sampleFracSchedule)-1 {
			break
		}
		b.makeTable(sampleFrac, t)
		b.counter.reset()
	}

	b.counter.restoreSingle(bestSingle)
	b.makeTable(sampleFracSchedule[len(sampleFracSchedule)-1], &bestTable)
	bestTable.finalize()
	return &bestTable
}

// computeFreq walks every (possibly subsampled) sample through
// countLine, returning the round's total gain.
func (b *builder) computeFreq(samples [][]byte, sampleFrac int, t *table) int64 {
	var gain int64
	subsample := len(samples) > 128 && sampleFrac < 128
	for i, s := range samples {
		if subsample {
			r := 1 + ((fsstHash(uint64(1+i)) * uint64(sampleFrac)) & fsstSampleMask)
			if r > uint64(sampleFrac) {
				continue
			}
		}
		gain += b.countLine(s, sampleFrac, t)
	}
	return gain
}

// countLine segments bytes into symbols via findLongestSymbolCode,
// feeding both the single and (below sampleFrac 128) pairwise counters,
// and returns the bytes-saved gain for this line.
func (b *builder) countLine(bytes []byte, sampleFrac int, t *table) int64 {
	if len(bytes) == 0 {
		return 0
	}

	var gain int64
	pos := 0
	code1 := t.findLongestSymbolCode(bytes[pos:])
	s1 := t.getSymbol(code1)

	for {
		b.counter.incSingle(uint32(code1))
		if s1.length() > 1 {
			b.counter.incSingle(uint32(bytes[pos]))
		}

		emitted := 1
		if code1 < fsstCodeBase {
			emitted = 2
		}
		gain += int64(s1.length()) - int64(emitted)

		pos += int(s1.length())
		if pos >= len(bytes) {
			break
		}

		code2 := t.findLongestSymbolCode(bytes[pos:])
		s2 := t.getSymbol(code2)
		if sampleFrac < 128 {
			b.counter.incConcat(uint32(code1), uint32(code2))
			if s2.length() > 1 {
				b.counter.incConcat(uint32(code1), uint32(bytes[pos]))
			}
		}
		code1, s1 = code2, s2
	}
	return gain
}

// candidateKey identifies a candidate symbol by its content, since two
// symbols with the same bytes always carry the same gain regardless of
// which code observed them.
type candidateKey struct {
	val    uint64
	length uint32
}

// makeTable rebuilds t from scratch: it tallies a gain-weighted
// candidate pool from the counters accumulated this round, then
// reinstalls the highest-gain candidates (up to 255, fewer if the pool
// runs dry or hash collisions reject some).
func (b *builder) makeTable(sampleFrac int, t *table) {
	candidates := make(map[candidateKey]uint64)

	end := fsstCodeBase + t.len()
	pos1 := 0
	for pos1 < end {
		cnt1 := b.counter.getSingleAndForward(&pos1)
		if cnt1 == 0 {
			pos1++
			continue
		}
		s1 := t.getSymbol(uint16(pos1))
		heuristicCnt := uint64(cnt1)
		if s1.length() == 1 {
			heuristicCnt *= 8
		}
		b.expandCandidate(candidates, s1, heuristicCnt, sampleFrac)

		if s1.length() != 8 && sampleFrac < 128 {
			pos2 := 0
			for pos2 < end {
				cnt2 := b.counter.getConcatAndForward(uint32(pos1), &pos2)
				if cnt2 == 0 {
					pos2++
					continue
				}
				s2 := t.getSymbol(uint16(pos2))
				s3 := fsstConcat(s1, s2)
				b.expandCandidate(candidates, s3, uint64(cnt2), sampleFrac)
				pos2++
			}
		}
		pos1++
	}

	type scored struct {
		sym  symbol
		gain uint64
	}
	pool := make([]scored, 0, len(candidates))
	for key, gain := range candidates {
		sym := symbol{val: key.val}
		sym.setCodeLen(fsstCodeMask, key.length)
		pool = append(pool, scored{sym: sym, gain: gain})
	}

	// Ascending by gain; ties broken by ascending symbol value, so the
	// larger value lands last and is popped first below.
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].gain != pool[j].gain {
			return pool[i].gain < pool[j].gain
		}
		return pool[i].sym.val < pool[j].sym.val
	})

	t.clear()
	for i := len(pool) - 1; i >= 0 && t.len() < fsstMaxSymbols; i-- {
		t.add(pool[i].sym)
	}
}

// expandCandidate admits s into the candidate pool iff cnt clears this
// round's frequency floor, accumulating length*cnt gain under s's key.
func (b *builder) expandCandidate(candidates map[candidateKey]uint64, s symbol, cnt uint64, sampleFrac int) {
	threshold := uint64(b.countFrac*sampleFrac) / 128
	if cnt < threshold {
		return
	}
	length := s.length()
	key := candidateKey{val: s.val, length: length}
	candidates[key] += uint64(length) * cnt
}
