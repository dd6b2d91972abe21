// Package fsst provides fast string compression via learned symbol tables.
//
// # Overview
//
// FSST (Fast Static Symbol Table) is a compression algorithm optimized for
// strings with repetitive patterns. It learns up to 255 symbols (1-8 bytes each)
// from training data and encodes text by replacing matches with single-byte codes.
//
// # When to Use FSST
//
// FSST excels at compressing:
//   - Structured text: JSON, CSV, logs, XML
//   - Repetitive strings: database dumps, API responses
//   - Text with common patterns: URLs, email addresses, timestamps
//
// Typical compression ratios: 1.5x to 3x, depending on repetitiveness.
//
// # When NOT to Use FSST
//
// FSST is not suitable for:
//   - Binary data (use gzip, zstd, or specialized codecs)
//   - Random or encrypted data (incompressible)
//   - Datasets without shared patterns across records
//   - Single-use compression (training cost exceeds benefit)
//
// # Tradeoffs vs Other Compression
//
// Compared to gzip/zstd:
//   - Much faster decompression (~5-10x faster)
//   - Smaller model size (at most 2,049 serialized bytes vs 32KB+ dictionaries)
//   - Deterministic and cache-friendly
//   - Lower compression ratio
//   - Requires training phase
//
// Compared to LZ4:
//   - Better compression on structured text
//   - Smaller model
//   - Requires training phase
//   - Slower than LZ4 for generic data
//
// # Basic Usage
//
//	// Train a table once and reuse it across every record.
//	inputs := [][]byte{
//	    []byte(`{"id":123,"name":"Alice"}`),
//	    []byte(`{"id":456,"name":"Bob"}`),
//	}
//	tbl, encoded := fsst.EncodeAllStrings(inputs)
//	decoded := fsst.DecodeAllStrings(tbl, encoded)
//
//	// Or train and encode a single string in one call, carrying the
//	// table alongside the code stream so a reader needs nothing else.
//	_, combined := fsst.EncodeString([]byte(`{"id":789,"name":"Charlie"}`), true)
//	original, _ := fsst.DecodeCombined(combined)
//
//	// Serialize a table for reuse without resending it.
//	data := tbl.Dump()
//
// # Performance Characteristics
//
// Training: O(n × k) where n is input size, k is number of rounds (5)
// Encoding: O(m) where m is output size, ~200-500 MB/s
// Decoding: O(m) where m is output size, ~1-2 GB/s (table lookup)
//
// A serialized table is at most 2,049 bytes (a 9-byte header plus up to
// 255 symbols of 1-8 bytes) and encodes/decodes millions of strings per second.
package fsst
