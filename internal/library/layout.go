/*
   library: on-tape layout for CALL-resolvable function libraries.

   Copyright (c) 2026, zerocpu-go contributors

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

// Package library implements the library-tape binary layout that CALL's
// LIB_ABS/LIB_IDX/LIB_NAME modes resolve against: a header, a table of
// contents, and a sequence of function records, plus a random-access global
// constant pool. The text assembly directive language that produces a
// library's instruction bodies is out of scope here; this package works
// directly with pre-encoded instruction words.
package library

const (
	// Magic is the normative header magic: 'LIBHD' truncated to 48 bits.
	// A second value appears in older sources; this is the one the library
	// builder actually writes, so it is the one this package honors.
	Magic uint64 = 0x4C4942484400

	Version uint64 = 0x000000000001

	// FnHdrMagic marks the start of each function record.
	FnHdrMagic uint64 = 0x464E4844

	// AbiVer is the 12-bit ABI version stamped into every function's
	// FN_META word.
	AbiVer uint64 = 0x001

	// HeaderLen is the number of words in the fixed header:
	// MAGIC, VERSION, ENTRY_COUNT, TOC_START.
	HeaderLen int64 = 4

	// TocEntryLen is the number of words per TOC entry:
	// FN_ID, NAMEHASH, START, LENGTH.
	TocEntryLen int64 = 4

	// FnRecordHeaderLen is the number of words before a function's body:
	// FNHDR_MAGIC, FN_META, RESERVED.
	FnRecordHeaderLen int64 = 3
)

// Return modes for FN_META's RETURNS field.
const (
	ReturnsR1   uint64 = 0
	ReturnsR1R2 uint64 = 1
)

// Clobber bits for FN_META's CLOBBERS field.
const (
	ClobbersR1 uint64 = 1 << 0
	ClobbersR2 uint64 = 1 << 1
	ClobbersR3 uint64 = 1 << 2
)

// PackFnMeta builds a function's FN_META word:
// (ABI_VER<<36)|(ARGS<<24)|(RETURNS<<16)|(CLOBBERS).
func PackFnMeta(args, returns, clobbers uint64) uint64 {
	return (AbiVer&0xFFF)<<36 | (args&0xFF)<<24 | (returns&0xFF)<<16 | (clobbers & 0xFFFF)
}

// UnpackFnMeta splits a FN_META word into its fields.
func UnpackFnMeta(meta uint64) (abiVer, args, returns, clobbers uint64) {
	abiVer = (meta >> 36) & 0xFFF
	args = (meta >> 24) & 0xFF
	returns = (meta >> 16) & 0xFF
	clobbers = meta & 0xFFFF
	return
}

// TOCEntry is one table-of-contents record.
type TOCEntry struct {
	FnID     uint64
	NameHash uint64
	Start    int64
	Length   int64
}

// FnRecord is a decoded function record (header plus body, without its
// surrounding tape addresses).
type FnRecord struct {
	Meta uint64
	Body []uint64
}
