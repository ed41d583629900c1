// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import (
	"io"

	"github.com/simonwuelker/stormlicht/internal/ring"
)

// blockCategory tracks the block-type/block-length switching state shared
// by the literal, insert-and-copy and distance block categories, per RFC
// section 9.2.
type blockCategory struct {
	numTypes  int
	curType   int
	prevTypes [2]int // second-to-last, last block type
	blenLeft  int
	typeTree  *prefixDecoder // alphabet numTypes+2; nil when numTypes<2
	lenTree   *prefixDecoder // alphabet 26; nil when numTypes<2
}

// readBlockCategoryHeader reads (nbl_types, optional type-tree, optional
// length-tree, blen0) for one block category.
func readBlockCategoryHeader(br *bitReader) *blockCategory {
	bc := &blockCategory{prevTypes: [2]int{1, 0}}
	bc.numTypes = int(br.ReadSymbol(&decCounts))
	if bc.numTypes >= 2 {
		bc.typeTree = readPrefixDecoder(br, bc.numTypes+2)
		bc.lenTree = readPrefixDecoder(br, numBlkCntSyms)
		lsym := br.ReadSymbol(bc.lenTree)
		bc.blenLeft = int(br.ReadOffset(lsym, blkLenRanges))
	} else {
		bc.blenLeft = 1 << 24
	}
	return bc
}

// advance switches to a new block type and refreshes blenLeft whenever the
// current block has been fully consumed.
func (bc *blockCategory) advance(br *bitReader) {
	if bc.blenLeft > 0 || bc.typeTree == nil {
		return
	}
	sym := int(br.ReadSymbol(bc.typeTree))
	var t int
	switch {
	case sym == 0:
		t = bc.prevTypes[0]
	case sym == 1:
		t = (bc.curType + 1) % bc.numTypes
	default:
		t = sym - 2
	}
	bc.prevTypes[0], bc.prevTypes[1] = bc.prevTypes[1], t
	bc.curType = t
	lsym := br.ReadSymbol(bc.lenTree)
	bc.blenLeft = int(br.ReadOffset(lsym, blkLenRanges))
}

// insCopyBase gives the (insert_base, copy_base) pair selected by the band
// (high 6 bits) of an insert-and-copy symbol, RFC section 5.
var insCopyBase = [11][2]uint{
	{0, 0}, {0, 8}, {0, 0}, {0, 8}, {8, 0}, {8, 8},
	{0, 16}, {16, 0}, {8, 16}, {16, 8}, {16, 16},
}

// decodeInsertCopy splits an insert-and-copy symbol into its insert-length
// code, copy-length code, and whether the command has an implicit zero
// distance, per RFC 7932 section 5.
func decodeInsertCopy(sym uint) (insCode, cpyCode uint, distZero bool) {
	band := sym / 64
	within := sym % 64
	cpyExtra := within & 0x7
	insExtra := (within >> 3) & 0x7
	base := insCopyBase[band]
	return base[0] + insExtra, base[1] + cpyExtra, sym < 128
}

// distShortCodeIndex/distShortCodeDelta implement the 16-entry short
// distance code substitution table of RFC section 4: code i selects
// past_distances.peek_back(distShortCodeIndex[i]) + distShortCodeDelta[i].
var (
	distShortCodeIndex = [16]int{0, 1, 2, 3, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1}
	distShortCodeDelta = [16]int{0, 0, 0, 0, -1, 1, -2, 2, -3, 3, -1, 1, -2, 2, -3, 3}
)

// decodeLargeDistance computes a distance from a raw distance code sym>=16,
// per RFC section 4: codes below 16+ndirect are direct distances consuming
// no extra bits; the rest use the extra-bits distance formula.
func decodeLargeDistance(br *bitReader, sym, ndirect, npostfix int) int {
	if sym < 16+ndirect {
		return sym - 15
	}
	dd := sym - ndirect - 16
	numextra := uint(1 + (dd >> uint(npostfix+1)))
	hcode := dd >> uint(npostfix)
	lcode := dd & (1<<uint(npostfix) - 1)
	extra := int(br.ReadBits(numextra))
	return ((2+(hcode&1))<<numextra-4+extra)<<uint(npostfix) + lcode + ndirect + 1
}

type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd   bitReader // Input source
	step func()    // Single step of decompression work (can panic)
	err  error     // Persistent error

	wsize int  // Sliding window size
	last  bool // Last block bit detected

	blkLen   int // MLEN (compressed) or bytes remaining (raw), depending on step
	mlenDone int // Output bytes produced so far in the current compressed meta-block

	output []byte // Full decode history; begins with two synthetic zero bytes
	toRead []byte // Unconsumed, freshly produced slice of output

	dist *ring.Buffer // past_distances, seeded [16,15,11,4]

	npostfix int
	ndirect  int

	lit *blockCategory
	ins *blockCategory
	dst *blockCategory

	contextModes []byte
	cmapL        []byte
	cmapD        []byte

	literalTrees []*prefixDecoder
	insCopyTrees []*prefixDecoder
	distTrees    []*prefixDecoder
}

func NewReader(r io.Reader) *Reader {
	br := new(Reader)
	br.Reset(r)
	return br
}

func (br *Reader) Read(buf []byte) (int, error) {
	for {
		if len(br.toRead) > 0 {
			cnt := copy(buf, br.toRead)
			br.toRead = br.toRead[cnt:]
			br.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if br.err != nil {
			return 0, br.err
		}

		// Perform next step in decompression process.
		func() {
			defer errRecover(&br.err)
			br.step()
		}()
		br.InputOffset = br.rd.offset
	}
}

func (br *Reader) Close() error {
	if br.err == io.EOF || br.err == io.ErrClosedPipe {
		return nil
	}
	err := br.err
	br.err = io.ErrClosedPipe
	return err
}

func (br *Reader) Reset(r io.Reader) error {
	*br = Reader{step: br.readStreamHeader}
	br.rd.Init(r)
	return nil
}

// readStreamHeader reads the Brotli stream header according to RFC section 9.1.
func (br *Reader) readStreamHeader() {
	var wbits uint
	if val := br.rd.ReadBits(1); val != 1 { // Code is "0"
		wbits = 16
		goto done
	}
	if val := br.rd.ReadBits(3); val != 0 { // Code is "1xxx"
		wbits = 18 + uint(val-1)
		goto done
	}
	if val := br.rd.ReadBits(3); val != 1 { // Code is "1000xxx"
		if val == 0 {
			val = 9
		}
		wbits = 10 + uint(val-2)
		goto done
	}
	panic(ErrCorrupt) // Code is "1000100", which is invalid

done:
	br.wsize = (1 << wbits) - 16
	br.output = append(br.output[:0], 0, 0) // Two synthetic leading bytes
	br.dist = ring.New(4, 11, 15, 16)
	br.step = br.readBlockHeader
}

// readBlockHeader reads a meta-block header according to RFC section 9.2.
func (br *Reader) readBlockHeader() {
	if br.last {
		if br.rd.ReadPads() > 0 {
			panic(ErrCorrupt)
		}
		br.err = io.EOF
		return
	}

	// Read ISLAST and ISLASTEMPTY.
	if br.last = br.rd.ReadBits(1) == 1; br.last {
		if empty := br.rd.ReadBits(1) == 1; empty {
			br.step = br.readBlockHeader // Next call will terminate stream
			return
		}
	}

	// Read MLEN and MNIBBLES and process meta data.
	var blkLen int // Valid values are [1..1<<24]
	if nibbles := br.rd.ReadBits(2) + 4; nibbles == 7 {
		if reserved := br.rd.ReadBits(1) == 1; reserved {
			panic(ErrInvalidFormat)
		}

		var skipLen int // Valid values are [0..1<<24]
		if skipBytes := br.rd.ReadBits(2); skipBytes > 0 {
			skipLen = int(br.rd.ReadBits(skipBytes * 8))
			if skipBytes > 1 && skipLen>>((skipBytes-1)*8) == 0 {
				panic(ErrCorrupt) // Shortest representation not used
			}
			skipLen++
		}

		if br.rd.ReadPads() > 0 {
			panic(ErrCorrupt)
		}
		if _, err := io.ReadFull(&br.rd, make([]byte, skipLen)); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			panic(err)
		}
		br.step = br.readBlockHeader
		return
	} else {
		blkLen = int(br.rd.ReadBits(nibbles * 4))
		if nibbles > 4 && blkLen>>((nibbles-1)*4) == 0 {
			panic(ErrCorrupt) // Shortest representation not used
		}
		blkLen++
	}
	br.blkLen = blkLen

	// Read ISUNCOMPRESSED and process uncompressed data.
	if !br.last {
		if uncompressed := br.rd.ReadBits(1) == 1; uncompressed {
			if br.rd.ReadPads() > 0 {
				panic(ErrCorrupt)
			}
			br.step = br.readRawData
			return
		}
	}

	br.readPrefixCodes()
}

// readRawData reads raw data according to RFC section 9.2. Like a
// compressed meta-block's output, raw bytes are appended to the shared
// output history so that later meta-blocks can back-reference into them.
func (br *Reader) readRawData() {
	if br.blkLen <= 0 {
		br.step = br.readBlockHeader
		return
	}
	if len(br.toRead) > 0 {
		return
	}

	start := len(br.output)
	br.output = append(br.output, make([]byte, br.blkLen)...)
	cnt, err := br.rd.Read(br.output[start:])
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		panic(err)
	}
	br.output = br.output[:start+cnt]
	br.toRead = br.output[start:]
	br.blkLen -= cnt
	br.step = br.readRawData
}

// readPrefixCodes reads the prefix codes and context structures of a
// compressed meta-block, according to RFC section 9.2.
func (br *Reader) readPrefixCodes() {
	br.lit = readBlockCategoryHeader(&br.rd)
	br.ins = readBlockCategoryHeader(&br.rd)
	br.dst = readBlockCategoryHeader(&br.rd)

	br.npostfix = int(br.rd.ReadBits(2))
	br.ndirect = int(br.rd.ReadBits(4)) << uint(br.npostfix)

	br.contextModes = make([]byte, br.lit.numTypes)
	for i := range br.contextModes {
		br.contextModes[i] = byte(br.rd.ReadBits(2))
	}

	ntreesl := int(br.rd.ReadSymbol(&decCounts))
	if ntreesl >= 2 {
		br.cmapL = readContextMap(&br.rd, 64*br.lit.numTypes, ntreesl)
	} else {
		br.cmapL = make([]byte, 64*br.lit.numTypes)
	}

	ntreesd := int(br.rd.ReadSymbol(&decCounts))
	if ntreesd >= 2 {
		br.cmapD = readContextMap(&br.rd, 4*br.dst.numTypes, ntreesd)
	} else {
		br.cmapD = make([]byte, 4*br.dst.numTypes)
	}

	br.literalTrees = make([]*prefixDecoder, ntreesl)
	for i := range br.literalTrees {
		br.literalTrees[i] = readPrefixDecoder(&br.rd, numLitSyms)
	}

	br.insCopyTrees = make([]*prefixDecoder, br.ins.numTypes)
	for i := range br.insCopyTrees {
		br.insCopyTrees[i] = readPrefixDecoder(&br.rd, numInsSyms)
	}

	distAlphabet := 16 + br.ndirect + (48 << uint(br.npostfix))
	br.distTrees = make([]*prefixDecoder, ntreesd)
	for i := range br.distTrees {
		br.distTrees[i] = readPrefixDecoder(&br.rd, distAlphabet)
	}

	br.mlenDone = 0
	br.step = br.readBlockData
}

// readBlockData decodes the command loop of a compressed meta-block
// according to RFC section 9.2, producing exactly br.blkLen output bytes.
func (br *Reader) readBlockData() {
	start := len(br.output)
	for br.mlenDone < br.blkLen {
		br.ins.advance(&br.rd)
		br.ins.blenLeft--

		icSym := br.rd.ReadSymbol(br.insCopyTrees[br.ins.curType])
		insCode, cpyCode, distZero := decodeInsertCopy(icSym)
		insertLen := int(br.rd.ReadOffset(insCode, insLenRanges))
		copyLen := int(br.rd.ReadOffset(cpyCode, cpyLenRanges))

		commandDone := false
		for i := 0; i < insertLen; i++ {
			br.lit.advance(&br.rd)
			br.lit.blenLeft--

			p1, p2 := br.lastTwoBytes()
			mode := int(br.contextModes[br.lit.curType])
			cid := literalContextID(mode, p1, p2)
			treeIdx := br.cmapL[64*br.lit.curType+int(cid)]
			sym := br.rd.ReadSymbol(br.literalTrees[treeIdx])
			if sym >= numLitSyms {
				panic(ErrInvalidSymbol)
			}
			br.output = append(br.output, byte(sym))
			br.mlenDone++
			if br.mlenDone == br.blkLen {
				commandDone = true
				break
			}
		}
		if commandDone {
			break
		}

		var distance int
		if distZero {
			distance = br.dist.PeekBack(0)
		} else {
			br.dst.advance(&br.rd)
			br.dst.blenLeft--
			cid := distanceContextID(uint(copyLen))
			treeIdx := br.cmapD[4*br.dst.curType+int(cid)]
			distSym := int(br.rd.ReadSymbol(br.distTrees[treeIdx]))

			var rawNonzero bool
			if distSym < 16 {
				distance = br.dist.PeekBack(distShortCodeIndex[distSym]) + distShortCodeDelta[distSym]
				rawNonzero = distSym != 0
			} else {
				distance = decodeLargeDistance(&br.rd, distSym, br.ndirect, br.npostfix)
				rawNonzero = true
			}
			if distance <= 0 {
				panic(ErrCorrupt)
			}

			maxDistance := br.maxDistance()
			if rawNonzero && distance <= maxDistance+1 {
				br.dist.PushOverwriting(distance)
			}
		}

		maxDistance := br.maxDistance()
		before := len(br.output)
		if distance <= maxDistance {
			br.output = copyFromDistance(br.output, distance, copyLen)
		} else {
			wordID := distance - maxDistance - 1
			br.output = lookupDictionary(br.output, wordID, copyLen)
		}
		br.mlenDone += len(br.output) - before
	}

	br.toRead = br.output[start:]
	br.step = br.readBlockHeader
}

// lastTwoBytes returns the most recent two output bytes (p1, p2), used to
// seed literal context ids. The two synthetic leading zero bytes guarantee
// this is always well-defined.
func (br *Reader) lastTwoBytes() (p1, p2 byte) {
	n := len(br.output)
	return br.output[n-1], br.output[n-2]
}

// maxDistance returns min(window_size, output.len()-2), the largest
// back-reference distance the current output buffer can satisfy.
func (br *Reader) maxDistance() int {
	produced := len(br.output) - 2
	if br.wsize < produced {
		return br.wsize
	}
	return produced
}

// copyFromDistance appends length bytes to output, copied from distance
// bytes back; the copy may overlap and repeat the tail when length exceeds
// distance.
func copyFromDistance(output []byte, distance, length int) []byte {
	srcStart := len(output) - distance
	for i := 0; i < length; i++ {
		output = append(output, output[srcStart+i])
	}
	return output
}
