package ttf

import (
	"encoding/binary"

	"github.com/tdewolff/parse/v2"
)

// scalerTypeTrueType is the only scaler type this package accepts; anything
// else (e.g. 'OTTO' CFF outlines, or a TrueType collection header) is
// rejected with ErrUnsupportedFormat.
const scalerTypeTrueType = 0x00010000

// tableRecord is one entry of the sfnt table directory: a 4-byte tag mapped
// to its (offset, length) within the font file.
type tableRecord struct {
	offset uint32
	length uint32
}

// OffsetTable is the parsed sfnt header: the scaler type and the ordered
// tag -> (offset, length) directory that every other table is resolved
// through.
type OffsetTable struct {
	ScalerType uint32
	records    map[string]tableRecord
}

// mandatoryTables lists every table this package requires to exist before
// it will construct a Font.
var mandatoryTables = []string{"head", "cmap", "loca", "glyf", "hmtx", "hhea", "maxp"}

// Font is a parsed TrueType font: the table directory plus every table this
// package understands, resolved eagerly except for glyf/loca which are kept
// as raw byte views and decoded per-glyph on demand.
type Font struct {
	raw    []byte
	tables map[string][]byte

	Head *HeadTable
	Maxp *MaxpTable
	Hhea *HheaTable
	Hmtx *HmtxTable
	Name *NameTable
	Cmap *CmapTable

	loca *locaTable
	glyf []byte
}

// Parse decodes a complete sfnt font file. It rejects any scaler type other
// than 0x00010000 and any font missing a mandatory table.
func Parse(data []byte) (font *Font, err error) {
	defer errRecover(&err)

	ot, err := parseOffsetTable(data)
	if err != nil {
		return nil, err
	}
	if ot.ScalerType != scalerTypeTrueType {
		return nil, ErrUnsupportedFormat
	}

	tables := make(map[string][]byte, len(ot.records))
	for tag, rec := range ot.records {
		if uint32(len(data)) < rec.offset || uint32(len(data))-rec.offset < rec.length {
			return nil, ErrBadTable
		}
		tables[tag] = data[rec.offset : rec.offset+rec.length]
	}
	for _, tag := range mandatoryTables {
		if _, ok := tables[tag]; !ok {
			return nil, ErrMissingTable
		}
	}

	f := &Font{raw: data, tables: tables}
	if f.Head, err = parseHead(tables["head"]); err != nil {
		return nil, err
	}
	if f.Maxp, err = parseMaxp(tables["maxp"]); err != nil {
		return nil, err
	}
	if f.Hhea, err = parseHhea(tables["hhea"], f.Maxp.NumGlyphs); err != nil {
		return nil, err
	}
	if f.Hmtx, err = parseHmtx(tables["hmtx"], f.Hhea.NumberOfHMetrics, f.Maxp.NumGlyphs); err != nil {
		return nil, err
	}
	if f.loca, err = parseLoca(tables["loca"], f.Head.IndexToLocFormat, f.Maxp.NumGlyphs); err != nil {
		return nil, err
	}
	f.glyf = tables["glyf"]
	if f.Cmap, err = parseCmap(tables["cmap"], f.Maxp.NumGlyphs); err != nil {
		return nil, err
	}
	if b, ok := tables["name"]; ok {
		if f.Name, err = parseName(b); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// parseOffsetTable reads the sfnt header and table directory: a big-endian
// fixed header followed by a directory of (tag, checksum, offset, length)
// records, not necessarily ordered by tag.
func parseOffsetTable(data []byte) (*OffsetTable, error) {
	if len(data) < 12 {
		return nil, ErrUnexpectedEOF
	}
	r := parse.NewBinaryReader(data)
	scalerType := binary.BigEndian.Uint32(r.ReadBytes(4))
	numTables := r.ReadUint16()
	_ = r.ReadUint16() // searchRange
	_ = r.ReadUint16() // entrySelector
	_ = r.ReadUint16() // rangeShift

	if r.Len() < 16*uint32(numTables) {
		return nil, ErrUnexpectedEOF
	}

	ot := &OffsetTable{ScalerType: scalerType, records: make(map[string]tableRecord, numTables)}
	for i := 0; i < int(numTables); i++ {
		tag := r.ReadString(4)
		_ = r.ReadUint32() // checksum
		offset := r.ReadUint32()
		length := r.ReadUint32()
		ot.records[tag] = tableRecord{offset: offset, length: length}
	}
	return ot, nil
}

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
	case Error:
		*err = ex
	case error:
		panic(ex)
	default:
		panic(ex)
	}
}
