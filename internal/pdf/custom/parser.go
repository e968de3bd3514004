package custom

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/a3tai/mcp-pdf-redactor/internal/pdf/errors"
	"github.com/a3tai/mcp-pdf-redactor/internal/pdf/xref"
)

// maxObjectDepth bounds container nesting so a crafted file cannot blow the
// stack with arrays inside arrays.
const maxObjectDepth = 512

// headerWindow is how far into the file the %PDF- marker may appear
const headerWindow = 1024

// Parser reads a complete document structure out of an in-memory file. It
// walks the cross-reference chain newest first, loads every reachable
// object eagerly, and falls back to scanning the raw bytes when the
// reference data is unusable.
type Parser struct {
	data    []byte
	version string
	table   *xref.Table
	trailer *Dictionary
	objects map[int64]*IndirectObject
	objStms map[int64]*objStmInfo
	notes   []string
}

// NewParser creates a parser over the raw file bytes
func NewParser(data []byte) *Parser {
	return &Parser{
		data:    data,
		table:   xref.NewTable(),
		objects: make(map[int64]*IndirectObject),
		objStms: make(map[int64]*objStmInfo),
	}
}

// Parse reads the full document structure. Failures surface as the parse
// error taxonomy: unsupported constructions are reported as-is, anything
// structurally unusable is reported as malformed after a rebuild attempt.
func (p *Parser) Parse() error {
	if len(p.data) < len(PDFHeaderPattern)+3 {
		return errors.NewParseError(errors.ParseMalformed, "file too small to be a PDF")
	}

	if err := p.parseHeader(); err != nil {
		return errors.WrapParseError(errors.ParseMalformed, err)
	}

	structErr := p.parseStructure()
	if structErr == nil {
		return nil
	}
	if pe, ok := errors.AsParseError(structErr); ok && pe.Kind == errors.ParseUnsupported {
		return structErr
	}

	p.resetTables()
	if rebuildErr := p.rebuild(); rebuildErr != nil {
		if pe, ok := errors.AsParseError(rebuildErr); ok && pe.Kind == errors.ParseUnsupported {
			return rebuildErr
		}
		return errors.WrapParseError(errors.ParseMalformed, structErr)
	}
	return nil
}

// Version returns the version string from the file header
func (p *Parser) Version() string {
	return p.version
}

// Trailer returns the merged trailer dictionary
func (p *Parser) Trailer() *Dictionary {
	return p.trailer
}

// Objects returns every loaded indirect object keyed by object number
func (p *Parser) Objects() map[int64]*IndirectObject {
	return p.objects
}

// Table returns the merged cross-reference table
func (p *Parser) Table() *xref.Table {
	return p.table
}

// Notes returns human-readable remarks recorded while tolerating damage
func (p *Parser) Notes() []string {
	return p.notes
}

func (p *Parser) notef(format string, args ...interface{}) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *Parser) resetTables() {
	p.table = xref.NewTable()
	p.trailer = nil
	p.objects = make(map[int64]*IndirectObject)
	p.objStms = make(map[int64]*objStmInfo)
}

// parseHeader locates the %PDF- marker in the first kilobyte and rebases
// the buffer on it, since offsets count from the marker when a writer has
// prepended junk.
func (p *Parser) parseHeader() error {
	window := p.data
	if len(window) > headerWindow {
		window = window[:headerWindow]
	}

	idx := bytes.Index(window, []byte(PDFHeaderPattern))
	if idx < 0 {
		return fmt.Errorf("missing %s header", PDFHeaderPattern)
	}
	if idx > 0 {
		p.notef("%d bytes before header ignored", idx)
		p.data = p.data[idx:]
	}

	verStart := len(PDFHeaderPattern)
	verEnd := verStart
	for verEnd < len(p.data) && verEnd < verStart+8 {
		ch := p.data[verEnd]
		if (ch >= '0' && ch <= '9') || ch == '.' {
			verEnd++
			continue
		}
		break
	}
	p.version = string(p.data[verStart:verEnd])
	if p.version == "" {
		p.version = "1.4"
	}
	return nil
}

// parseStructure drives the normal path: cross-reference chain, trailer
// merge, object load, object stream expansion.
func (p *Parser) parseStructure() error {
	startxref, err := p.findStartXRef()
	if err != nil {
		return err
	}

	trailerDicts, err := p.walkXRefChain(startxref)
	if err != nil {
		return err
	}

	p.trailer = mergeTrailerDicts(trailerDicts)
	if p.trailer.Has("Encrypt") {
		return errors.NewParseError(errors.ParseUnsupported, "encrypted documents are not supported")
	}

	p.loadObjects()
	p.expandCompressedObjects()
	p.pruneStructuralStreams()

	return p.validateEssentials()
}

// findStartXRef locates the last startxref keyword near the end of file
func (p *Parser) findStartXRef() (int64, error) {
	window := int64(2048)
	if window > int64(len(p.data)) {
		window = int64(len(p.data))
	}
	tail := p.data[int64(len(p.data))-window:]

	idx := bytes.LastIndex(tail, []byte(StartXRefKeyword))
	if idx < 0 {
		return 0, NewSyntaxError("startxref keyword not found", int64(len(p.data)))
	}

	base := int64(len(p.data)) - window + int64(idx) + int64(len(StartXRefKeyword))
	pos := skipSpaces(p.data, base)
	offset, _, ok := scanIntAt(p.data, pos)
	if !ok {
		return 0, NewSyntaxError("missing offset after startxref", pos)
	}
	if offset < 0 || offset >= int64(len(p.data)) {
		return 0, NewSyntaxError(fmt.Sprintf("startxref offset %d outside file", offset), pos)
	}
	return offset, nil
}

// walkXRefChain follows Prev links newest first, parsing classic tables and
// cross-reference streams. Returns the trailer dictionaries newest first.
func (p *Parser) walkXRefChain(startxref int64) ([]*Dictionary, error) {
	var trailerDicts []*Dictionary
	visited := make(map[int64]bool)

	offset := startxref
	for offset >= 0 {
		if visited[offset] {
			p.notef("cross-reference chain loops back to offset %d", offset)
			break
		}
		visited[offset] = true

		if offset >= int64(len(p.data)) {
			return nil, NewSyntaxError(fmt.Sprintf("cross-reference offset %d outside file", offset), offset)
		}

		pos := skipSpaces(p.data, offset)
		var sectionDicts []*Dictionary
		var err error
		if hasKeyword(p.data, pos, XRefKeyword) {
			sectionDicts, err = p.parseClassicSection(pos, visited)
		} else {
			var dict *Dictionary
			dict, err = p.parseXRefStreamAt(pos)
			if dict != nil {
				sectionDicts = []*Dictionary{dict}
			}
		}
		if err != nil {
			if len(trailerDicts) == 0 {
				return nil, err
			}
			p.notef("older cross-reference section at %d unreadable: %v", offset, err)
			break
		}

		trailerDicts = append(trailerDicts, sectionDicts...)

		offset = -1
		if len(sectionDicts) > 0 {
			if prev := sectionDicts[0].GetInt("Prev"); sectionDicts[0].Has("Prev") {
				offset = prev
			}
		}
	}

	if len(trailerDicts) == 0 {
		return nil, NewSyntaxError("no usable cross-reference sections", startxref)
	}
	return trailerDicts, nil
}

// parseClassicSection reads a classic table plus its trailer dictionary.
// In hybrid files the XRefStm entries are loaded before the table's own so
// objects shadowed as free for old readers still resolve.
func (p *Parser) parseClassicSection(offset int64, visited map[int64]bool) ([]*Dictionary, error) {
	section := xref.NewTable()
	trailerPos, err := xref.ParseSection(p.data, offset, section)
	if err != nil {
		return nil, err
	}

	dict, err := p.parseDictAt(trailerPos)
	if err != nil {
		return nil, fmt.Errorf("trailer dictionary: %w", err)
	}

	dicts := []*Dictionary{dict}
	if stm := dict.GetInt("XRefStm"); stm > 0 && stm < int64(len(p.data)) && !visited[stm] {
		visited[stm] = true
		stmDict, stmErr := p.parseXRefStreamAt(stm)
		if stmErr != nil {
			p.notef("hybrid cross-reference stream at %d unreadable: %v", stm, stmErr)
		} else {
			dicts = append(dicts, stmDict)
		}
	}

	for _, objNum := range section.ObjectNumbers() {
		p.table.Add(objNum, section.Entry(objNum))
	}
	return dicts, nil
}

// parseXRefStreamAt parses a cross-reference stream object and decodes its
// entry rows into the table. The stream dictionary doubles as the trailer.
func (p *Parser) parseXRefStreamAt(offset int64) (*Dictionary, error) {
	io, err := p.parseIndirectObjectAt(offset)
	if err != nil {
		return nil, err
	}

	stream, ok := io.Object.(*Stream)
	if !ok {
		return nil, NewSyntaxError("cross-reference object is not a stream", offset)
	}
	if stream.Dict.GetName("Type") != "XRef" {
		return nil, NewSyntaxError("cross-reference stream has wrong Type", offset)
	}

	payload, err := DecodeStream(stream)
	if err != nil {
		return nil, fmt.Errorf("cross-reference stream payload: %w", err)
	}

	w := arrayInts(stream.Dict.GetArray("W"))
	size := stream.Dict.GetInt("Size")
	var index []int64
	if stream.Dict.Has("Index") {
		index = arrayInts(stream.Dict.GetArray("Index"))
	} else {
		index = []int64{0, size}
	}

	if err := xref.DecodeStreamEntries(w, index, payload, p.table); err != nil {
		return nil, fmt.Errorf("cross-reference stream entries: %w", err)
	}
	return stream.Dict, nil
}

// mergeTrailerDicts folds the chain of trailers into one view where the
// newest occurrence of each key wins
func mergeTrailerDicts(dicts []*Dictionary) *Dictionary {
	merged := NewDictionary()
	for _, dict := range dicts {
		for _, key := range dict.Keys {
			if !merged.Has(key.Value) {
				merged.Set(key.Value, dict.Values[key.Value])
			}
		}
	}
	return merged
}

// loadObjects parses every in-use table entry at its recorded offset
func (p *Parser) loadObjects() {
	for _, objNum := range p.table.ObjectNumbers() {
		entry := p.table.Entry(objNum)
		if entry.Type != xref.EntryInUse {
			continue
		}
		if entry.Offset < 0 || entry.Offset >= int64(len(p.data)) {
			p.notef("object %d: offset %d outside file", objNum, entry.Offset)
			continue
		}

		io, err := p.parseIndirectObjectAt(entry.Offset)
		if err != nil {
			p.notef("object %d at offset %d: %v", objNum, entry.Offset, err)
			continue
		}
		if io.ID.Number != int64(objNum) {
			p.notef("object %d: header says %d %d", objNum, io.ID.Number, io.ID.Generation)
			io.ID.Number = int64(objNum)
		}
		p.objects[int64(objNum)] = io
	}
}

// expandCompressedObjects materializes every object stored inside an object
// stream referenced by a compressed table entry
func (p *Parser) expandCompressedObjects() {
	for _, objNum := range p.table.ObjectNumbers() {
		entry := p.table.Entry(objNum)
		if entry.Type != xref.EntryCompressed {
			continue
		}
		if err := p.loadCompressedObject(int64(objNum), entry); err != nil {
			p.notef("compressed object %d: %v", objNum, err)
		}
	}
}

func (p *Parser) loadCompressedObject(objNum int64, entry *xref.Entry) error {
	info, err := p.objStmFor(entry.Offset)
	if err != nil {
		return err
	}

	idx := entry.StreamIndex
	if idx < 0 || idx >= len(info.nums) || info.nums[idx] != objNum {
		idx = -1
		for i, n := range info.nums {
			if n == objNum {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("not present in object stream %d", entry.Offset)
		}
	}

	obj, err := p.parseObjectInPayload(info.payload, info.first+info.offs[idx])
	if err != nil {
		return err
	}
	p.objects[objNum] = &IndirectObject{
		ID:     ObjectID{Number: objNum, Generation: 0},
		Object: obj,
	}
	return nil
}

// objStmInfo is a decoded object stream: payload plus its embedded index
type objStmInfo struct {
	payload []byte
	first   int64
	nums    []int64
	offs    []int64
}

// objStmFor decodes an object stream once and caches the result
func (p *Parser) objStmFor(containerNum int64) (*objStmInfo, error) {
	if info, ok := p.objStms[containerNum]; ok {
		if info == nil {
			return nil, fmt.Errorf("object stream %d previously failed", containerNum)
		}
		return info, nil
	}

	container, ok := p.objects[containerNum]
	if !ok {
		p.objStms[containerNum] = nil
		return nil, fmt.Errorf("object stream %d not loaded", containerNum)
	}
	stream, ok := container.Object.(*Stream)
	if !ok || stream.Dict.GetName("Type") != "ObjStm" {
		p.objStms[containerNum] = nil
		return nil, fmt.Errorf("object %d is not an object stream", containerNum)
	}

	payload, err := DecodeStream(stream)
	if err != nil {
		p.objStms[containerNum] = nil
		return nil, fmt.Errorf("object stream %d payload: %w", containerNum, err)
	}

	n := stream.Dict.GetInt("N")
	first := stream.Dict.GetInt("First")
	if n <= 0 || first <= 0 || first > int64(len(payload)) {
		p.objStms[containerNum] = nil
		return nil, fmt.Errorf("object stream %d has bad N/First", containerNum)
	}

	info := &objStmInfo{payload: payload, first: first}
	tr := newTokens(payload, 0)
	for i := int64(0); i < n; i++ {
		numTok, err := tr.next()
		if err != nil || numTok.Type != TokenNumber {
			p.objStms[containerNum] = nil
			return nil, fmt.Errorf("object stream %d index truncated", containerNum)
		}
		offTok, err := tr.next()
		if err != nil || offTok.Type != TokenNumber {
			p.objStms[containerNum] = nil
			return nil, fmt.Errorf("object stream %d index truncated", containerNum)
		}
		num, _ := strconv.ParseInt(numTok.Value, 10, 64)
		off, _ := strconv.ParseInt(offTok.Value, 10, 64)
		info.nums = append(info.nums, num)
		info.offs = append(info.offs, off)
	}

	p.objStms[containerNum] = info
	return info, nil
}

// pruneStructuralStreams drops object streams and cross-reference streams
// from the object map. Their contents have been expanded or merged, and the
// flat form written out later has no use for the containers.
func (p *Parser) pruneStructuralStreams() {
	for num, io := range p.objects {
		if stream, ok := io.Object.(*Stream); ok {
			switch stream.Dict.GetName("Type") {
			case "ObjStm", "XRef":
				delete(p.objects, num)
			}
		}
	}
}

// validateEssentials confirms the trailer points at a usable catalog
func (p *Parser) validateEssentials() error {
	if p.trailer == nil {
		return NewSyntaxError("no trailer", 0)
	}
	rootObj := p.trailer.Get("Root")
	ref, ok := rootObj.(*IndirectRef)
	if !ok {
		return NewSyntaxError("trailer Root is not an indirect reference", 0)
	}
	io, ok := p.objects[ref.ObjectID.Number]
	if !ok {
		return NewSyntaxError(fmt.Sprintf("catalog object %d missing", ref.ObjectID.Number), 0)
	}
	catalog, ok := io.Object.(*Dictionary)
	if !ok {
		return NewSyntaxError("catalog is not a dictionary", 0)
	}
	if catalog.GetName("Type") != "Catalog" && !catalog.Has("Pages") {
		return NewSyntaxError("catalog has neither Type nor Pages", 0)
	}
	return nil
}

// rebuild scans the raw bytes for object headers when the cross-reference
// data is unusable, trusting the later of duplicate definitions
func (p *Parser) rebuild() error {
	offsets := make(map[int64]int64)
	gens := make(map[int64]int64)

	i := 0
	for {
		idx := bytes.Index(p.data[i:], []byte(ObjKeyword))
		if idx < 0 {
			break
		}
		pos := int64(i + idx)
		i += idx + len(ObjKeyword)

		if !isObjBoundary(p.data, pos) {
			continue
		}
		objNum, gen, start, ok := scanObjHeaderBackward(p.data, pos)
		if !ok {
			continue
		}
		offsets[objNum] = start
		gens[objNum] = gen
	}

	if len(offsets) == 0 {
		return errors.NewParseError(errors.ParseMalformed, "no indirect objects found while scanning")
	}

	for objNum, off := range offsets {
		p.table.Add(int(objNum), &xref.Entry{
			Type:       xref.EntryInUse,
			Offset:     off,
			Generation: int(gens[objNum]),
		})
	}

	p.loadObjects()
	p.expandScannedObjectStreams()

	trailer, err := p.recoverTrailer()
	if err != nil {
		return err
	}
	p.trailer = trailer
	if p.trailer.Has("Encrypt") {
		return errors.NewParseError(errors.ParseUnsupported, "encrypted documents are not supported")
	}

	p.pruneStructuralStreams()
	if err := p.validateEssentials(); err != nil {
		return err
	}
	p.notef("cross-reference data rebuilt by scanning, %d objects recovered", len(p.objects))
	return nil
}

// expandScannedObjectStreams expands every object stream found by the scan,
// keeping directly scanned definitions over embedded ones
func (p *Parser) expandScannedObjectStreams() {
	var containers []int64
	for num, io := range p.objects {
		if stream, ok := io.Object.(*Stream); ok && stream.Dict.GetName("Type") == "ObjStm" {
			containers = append(containers, num)
		}
	}

	for _, containerNum := range containers {
		info, err := p.objStmFor(containerNum)
		if err != nil {
			p.notef("object stream %d: %v", containerNum, err)
			continue
		}
		for idx, objNum := range info.nums {
			if _, exists := p.objects[objNum]; exists {
				continue
			}
			obj, err := p.parseObjectInPayload(info.payload, info.first+info.offs[idx])
			if err != nil {
				p.notef("object %d in stream %d: %v", objNum, containerNum, err)
				continue
			}
			p.objects[objNum] = &IndirectObject{
				ID:     ObjectID{Number: objNum, Generation: 0},
				Object: obj,
			}
		}
	}
}

// recoverTrailer rebuilds a trailer from trailer keywords, cross-reference
// stream dictionaries, or as a last resort the catalog itself
func (p *Parser) recoverTrailer() (*Dictionary, error) {
	var dicts []*Dictionary

	i := 0
	var positions []int64
	for {
		idx := bytes.Index(p.data[i:], []byte(TrailerKeyword))
		if idx < 0 {
			break
		}
		pos := int64(i + idx)
		i += idx + len(TrailerKeyword)
		if pos > 0 && IsRegular(p.data[pos-1]) {
			continue
		}
		if hasKeyword(p.data, pos, TrailerKeyword) {
			positions = append(positions, pos+int64(len(TrailerKeyword)))
		}
	}
	for j := len(positions) - 1; j >= 0; j-- {
		if dict, err := p.parseDictAt(positions[j]); err == nil {
			dicts = append(dicts, dict)
		}
	}

	for _, io := range p.objects {
		if stream, ok := io.Object.(*Stream); ok && stream.Dict.GetName("Type") == "XRef" {
			dicts = append(dicts, stream.Dict)
		}
	}

	merged := mergeTrailerDicts(dicts)
	if !merged.Has("Root") {
		for num, io := range p.objects {
			if dict, ok := io.Object.(*Dictionary); ok && dict.GetName("Type") == "Catalog" {
				merged.Set("Root", &IndirectRef{ObjectID: ObjectID{Number: num, Generation: io.ID.Generation}})
				break
			}
		}
	}
	if !merged.Has("Root") {
		return nil, errors.NewParseError(errors.ParseMalformed, "no document catalog found while scanning")
	}
	if !merged.Has("Size") {
		merged.Set("Size", NewInteger(int64(p.table.MaxObjectNumber())+1))
	}
	return merged, nil
}

// tokens is a token reader with pushback over one region of the file
type tokens struct {
	lexer    *Lexer
	pushback []Token
	depth    int
}

func newTokens(buf []byte, offset int64) *tokens {
	return &tokens{lexer: NewByteLexerAt(buf, offset)}
}

func (t *tokens) next() (Token, error) {
	if n := len(t.pushback); n > 0 {
		tok := t.pushback[n-1]
		t.pushback = t.pushback[:n-1]
		return tok, nil
	}
	return t.lexer.NextToken()
}

func (t *tokens) unread(tok Token) {
	t.pushback = append(t.pushback, tok)
}

// parseIndirectObjectAt parses "N G obj ... endobj" at offset, including a
// stream payload when the body is a stream dictionary
func (p *Parser) parseIndirectObjectAt(offset int64) (*IndirectObject, error) {
	tr := newTokens(p.data, offset)

	numTok, err := tr.next()
	if err != nil {
		return nil, err
	}
	if numTok.Type != TokenNumber {
		return nil, NewSyntaxError("expected object number", numTok.Pos)
	}
	objNum, err := strconv.ParseInt(numTok.Value, 10, 64)
	if err != nil {
		return nil, NewSyntaxError("invalid object number", numTok.Pos)
	}

	genTok, err := tr.next()
	if err != nil {
		return nil, err
	}
	if genTok.Type != TokenNumber {
		return nil, NewSyntaxError("expected generation number", genTok.Pos)
	}
	gen, err := strconv.ParseInt(genTok.Value, 10, 64)
	if err != nil {
		return nil, NewSyntaxError("invalid generation number", genTok.Pos)
	}

	objTok, err := tr.next()
	if err != nil {
		return nil, err
	}
	if objTok.Type != TokenObjStart {
		return nil, NewSyntaxError("expected obj keyword", objTok.Pos)
	}

	obj, err := p.parseObject(tr)
	if err != nil {
		return nil, err
	}

	if dict, ok := obj.(*Dictionary); ok {
		streamTok, terr := tr.next()
		if terr == nil && streamTok.Type == TokenStreamStart {
			obj, tr, err = p.readStream(tr, dict)
			if err != nil {
				return nil, err
			}
		} else if terr == nil {
			tr.unread(streamTok)
		}
	}

	endTok, err := tr.next()
	if err == nil && endTok.Type != TokenObjEnd {
		p.notef("object %d %d: missing endobj", objNum, gen)
	}

	return &IndirectObject{
		ID:     ObjectID{Number: objNum, Generation: gen},
		Object: obj,
	}, nil
}

// readStream captures the raw payload following a stream keyword. The bytes
// are kept exactly as they appear in the file; decoding happens on demand.
// Returns a fresh token reader positioned after the endstream keyword.
func (p *Parser) readStream(tr *tokens, dict *Dictionary) (PDFObject, *tokens, error) {
	dataStart := tr.lexer.AlignStreamData()

	length, haveLength := p.resolveStreamLength(dict)
	end := int64(-1)
	if haveLength && length >= 0 && dataStart+length <= int64(len(p.data)) {
		candidate := dataStart + length
		check := skipSpaces(p.data, candidate)
		if hasKeyword(p.data, check, EndStreamKeyword) {
			end = candidate
		}
	}

	if end < 0 {
		idx := bytes.Index(p.data[dataStart:], []byte(EndStreamKeyword))
		if idx < 0 {
			return nil, nil, NewSyntaxError("unterminated stream", dataStart)
		}
		end = dataStart + int64(idx)
		// The end-of-line before endstream is not part of the data
		if end > dataStart && p.data[end-1] == LineFeedChar {
			end--
		}
		if end > dataStart && p.data[end-1] == CarriageReturnChar {
			end--
		}
		if !haveLength || length != end-dataStart {
			p.notef("stream at %d: Length %d corrected to %d", dataStart, length, end-dataStart)
		}
	}

	raw := p.data[dataStart:end]
	after := newTokens(p.data, skipSpaces(p.data, end))
	endTok, err := after.next()
	if err != nil || endTok.Type != TokenStreamEnd {
		return nil, nil, NewSyntaxError("expected endstream", end)
	}

	return &Stream{
		Dict:   dict,
		Data:   raw,
		Offset: dataStart,
		Length: int64(len(raw)),
	}, after, nil
}

// resolveStreamLength reads Length, following one indirect reference
func (p *Parser) resolveStreamLength(dict *Dictionary) (int64, bool) {
	lengthObj := dict.Get("Length")
	switch obj := lengthObj.(type) {
	case *Number:
		return obj.Int(), true
	case *IndirectRef:
		entry := p.table.Entry(int(obj.ObjectID.Number))
		if entry == nil || entry.Type != xref.EntryInUse {
			return 0, false
		}
		if entry.Offset < 0 || entry.Offset >= int64(len(p.data)) {
			return 0, false
		}
		num, err := p.parseScalarNumberAt(entry.Offset)
		if err != nil {
			return 0, false
		}
		return num, true
	default:
		return 0, false
	}
}

// parseScalarNumberAt reads the numeric body of "N G obj <int> endobj"
func (p *Parser) parseScalarNumberAt(offset int64) (int64, error) {
	tr := newTokens(p.data, offset)
	for _, want := range []TokenType{TokenNumber, TokenNumber, TokenObjStart} {
		tok, err := tr.next()
		if err != nil {
			return 0, err
		}
		if tok.Type != want {
			return 0, NewSyntaxError("not an indirect object header", tok.Pos)
		}
	}
	tok, err := tr.next()
	if err != nil {
		return 0, err
	}
	if tok.Type != TokenNumber {
		return 0, NewSyntaxError("expected numeric object body", tok.Pos)
	}
	return strconv.ParseInt(tok.Value, 10, 64)
}

// parseObjectInPayload parses one object from a decoded object stream.
// Bodies inside object streams carry no obj/endobj wrapper and no streams.
func (p *Parser) parseObjectInPayload(payload []byte, offset int64) (PDFObject, error) {
	if offset < 0 || offset >= int64(len(payload)) {
		return nil, fmt.Errorf("offset %d outside payload", offset)
	}
	return p.parseObject(newTokens(payload, offset))
}

// parseDictAt parses a dictionary literal at offset
func (p *Parser) parseDictAt(offset int64) (*Dictionary, error) {
	tr := newTokens(p.data, skipSpaces(p.data, offset))
	tok, err := tr.next()
	if err != nil {
		return nil, err
	}
	if tok.Type != TokenDictStart {
		return nil, NewSyntaxError("expected dictionary", tok.Pos)
	}
	obj, err := p.parseDictionary(tr)
	if err != nil {
		return nil, err
	}
	return obj.(*Dictionary), nil
}

// parseObject parses any object form
func (p *Parser) parseObject(tr *tokens) (PDFObject, error) {
	tok, err := tr.next()
	if err != nil {
		return nil, err
	}
	return p.parseTokenAsObject(tr, tok)
}

// parseTokenAsObject converts a pre-read token into an object, consuming
// further tokens for containers and reference triples
func (p *Parser) parseTokenAsObject(tr *tokens, tok Token) (PDFObject, error) {
	tr.depth++
	defer func() { tr.depth-- }()
	if tr.depth > maxObjectDepth {
		return nil, NewSyntaxError("object nesting too deep", tok.Pos)
	}

	switch tok.Type {
	case TokenKeyword:
		switch tok.Value {
		case "null":
			return &Null{}, nil
		case "true":
			return &Bool{Value: true}, nil
		case "false":
			return &Bool{Value: false}, nil
		default:
			return &Keyword{Value: tok.Value}, nil
		}

	case TokenNumber:
		return p.parseNumberOrRef(tr, tok)

	case TokenString:
		return &String{Value: []byte(tok.Value)}, nil

	case TokenHexString:
		return &String{Value: []byte(tok.Value), IsHex: true}, nil

	case TokenName:
		return &Name{Value: tok.Value}, nil

	case TokenArrayStart:
		return p.parseArray(tr)

	case TokenDictStart:
		return p.parseDictionary(tr)

	case TokenEOF:
		return nil, NewSyntaxError("unexpected end of input", tok.Pos)

	default:
		return nil, NewSyntaxError(fmt.Sprintf("unexpected token type %s", tok.Type), tok.Pos)
	}
}

// parseNumberOrRef distinguishes "N G R" reference triples from plain
// numbers by two-token lookahead
func (p *Parser) parseNumberOrRef(tr *tokens, tok Token) (PDFObject, error) {
	num, err := parseNumberToken(tok)
	if err != nil {
		return nil, err
	}

	if _, isInt := num.Value.(int64); !isInt {
		return num, nil
	}

	second, err := tr.next()
	if err != nil || second.Type != TokenNumber || strings.Contains(second.Value, ".") {
		if err == nil {
			tr.unread(second)
		}
		return num, nil
	}

	third, err := tr.next()
	if err != nil || third.Type != TokenIndirectRef {
		if err == nil {
			tr.unread(third)
		}
		tr.unread(second)
		return num, nil
	}

	gen, err := strconv.ParseInt(second.Value, 10, 64)
	if err != nil {
		return nil, NewSyntaxError("invalid generation in reference", second.Pos)
	}
	return &IndirectRef{
		ObjectID: ObjectID{Number: num.Int(), Generation: gen},
	}, nil
}

// parseArray parses elements until the closing bracket
func (p *Parser) parseArray(tr *tokens) (PDFObject, error) {
	array := &Array{Elements: make([]PDFObject, 0, 4)}

	for {
		tok, err := tr.next()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenArrayEnd {
			return array, nil
		}
		if tok.Type == TokenEOF {
			return nil, NewSyntaxError("unterminated array", tok.Pos)
		}

		elem, err := p.parseTokenAsObject(tr, tok)
		if err != nil {
			return nil, err
		}
		array.Add(elem)
	}
}

// parseDictionary parses key/value pairs until the closing marker
func (p *Parser) parseDictionary(tr *tokens) (PDFObject, error) {
	dict := NewDictionary()

	for {
		tok, err := tr.next()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenDictEnd {
			return dict, nil
		}
		if tok.Type == TokenEOF {
			return nil, NewSyntaxError("unterminated dictionary", tok.Pos)
		}
		if tok.Type != TokenName {
			return nil, NewSyntaxError("expected name as dictionary key", tok.Pos)
		}

		value, err := p.parseObject(tr)
		if err != nil {
			return nil, fmt.Errorf("value for key /%s: %w", tok.Value, err)
		}
		dict.Set(tok.Value, value)
	}
}

func parseNumberToken(tok Token) (*Number, error) {
	if strings.Contains(tok.Value, ".") {
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, NewSyntaxError("invalid real number", tok.Pos)
		}
		return NewReal(val), nil
	}
	val, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, NewSyntaxError("invalid integer", tok.Pos)
	}
	return NewInteger(val), nil
}

// isObjBoundary checks that an obj keyword at pos stands alone
func isObjBoundary(data []byte, pos int64) bool {
	if pos == 0 || !IsWhitespace(data[pos-1]) {
		return false
	}
	end := pos + int64(len(ObjKeyword))
	if end < int64(len(data)) && IsRegular(data[end]) {
		return false
	}
	return true
}

// scanObjHeaderBackward recovers "N G" before an obj keyword at pos,
// returning the object number, generation, and header start offset
func scanObjHeaderBackward(data []byte, pos int64) (int64, int64, int64, bool) {
	i := pos - 1
	for i >= 0 && IsWhitespace(data[i]) {
		i--
	}
	genEnd := i
	for i >= 0 && data[i] >= '0' && data[i] <= '9' {
		i--
	}
	if i == genEnd {
		return 0, 0, 0, false
	}
	genStart := i + 1

	if i < 0 || !IsWhitespace(data[i]) {
		return 0, 0, 0, false
	}
	for i >= 0 && IsWhitespace(data[i]) {
		i--
	}
	numEnd := i
	for i >= 0 && data[i] >= '0' && data[i] <= '9' {
		i--
	}
	if i == numEnd {
		return 0, 0, 0, false
	}
	numStart := i + 1
	if i >= 0 && IsRegular(data[i]) {
		return 0, 0, 0, false
	}

	objNum, err := strconv.ParseInt(string(data[numStart:numEnd+1]), 10, 64)
	if err != nil {
		return 0, 0, 0, false
	}
	gen, err := strconv.ParseInt(string(data[genStart:genEnd+1]), 10, 64)
	if err != nil {
		return 0, 0, 0, false
	}
	return objNum, gen, numStart, true
}

func arrayInts(arr *Array) []int64 {
	out := make([]int64, 0, arr.Len())
	for _, elem := range arr.Elements {
		if num, ok := elem.(*Number); ok {
			out = append(out, num.Int())
		}
	}
	return out
}

func skipSpaces(buf []byte, pos int64) int64 {
	for pos < int64(len(buf)) && IsWhitespace(buf[pos]) {
		pos++
	}
	return pos
}

func scanIntAt(buf []byte, pos int64) (int64, int64, bool) {
	start := pos
	var v int64
	for pos < int64(len(buf)) && buf[pos] >= '0' && buf[pos] <= '9' {
		v = v*10 + int64(buf[pos]-'0')
		pos++
	}
	if pos == start {
		return 0, pos, false
	}
	return v, pos, true
}

func hasKeyword(buf []byte, pos int64, keyword string) bool {
	end := pos + int64(len(keyword))
	if pos < 0 || end > int64(len(buf)) {
		return false
	}
	if string(buf[pos:end]) != keyword {
		return false
	}
	if end < int64(len(buf)) && IsRegular(buf[end]) {
		return false
	}
	return true
}
