package custom

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ObjectType represents the type of a PDF object
type ObjectType int

const (
	TypeNull ObjectType = iota
	TypeBool
	TypeNumber
	TypeString
	TypeName
	TypeArray
	TypeDictionary
	TypeStream
	TypeIndirectRef
	TypeKeyword
)

func (t ObjectType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeName:
		return "name"
	case TypeArray:
		return "array"
	case TypeDictionary:
		return "dictionary"
	case TypeStream:
		return "stream"
	case TypeIndirectRef:
		return "indirect_ref"
	case TypeKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// PDFObject is the base interface for all PDF objects
type PDFObject interface {
	Type() ObjectType
	String() string
}

// ObjectID represents a PDF object identifier
type ObjectID struct {
	Number     int64 // Object number
	Generation int64 // Generation number
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%d %d", id.Number, id.Generation)
}

func (id ObjectID) IsValid() bool {
	return id.Number > 0 && id.Generation >= 0
}

// Null represents a PDF null object
type Null struct{}

func (n *Null) Type() ObjectType { return TypeNull }
func (n *Null) String() string   { return "null" }

// Bool represents a PDF boolean object
type Bool struct {
	Value bool
}

func (b *Bool) Type() ObjectType { return TypeBool }
func (b *Bool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Number represents a PDF numeric object (integer or real)
type Number struct {
	Value interface{} // int64 or float64
}

// NewInteger creates an integer Number
func NewInteger(v int64) *Number {
	return &Number{Value: v}
}

// NewReal creates a real Number
func NewReal(v float64) *Number {
	return &Number{Value: v}
}

func (n *Number) Type() ObjectType { return TypeNumber }
func (n *Number) String() string {
	switch v := n.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return "0"
	}
}

func (n *Number) Int() int64 {
	switch v := n.Value.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func (n *Number) Float() float64 {
	switch v := n.Value.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0.0
	}
}

// String represents a PDF string object. Value holds the decoded raw bytes:
// escape sequences resolved for literal strings, hex pairs resolved for hex
// strings. Text-show operands depend on this being byte-exact.
type String struct {
	Value []byte
	IsHex bool // original form was <...> rather than (...)
}

func (s *String) Type() ObjectType { return TypeString }
func (s *String) String() string {
	if s.IsHex {
		return "<" + strings.ToUpper(hex.EncodeToString(s.Value)) + ">"
	}
	return "(" + string(s.Value) + ")"
}

// Text returns the string bytes as a Go string
func (s *String) Text() string {
	return string(s.Value)
}

// Name represents a PDF name object
type Name struct {
	Value string
}

func (n *Name) Type() ObjectType { return TypeName }
func (n *Name) String() string   { return "/" + n.Value }

// Array represents a PDF array object
type Array struct {
	Elements []PDFObject
}

// NewArray creates an array from the given elements
func NewArray(elems ...PDFObject) *Array {
	return &Array{Elements: elems}
}

func (a *Array) Type() ObjectType { return TypeArray }
func (a *Array) String() string {
	var parts []string
	for _, elem := range a.Elements {
		parts = append(parts, elem.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (a *Array) Len() int {
	return len(a.Elements)
}

func (a *Array) Get(index int) PDFObject {
	if index >= 0 && index < len(a.Elements) {
		return a.Elements[index]
	}
	return &Null{}
}

func (a *Array) Add(obj PDFObject) {
	a.Elements = append(a.Elements, obj)
}

// GetNumber returns the element at index as a float, or 0 if absent
func (a *Array) GetNumber(index int) float64 {
	if obj := a.Get(index); obj.Type() == TypeNumber {
		return obj.(*Number).Float()
	}
	return 0.0
}

// Dictionary represents a PDF dictionary object
type Dictionary struct {
	Keys   []Name // Maintains insertion order
	Values map[string]PDFObject
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		Keys:   make([]Name, 0),
		Values: make(map[string]PDFObject),
	}
}

func (d *Dictionary) Type() ObjectType { return TypeDictionary }
func (d *Dictionary) String() string {
	var parts []string
	for _, key := range d.Keys {
		value := d.Values[key.Value]
		parts = append(parts, key.String()+" "+value.String())
	}
	return "<<" + strings.Join(parts, " ") + ">>"
}

func (d *Dictionary) Get(key string) PDFObject {
	if obj, exists := d.Values[key]; exists {
		return obj
	}
	return &Null{}
}

func (d *Dictionary) Set(key string, value PDFObject) {
	if _, exists := d.Values[key]; !exists {
		d.Keys = append(d.Keys, Name{Value: key})
	}
	d.Values[key] = value
}

func (d *Dictionary) Has(key string) bool {
	_, exists := d.Values[key]
	return exists
}

func (d *Dictionary) Remove(key string) {
	if _, exists := d.Values[key]; exists {
		delete(d.Values, key)
		for i, k := range d.Keys {
			if k.Value == key {
				d.Keys = append(d.Keys[:i], d.Keys[i+1:]...)
				break
			}
		}
	}
}

func (d *Dictionary) Len() int {
	return len(d.Keys)
}

// Convenience methods for common types
func (d *Dictionary) GetString(key string) string {
	if obj := d.Get(key); obj.Type() == TypeString {
		return obj.(*String).Text()
	}
	return ""
}

func (d *Dictionary) GetInt(key string) int64 {
	if obj := d.Get(key); obj.Type() == TypeNumber {
		return obj.(*Number).Int()
	}
	return 0
}

func (d *Dictionary) GetFloat(key string) float64 {
	if obj := d.Get(key); obj.Type() == TypeNumber {
		return obj.(*Number).Float()
	}
	return 0.0
}

func (d *Dictionary) GetBool(key string) bool {
	if obj := d.Get(key); obj.Type() == TypeBool {
		return obj.(*Bool).Value
	}
	return false
}

func (d *Dictionary) GetName(key string) string {
	if obj := d.Get(key); obj.Type() == TypeName {
		return obj.(*Name).Value
	}
	return ""
}

func (d *Dictionary) GetArray(key string) *Array {
	if obj := d.Get(key); obj.Type() == TypeArray {
		return obj.(*Array)
	}
	return &Array{}
}

func (d *Dictionary) GetDictionary(key string) *Dictionary {
	if obj := d.Get(key); obj.Type() == TypeDictionary {
		return obj.(*Dictionary)
	}
	return NewDictionary()
}

// Stream represents a PDF stream object. Data holds the payload exactly as it
// appears in the file, still encoded by whatever filters Dict declares; the
// unmodified path round-trips byte-for-byte. Mutations replace Data with
// plain bytes and must strip Filter/DecodeParms from Dict.
type Stream struct {
	Dict   *Dictionary
	Data   []byte
	Offset int64 // File offset where stream data starts
	Length int64 // Length of stream data
}

func (s *Stream) Type() ObjectType { return TypeStream }
func (s *Stream) String() string {
	return fmt.Sprintf("%s\nstream\n[%d bytes]\nendstream", s.Dict.String(), len(s.Data))
}

func (s *Stream) GetFilter() []string {
	filterObj := s.Dict.Get("Filter")
	if filterObj.Type() == TypeNull {
		return nil
	}

	var filters []string
	if filterObj.Type() == TypeName {
		filters = append(filters, filterObj.(*Name).Value)
	} else if filterObj.Type() == TypeArray {
		arr := filterObj.(*Array)
		for _, elem := range arr.Elements {
			if elem.Type() == TypeName {
				filters = append(filters, elem.(*Name).Value)
			}
		}
	}
	return filters
}

func (s *Stream) GetLength() int64 {
	if s.Length > 0 {
		return s.Length
	}
	lengthObj := s.Dict.Get("Length")
	if lengthObj.Type() == TypeNumber {
		return lengthObj.(*Number).Int()
	}
	return int64(len(s.Data))
}

// SetData replaces the stream payload with plain, unfiltered bytes. The
// filter chain and any decode parameters are dropped and Length is updated
// so the dictionary stays consistent with the new payload.
func (s *Stream) SetData(data []byte) {
	s.Data = data
	s.Length = int64(len(data))
	s.Dict.Remove("Filter")
	s.Dict.Remove("DecodeParms")
	s.Dict.Remove("DP")
	s.Dict.Set("Length", NewInteger(int64(len(data))))
}

// IndirectRef represents an indirect object reference
type IndirectRef struct {
	ObjectID ObjectID
}

func (r *IndirectRef) Type() ObjectType { return TypeIndirectRef }
func (r *IndirectRef) String() string   { return fmt.Sprintf("%s R", r.ObjectID.String()) }

// Keyword represents a PDF keyword/operator
type Keyword struct {
	Value string
}

func (k *Keyword) Type() ObjectType { return TypeKeyword }
func (k *Keyword) String() string   { return k.Value }

// XRefEntry represents an entry in the cross-reference table
type XRefEntry struct {
	ObjectID  ObjectID
	Offset    int64    // File offset of the object
	InUse     bool     // Whether the object is in use
	EntryType XRefType // Type of xref entry (normal, compressed, free)
	StreamNum int64    // For compressed objects, the object stream number
	StreamIdx int64    // For compressed objects, the index within the stream
}

// XRefType represents the type of cross-reference entry
type XRefType int

const (
	XRefTypeFree XRefType = iota
	XRefTypeNormal
	XRefTypeCompressed
)

func (t XRefType) String() string {
	switch t {
	case XRefTypeFree:
		return "free"
	case XRefTypeNormal:
		return "normal"
	case XRefTypeCompressed:
		return "compressed"
	default:
		return "unknown"
	}
}

// CrossReferenceTable represents the PDF cross-reference table
type CrossReferenceTable struct {
	Entries map[ObjectID]*XRefEntry
	MaxObj  int64 // Highest object number
}

func NewCrossReferenceTable() *CrossReferenceTable {
	return &CrossReferenceTable{
		Entries: make(map[ObjectID]*XRefEntry),
		MaxObj:  0,
	}
}

func (xref *CrossReferenceTable) AddEntry(entry *XRefEntry) {
	xref.Entries[entry.ObjectID] = entry
	if entry.ObjectID.Number > xref.MaxObj {
		xref.MaxObj = entry.ObjectID.Number
	}
}

func (xref *CrossReferenceTable) GetEntry(objID ObjectID) *XRefEntry {
	return xref.Entries[objID]
}

func (xref *CrossReferenceTable) HasEntry(objID ObjectID) bool {
	_, exists := xref.Entries[objID]
	return exists
}

func (xref *CrossReferenceTable) Count() int {
	return len(xref.Entries)
}

// IndirectObject represents an indirect object with its ID and content
type IndirectObject struct {
	ID     ObjectID
	Object PDFObject
}

func (o *IndirectObject) String() string {
	return fmt.Sprintf("%s obj\n%s\nendobj", o.ID.String(), o.Object.String())
}

// SyntaxError reports a low-level lexical or structural failure with its
// byte position. The parser wraps these into the redaction error taxonomy.
type SyntaxError struct {
	Message  string
	Position int64
	Context  string
}

func (e *SyntaxError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("PDF syntax error at position %d: %s", e.Position, e.Message)
	}
	return fmt.Sprintf("PDF syntax error: %s", e.Message)
}

func NewSyntaxError(msg string, pos int64) *SyntaxError {
	return &SyntaxError{
		Message:  msg,
		Position: pos,
	}
}

func NewSyntaxErrorWithContext(msg string, pos int64, context string) *SyntaxError {
	return &SyntaxError{
		Message:  msg,
		Position: pos,
		Context:  context,
	}
}

// Constants for PDF parsing
const (
	PDFHeaderPattern = "%PDF-"

	ObjKeyword       = "obj"
	EndObjKeyword    = "endobj"
	StreamKeyword    = "stream"
	EndStreamKeyword = "endstream"
	XRefKeyword      = "xref"
	TrailerKeyword   = "trailer"
	StartXRefKeyword = "startxref"

	// PDF whitespace characters
	NullChar           = '\000'
	TabChar            = '\t'
	LineFeedChar       = '\n'
	FormFeedChar       = '\f'
	CarriageReturnChar = '\r'
	SpaceChar          = ' '

	// PDF delimiters
	LeftParen   = '('
	RightParen  = ')'
	LeftAngle   = '<'
	RightAngle  = '>'
	LeftSquare  = '['
	RightSquare = ']'
	LeftCurly   = '{'
	RightCurly  = '}'
	Solidus     = '/'
	PercentSign = '%'
)

// IsWhitespace checks if a character is PDF whitespace
func IsWhitespace(ch byte) bool {
	return ch == NullChar || ch == TabChar || ch == LineFeedChar ||
		ch == FormFeedChar || ch == CarriageReturnChar || ch == SpaceChar
}

// IsDelimiter checks if a character is a PDF delimiter
func IsDelimiter(ch byte) bool {
	return ch == LeftParen || ch == RightParen || ch == LeftAngle || ch == RightAngle ||
		ch == LeftSquare || ch == RightSquare || ch == LeftCurly || ch == RightCurly ||
		ch == Solidus || ch == PercentSign
}

// IsRegular checks if a character is a regular character (not whitespace or delimiter)
func IsRegular(ch byte) bool {
	return !IsWhitespace(ch) && !IsDelimiter(ch)
}
