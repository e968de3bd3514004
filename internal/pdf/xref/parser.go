package xref

import (
	"fmt"
	"sort"
)

// Entry is one resolved cross-reference entry
type Entry struct {
	Type        EntryType
	Offset      int64 // byte offset for EntryInUse, object stream number for EntryCompressed
	Generation  int
	StreamIndex int // index within the object stream for EntryCompressed
}

// EntryType represents the type of cross-reference entry
type EntryType int

const (
	EntryFree EntryType = iota
	EntryInUse
	EntryCompressed
)

func (t EntryType) String() string {
	switch t {
	case EntryFree:
		return "free"
	case EntryInUse:
		return "in-use"
	case EntryCompressed:
		return "compressed"
	default:
		return "unknown"
	}
}

// Table is the merged cross-reference view across all sections of a file.
// Sections are added newest first, so the first entry seen for an object
// number wins; later (older) sections only fill gaps. Free entries are
// recorded so a deletion in a newer section shadows the older object.
type Table struct {
	entries map[int]*Entry
	maxObj  int
}

// NewTable creates an empty cross-reference table
func NewTable() *Table {
	return &Table{entries: make(map[int]*Entry)}
}

// Add records an entry for objNum unless a newer section already defined it
func (t *Table) Add(objNum int, e *Entry) {
	if objNum < 0 || e == nil {
		return
	}
	if _, exists := t.entries[objNum]; exists {
		return
	}
	t.entries[objNum] = e
	if objNum > t.maxObj {
		t.maxObj = objNum
	}
}

// Entry returns the winning entry for objNum, or nil
func (t *Table) Entry(objNum int) *Entry {
	return t.entries[objNum]
}

// Has reports whether objNum has an entry of any type
func (t *Table) Has(objNum int) bool {
	_, exists := t.entries[objNum]
	return exists
}

// Len returns the number of recorded entries
func (t *Table) Len() int {
	return len(t.entries)
}

// MaxObjectNumber returns the highest object number seen
func (t *Table) MaxObjectNumber() int {
	return t.maxObj
}

// ObjectNumbers returns all recorded object numbers in ascending order
func (t *Table) ObjectNumbers() []int {
	numbers := make([]int, 0, len(t.entries))
	for objNum := range t.entries {
		numbers = append(numbers, objNum)
	}
	sort.Ints(numbers)
	return numbers
}

// LoadedNumbers returns the object numbers that resolve to content, in
// ascending order. Free entries are excluded.
func (t *Table) LoadedNumbers() []int {
	numbers := make([]int, 0, len(t.entries))
	for objNum, e := range t.entries {
		if e.Type != EntryFree {
			numbers = append(numbers, objNum)
		}
	}
	sort.Ints(numbers)
	return numbers
}

// ParseSection parses one classic cross-reference table beginning at offset
// in buf, adding its entries to table. It returns the offset of the first
// byte after the trailer keyword, where the trailer dictionary starts.
func ParseSection(buf []byte, offset int64, table *Table) (int64, error) {
	pos := skipSpace(buf, offset)
	if !hasKeywordAt(buf, pos, "xref") {
		return 0, fmt.Errorf("no xref keyword at offset %d", pos)
	}
	pos = skipSpace(buf, pos+4)

	for {
		if hasKeywordAt(buf, pos, "trailer") {
			return pos + int64(len("trailer")), nil
		}

		start, next, ok := scanInt(buf, pos)
		if !ok {
			return 0, fmt.Errorf("invalid subsection header at offset %d", pos)
		}
		count, next, ok := scanInt(buf, skipSpace(buf, next))
		if !ok {
			return 0, fmt.Errorf("invalid subsection count at offset %d", pos)
		}
		pos = skipSpace(buf, next)

		for i := int64(0); i < count; i++ {
			entry, next, err := scanEntry(buf, pos)
			if err != nil {
				return 0, fmt.Errorf("entry %d of subsection %d: %w", i, start, err)
			}
			table.Add(int(start+i), entry)
			pos = skipSpace(buf, next)
		}
	}
}

// scanEntry parses one 20-byte style entry: offset, generation, flag
func scanEntry(buf []byte, pos int64) (*Entry, int64, error) {
	offset, next, ok := scanInt(buf, pos)
	if !ok {
		return nil, 0, fmt.Errorf("invalid offset at %d", pos)
	}
	gen, next, ok := scanInt(buf, skipSpace(buf, next))
	if !ok {
		return nil, 0, fmt.Errorf("invalid generation at %d", pos)
	}
	next = skipSpace(buf, next)
	if next >= int64(len(buf)) {
		return nil, 0, fmt.Errorf("truncated entry at %d", pos)
	}

	entry := &Entry{Offset: offset, Generation: int(gen)}
	switch buf[next] {
	case 'n':
		entry.Type = EntryInUse
	case 'f':
		entry.Type = EntryFree
	default:
		return nil, 0, fmt.Errorf("unknown entry flag %q at %d", buf[next], next)
	}
	return entry, next + 1, nil
}

// DecodeStreamEntries decodes the binary entry rows of a cross-reference
// stream into table. w holds the three field widths from /W and index holds
// the flattened (start, count) pairs from /Index.
func DecodeStreamEntries(w []int64, index []int64, payload []byte, table *Table) error {
	if len(w) < 3 {
		return fmt.Errorf("W array needs 3 field widths, got %d", len(w))
	}
	if len(index)%2 != 0 {
		return fmt.Errorf("Index array needs start/count pairs, got %d values", len(index))
	}
	for _, width := range w {
		if width < 0 || width > 8 {
			return fmt.Errorf("unreasonable field width %d", width)
		}
	}

	rowLen := int(w[0] + w[1] + w[2])
	if rowLen == 0 {
		return fmt.Errorf("zero-width entry rows")
	}

	pos := 0
	for pair := 0; pair+1 < len(index); pair += 2 {
		start, count := index[pair], index[pair+1]
		for i := int64(0); i < count; i++ {
			if pos+rowLen > len(payload) {
				return fmt.Errorf("entry rows truncated at object %d", start+i)
			}
			row := payload[pos : pos+rowLen]
			pos += rowLen

			entryType := int64(1) // a zero-width type field defaults to in-use
			cursor := 0
			if w[0] > 0 {
				entryType = bigEndian(row[:w[0]])
				cursor = int(w[0])
			}
			field2 := bigEndian(row[cursor : cursor+int(w[1])])
			field3 := bigEndian(row[cursor+int(w[1]):])

			entry := &Entry{}
			switch entryType {
			case 0:
				entry.Type = EntryFree
				entry.Offset = field2
				entry.Generation = int(field3)
			case 1:
				entry.Type = EntryInUse
				entry.Offset = field2
				entry.Generation = int(field3)
			case 2:
				entry.Type = EntryCompressed
				entry.Offset = field2
				entry.StreamIndex = int(field3)
			default:
				// Reserved types read as free so newer writers stay readable
				entry.Type = EntryFree
			}
			table.Add(int(start+i), entry)
		}
	}
	return nil
}

func bigEndian(b []byte) int64 {
	var v int64
	for _, by := range b {
		v = v<<8 | int64(by)
	}
	return v
}

func skipSpace(buf []byte, pos int64) int64 {
	for pos < int64(len(buf)) && isSpace(buf[pos]) {
		pos++
	}
	return pos
}

func isSpace(b byte) bool {
	switch b {
	case '\x00', '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func hasKeywordAt(buf []byte, pos int64, keyword string) bool {
	end := pos + int64(len(keyword))
	if pos < 0 || end > int64(len(buf)) {
		return false
	}
	if string(buf[pos:end]) != keyword {
		return false
	}
	// The keyword must not run on into further regular characters
	if end < int64(len(buf)) {
		next := buf[end]
		if !isSpace(next) && next != '<' && next != '%' {
			return false
		}
	}
	return true
}

func scanInt(buf []byte, pos int64) (int64, int64, bool) {
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
