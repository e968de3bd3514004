package custom

import (
	"fmt"

	"github.com/a3tai/mcp-pdf-redactor/internal/pdf/errors"
)

// maxPageTreeDepth bounds page tree recursion; real trees are shallow
const maxPageTreeDepth = 64

// maxResolveHops bounds reference-to-reference chains
const maxResolveHops = 64

// Document is a fully loaded file: every indirect object in memory, the
// merged trailer, and the flattened page list with inherited attributes
// resolved. A document belongs to one goroutine at a time; nothing here
// locks.
type Document struct {
	Version string
	Objects map[int64]*IndirectObject
	Trailer *Dictionary
	Catalog *Dictionary
	Pages   []*Page
	Notes   []string

	maxObj int64
}

// Page is one leaf of the page tree
type Page struct {
	Number    int      // 1-based position in document order
	Ref       ObjectID // object identity of the page dictionary
	Dict      *Dictionary
	Resources *Dictionary // effective resources after inheritance
	MediaBox  [4]float64  // effective media box, normalized llx lly urx ury
	Rotate    int
}

// ParseDocument parses raw file bytes into a Document. Errors carry the
// parse error taxonomy.
func ParseDocument(data []byte) (*Document, error) {
	parser := NewParser(data)
	if err := parser.Parse(); err != nil {
		return nil, err
	}

	doc := &Document{
		Version: parser.Version(),
		Objects: parser.Objects(),
		Trailer: parser.Trailer(),
		Notes:   parser.Notes(),
	}
	for num := range doc.Objects {
		if num > doc.maxObj {
			doc.maxObj = num
		}
	}

	catalog, ok := doc.ResolveDict(doc.Trailer.Get("Root"))
	if !ok {
		return nil, errors.NewParseError(errors.ParseMalformed, "catalog is not a dictionary")
	}
	doc.Catalog = catalog

	if err := doc.buildPages(); err != nil {
		return nil, err
	}
	if len(doc.Pages) == 0 {
		return nil, errors.NewParseError(errors.ParseMalformed, "document has no pages")
	}
	return doc, nil
}

// Resolve follows indirect references until a direct object is reached.
// Unresolvable references and reference loops yield null.
func (d *Document) Resolve(obj PDFObject) PDFObject {
	for hops := 0; hops < maxResolveHops; hops++ {
		ref, ok := obj.(*IndirectRef)
		if !ok {
			return obj
		}
		io, ok := d.Objects[ref.ObjectID.Number]
		if !ok {
			return &Null{}
		}
		obj = io.Object
	}
	return &Null{}
}

// ResolveDict resolves obj and returns it as a dictionary
func (d *Document) ResolveDict(obj PDFObject) (*Dictionary, bool) {
	dict, ok := d.Resolve(obj).(*Dictionary)
	return dict, ok
}

// ResolveStream resolves obj and returns it as a stream
func (d *Document) ResolveStream(obj PDFObject) (*Stream, bool) {
	stream, ok := d.Resolve(obj).(*Stream)
	return stream, ok
}

// ResolveArray resolves obj and returns it as an array
func (d *Document) ResolveArray(obj PDFObject) (*Array, bool) {
	arr, ok := d.Resolve(obj).(*Array)
	return arr, ok
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// GetPage returns the 1-based page
func (d *Document) GetPage(number int) (*Page, error) {
	if number < 1 || number > len(d.Pages) {
		return nil, fmt.Errorf("page %d out of range 1..%d", number, len(d.Pages))
	}
	return d.Pages[number-1], nil
}

// Info returns the resolved document information dictionary, or nil
func (d *Document) Info() *Dictionary {
	if d.Trailer == nil || !d.Trailer.Has("Info") {
		return nil
	}
	if dict, ok := d.ResolveDict(d.Trailer.Get("Info")); ok {
		return dict
	}
	return nil
}

// MaxObjectNumber returns the highest object number in use
func (d *Document) MaxObjectNumber() int64 {
	return d.maxObj
}

// AddObject stores obj under a fresh object number and returns its identity
func (d *Document) AddObject(obj PDFObject) ObjectID {
	d.maxObj++
	id := ObjectID{Number: d.maxObj, Generation: 0}
	d.Objects[id.Number] = &IndirectObject{ID: id, Object: obj}
	return id
}

// SetObject replaces the object stored under id.Number
func (d *Document) SetObject(id ObjectID, obj PDFObject) {
	d.Objects[id.Number] = &IndirectObject{ID: id, Object: obj}
	if id.Number > d.maxObj {
		d.maxObj = id.Number
	}
}

// inheritedAttrs carries the attributes page-tree nodes pass to children
type inheritedAttrs struct {
	resources *Dictionary
	mediaBox  *[4]float64
	rotate    *int
}

// buildPages flattens the page tree depth first. Nodes revisit protection
// keeps a malformed tree with a Kids cycle from looping.
func (d *Document) buildPages() error {
	pagesObj := d.Catalog.Get("Pages")
	rootRef, _ := pagesObj.(*IndirectRef)
	root, ok := d.ResolveDict(pagesObj)
	if !ok {
		return errors.NewParseError(errors.ParseMalformed, "catalog Pages is not a dictionary")
	}

	visited := make(map[int64]bool)
	if rootRef != nil {
		visited[rootRef.ObjectID.Number] = true
	}

	var rootID ObjectID
	if rootRef != nil {
		rootID = rootRef.ObjectID
	}
	if err := d.walkPageNode(rootID, root, inheritedAttrs{}, visited, 0); err != nil {
		return err
	}
	return nil
}

func (d *Document) walkPageNode(ref ObjectID, node *Dictionary, inh inheritedAttrs, visited map[int64]bool, depth int) error {
	if depth > maxPageTreeDepth {
		return errors.NewParseError(errors.ParseMalformed, "page tree nesting too deep")
	}

	inh = d.mergeInherited(node, inh)

	nodeType := node.GetName("Type")
	isLeaf := nodeType == "Page" || (nodeType == "" && !node.Has("Kids"))
	if isLeaf {
		d.appendPage(ref, node, inh)
		return nil
	}

	kids, ok := d.ResolveArray(node.Get("Kids"))
	if !ok {
		d.Notes = append(d.Notes, fmt.Sprintf("page tree node %s has no usable Kids", ref))
		return nil
	}

	for _, kid := range kids.Elements {
		kidRef, isRef := kid.(*IndirectRef)
		var kidID ObjectID
		if isRef {
			kidID = kidRef.ObjectID
			if visited[kidID.Number] {
				d.Notes = append(d.Notes, fmt.Sprintf("page tree cycle at object %d skipped", kidID.Number))
				continue
			}
			visited[kidID.Number] = true
		}

		kidDict, ok := d.ResolveDict(kid)
		if !ok {
			d.Notes = append(d.Notes, "page tree kid is not a dictionary, skipped")
			continue
		}
		if err := d.walkPageNode(kidID, kidDict, inh, visited, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// mergeInherited overlays a node's own inheritable attributes
func (d *Document) mergeInherited(node *Dictionary, inh inheritedAttrs) inheritedAttrs {
	if node.Has("Resources") {
		if res, ok := d.ResolveDict(node.Get("Resources")); ok {
			inh.resources = res
		}
	}
	if node.Has("MediaBox") {
		if box, ok := d.resolveRect(node.Get("MediaBox")); ok {
			inh.mediaBox = &box
		}
	}
	if node.Has("Rotate") {
		if num, ok := d.Resolve(node.Get("Rotate")).(*Number); ok {
			rot := int(num.Int()) % 360
			if rot < 0 {
				rot += 360
			}
			inh.rotate = &rot
		}
	}
	return inh
}

func (d *Document) appendPage(ref ObjectID, dict *Dictionary, inh inheritedAttrs) {
	page := &Page{
		Number: len(d.Pages) + 1,
		Ref:    ref,
		Dict:   dict,
	}

	if inh.resources != nil {
		page.Resources = inh.resources
	} else {
		page.Resources = NewDictionary()
		d.Notes = append(d.Notes, fmt.Sprintf("page %d has no resources", page.Number))
	}

	if inh.mediaBox != nil {
		page.MediaBox = *inh.mediaBox
	} else {
		page.MediaBox = [4]float64{0, 0, 612, 792}
	}

	if inh.rotate != nil {
		page.Rotate = *inh.rotate
	}

	d.Pages = append(d.Pages, page)
}

// resolveRect reads a rectangle array into normalized corners
func (d *Document) resolveRect(obj PDFObject) ([4]float64, bool) {
	arr, ok := d.ResolveArray(obj)
	if !ok || arr.Len() < 4 {
		return [4]float64{}, false
	}

	var vals [4]float64
	for i := 0; i < 4; i++ {
		num, ok := d.Resolve(arr.Get(i)).(*Number)
		if !ok {
			return [4]float64{}, false
		}
		vals[i] = num.Float()
	}

	if vals[0] > vals[2] {
		vals[0], vals[2] = vals[2], vals[0]
	}
	if vals[1] > vals[3] {
		vals[1], vals[3] = vals[3], vals[1]
	}
	return vals, true
}

// ContentStreamRefs returns the page's content stream identities in order.
// A single stream, an array of streams, or no content at all are all legal
// shapes.
func (d *Document) ContentStreamRefs(page *Page) []ObjectID {
	contents := page.Dict.Get("Contents")
	switch obj := contents.(type) {
	case *IndirectRef:
		return []ObjectID{obj.ObjectID}
	case *Array:
		refs := make([]ObjectID, 0, obj.Len())
		for _, elem := range obj.Elements {
			if ref, ok := elem.(*IndirectRef); ok {
				refs = append(refs, ref.ObjectID)
			}
		}
		return refs
	default:
		if arr, ok := d.ResolveArray(contents); ok {
			refs := make([]ObjectID, 0, arr.Len())
			for _, elem := range arr.Elements {
				if ref, ok := elem.(*IndirectRef); ok {
					refs = append(refs, ref.ObjectID)
				}
			}
			return refs
		}
		return nil
	}
}

// PageContent decodes and concatenates the page's content streams. Streams
// are joined with a newline since operators may not straddle stream
// boundaries but whitespace between them is not guaranteed.
func (d *Document) PageContent(page *Page) ([]byte, error) {
	refs := d.ContentStreamRefs(page)
	if len(refs) == 0 {
		return nil, nil
	}

	var out []byte
	for _, ref := range refs {
		stream, ok := d.ResolveStream(&IndirectRef{ObjectID: ref})
		if !ok {
			return nil, fmt.Errorf("content stream %s missing", ref)
		}
		decoded, err := DecodeStream(stream)
		if err != nil {
			return nil, fmt.Errorf("content stream %s: %w", ref, err)
		}
		if len(out) > 0 {
			out = append(out, '\n')
		}
		out = append(out, decoded...)
	}
	return out, nil
}
