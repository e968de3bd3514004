package wrapper

import (
	"fmt"
	"io"
	"os"

	"github.com/a3tai/mcp-pdf-redactor/internal/pdf/extraction"
)

// CustomPDFLibrary implements PDFLibrary interface using custom PDF parsing
type CustomPDFLibrary struct {
	config FactoryConfig
	closed bool
}

// NewCustomPDFLibrary creates a new custom library wrapper
func NewCustomPDFLibrary(config FactoryConfig) *CustomPDFLibrary {
	return &CustomPDFLibrary{
		config: config,
		closed: false,
	}
}

// Open opens a PDF from an io.Reader
func (c *CustomPDFLibrary) Open(reader io.Reader) (PDFDocument, error) {
	if c.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "open", Err: ErrDocumentClosed.Err}
	}

	// This would use the custom PDF parser implementation
	// For now, return a placeholder implementation
	return &CustomPDFDocument{
		config: c.config,
		closed: false,
	}, nil
}

// OpenFile opens a PDF from a file path
func (c *CustomPDFLibrary) OpenFile(path string) (PDFDocument, error) {
	if c.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "open_file", Err: ErrDocumentClosed.Err}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &WrapperError{
			Library: LibraryCustom,
			Op:      "open_file",
			Err:     fmt.Errorf("failed to open file: %w", err),
		}
	}
	defer file.Close()

	// This would use the custom PDF parser implementation
	// For now, return a placeholder implementation
	return &CustomPDFDocument{
		config:   c.config,
		closed:   false,
		filePath: path,
	}, nil
}

// Validate validates the library is properly initialized
func (c *CustomPDFLibrary) Validate() error {
	if c.closed {
		return &WrapperError{Library: LibraryCustom, Op: "validate", Err: ErrDocumentClosed.Err}
	}
	return nil
}

// Close closes the library and releases resources
func (c *CustomPDFLibrary) Close() error {
	c.closed = true
	return nil
}

// GetLibraryType returns the library type
func (c *CustomPDFLibrary) GetLibraryType() LibraryType {
	return LibraryCustom
}

// GetVersion returns the custom library version
func (c *CustomPDFLibrary) GetVersion() string {
	return "custom-v1.0.0"
}

// CustomPDFDocument implements PDFDocument interface using custom PDF parsing
type CustomPDFDocument struct {
	config   FactoryConfig
	closed   bool
	filePath string
	// TODO: Add custom parser fields here
	// parser   *pdf.Parser
	// document *pdf.Document
}

// GetPageCount returns the number of pages in the document
func (d *CustomPDFDocument) GetPageCount() (int, error) {
	if d.closed {
		return 0, &WrapperError{Library: LibraryCustom, Op: "get_page_count", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement using custom parser
	return 0, &WrapperError{
		Library: LibraryCustom,
		Op:      "get_page_count",
		Err:     fmt.Errorf("not yet implemented"),
	}
}

// GetPage returns a specific page
func (d *CustomPDFDocument) GetPage(pageNum int) (PDFPage, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "get_page", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement page validation and creation
	return &CustomPDFPage{
		pageNum: pageNum,
		config:  d.config,
	}, nil
}

// GetMetadata extracts document metadata
func (d *CustomPDFDocument) GetMetadata() (*Metadata, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "get_metadata", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement metadata extraction using custom parser
	metadata := &Metadata{
		Custom: make(map[string]string),
	}

	return metadata, nil
}

// GetVersion returns the PDF version
func (d *CustomPDFDocument) GetVersion() (string, error) {
	if d.closed {
		return "", &WrapperError{Library: LibraryCustom, Op: "get_version", Err: ErrDocumentClosed.Err}
	}

	// TODO: Extract version from PDF header using custom parser
	return "1.4", nil
}

// Close closes the document
func (d *CustomPDFDocument) Close() error {
	d.closed = true
	return nil
}

// ExtractText extracts text from a specific page
func (d *CustomPDFDocument) ExtractText(pageNum int) ([]TextElement, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "extract_text", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement text extraction using custom parser
	return []TextElement{}, nil
}

// ExtractImages extracts images from a specific page
func (d *CustomPDFDocument) ExtractImages(pageNum int) ([]ImageElement, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "extract_images", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement image extraction using custom parser
	return []ImageElement{}, nil
}

// ExtractForms extracts form fields from the document
func (d *CustomPDFDocument) ExtractForms() ([]extraction.FormField, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "extract_forms", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement form extraction using custom parser
	// For now, return empty slice
	return []extraction.FormField{}, nil
}

// ExtractTables extracts tables from a specific page
func (d *CustomPDFDocument) ExtractTables(pageNum int) ([]TableElement, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "extract_tables", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement table extraction using custom parser
	return []TableElement{}, nil
}

// ExtractAnnotations extracts annotations from a specific page
func (d *CustomPDFDocument) ExtractAnnotations(pageNum int) ([]AnnotationElement, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "extract_annotations", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement annotation extraction using custom parser
	return []AnnotationElement{}, nil
}

// GetCatalog returns the PDF catalog
func (d *CustomPDFDocument) GetCatalog() (*Catalog, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "get_catalog", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement catalog extraction using custom parser
	catalog := &Catalog{
		Metadata: make(map[string]interface{}),
	}

	return catalog, nil
}

// GetContentStream returns the content stream for a page
func (d *CustomPDFDocument) GetContentStream(pageNum int) ([]byte, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "get_content_stream", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement content stream access using custom parser
	return nil, &WrapperError{
		Library: LibraryCustom,
		Op:      "get_content_stream",
		Err:     fmt.Errorf("not yet implemented"),
	}
}

// GetPageResources returns resources for a specific page
func (d *CustomPDFDocument) GetPageResources(pageNum int) (*Resources, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryCustom, Op: "get_page_resources", Err: ErrDocumentClosed.Err}
	}

	// TODO: Implement page resource extraction using custom parser
	return &Resources{}, nil
}

// IsEncrypted checks if the document is encrypted
func (d *CustomPDFDocument) IsEncrypted() bool {
	// TODO: Implement encryption detection using custom parser
	return false
}

// RequiresPassword checks if the document requires a password
func (d *CustomPDFDocument) RequiresPassword() bool {
	// TODO: Implement password requirement detection
	return false
}

// ValidatePassword validates a password for encrypted documents
func (d *CustomPDFDocument) ValidatePassword(password string) error {
	// TODO: Implement password validation using custom parser
	return &WrapperError{
		Library: LibraryCustom,
		Op:      "validate_password",
		Err:     fmt.Errorf("not yet implemented"),
	}
}

// CustomPDFPage implements PDFPage interface using custom PDF parsing
type CustomPDFPage struct {
	pageNum int
	config  FactoryConfig
	// TODO: Add custom page fields here
	// page *pdf.Page
}

// GetNumber returns the page number
func (p *CustomPDFPage) GetNumber() int {
	return p.pageNum
}

// GetSize returns the page size
func (p *CustomPDFPage) GetSize() (*PageSize, error) {
	// TODO: Implement page size extraction using custom parser
	return &PageSize{
		Width:  612.0, // Default US Letter width
		Height: 792.0, // Default US Letter height
		Unit:   "pt",
	}, nil
}

// GetContent returns the page content stream
func (p *CustomPDFPage) GetContent() ([]byte, error) {
	// TODO: Implement content stream access using custom parser
	return nil, &WrapperError{
		Library: LibraryCustom,
		Op:      "get_content",
		Err:     fmt.Errorf("not yet implemented"),
	}
}

// GetResources returns the page resources
func (p *CustomPDFPage) GetResources() (*Resources, error) {
	// TODO: Implement resource extraction using custom parser
	return &Resources{}, nil
}

// GetAnnotations returns annotations on this page
func (p *CustomPDFPage) GetAnnotations() ([]AnnotationElement, error) {
	// TODO: Implement annotation extraction using custom parser
	return []AnnotationElement{}, nil
}

// GetText returns text elements on this page
func (p *CustomPDFPage) GetText() ([]TextElement, error) {
	// TODO: Implement text extraction using custom parser
	return []TextElement{}, nil
}

// GetImages returns image elements on this page
func (p *CustomPDFPage) GetImages() ([]ImageElement, error) {
	// TODO: Implement image extraction using custom parser
	return []ImageElement{}, nil
}
