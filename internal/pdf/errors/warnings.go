package errors

import "fmt"

// WarningKind categorizes non-fatal conditions recorded during redaction
type WarningKind int

const (
	WarningUnknown WarningKind = iota

	// WarningUnresolvableFontEncoding records a font whose encoding could
	// not be mapped to Unicode; its text is skipped rather than failing the
	// document.
	WarningUnresolvableFontEncoding

	// WarningOverlappingMatchSkipped records a match span skipped because an
	// earlier-starting span on the same page already claimed its operators.
	WarningOverlappingMatchSkipped

	// WarningPageRewriteSkipped records a page whose content stream could
	// not be safely rewritten; its original stream is kept and its matches
	// dropped.
	WarningPageRewriteSkipped
)

// String returns the string representation of the WarningKind
func (k WarningKind) String() string {
	switch k {
	case WarningUnresolvableFontEncoding:
		return "UNRESOLVABLE_FONT_ENCODING"
	case WarningOverlappingMatchSkipped:
		return "OVERLAPPING_MATCH_SKIPPED"
	case WarningPageRewriteSkipped:
		return "PAGE_REWRITE_SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// Warning is a non-fatal condition attached to an otherwise successful
// redaction. Warnings never abort processing.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Page    int         `json:"page,omitempty"`
	Subject string      `json:"subject,omitempty"`
	Message string      `json:"message"`
}

// String renders the warning for logs and result payloads
func (w Warning) String() string {
	switch {
	case w.Page > 0 && w.Subject != "":
		return fmt.Sprintf("[%s] page %d, %s: %s", w.Kind.String(), w.Page, w.Subject, w.Message)
	case w.Page > 0:
		return fmt.Sprintf("[%s] page %d: %s", w.Kind.String(), w.Page, w.Message)
	case w.Subject != "":
		return fmt.Sprintf("[%s] %s: %s", w.Kind.String(), w.Subject, w.Message)
	default:
		return fmt.Sprintf("[%s] %s", w.Kind.String(), w.Message)
	}
}

// NewWarning creates a Warning of the given kind
func NewWarning(kind WarningKind, message string) Warning {
	return Warning{
		Kind:    kind,
		Message: message,
	}
}

// OnPage records the 1-based page the warning applies to
func (w Warning) OnPage(page int) Warning {
	w.Page = page
	return w
}

// About records the resource or phrase the warning concerns
func (w Warning) About(subject string) Warning {
	w.Subject = subject
	return w
}

// Warnings collects warnings raised across one file's pipeline run
type Warnings struct {
	Items []Warning `json:"items"`
}

// NewWarnings creates an empty warnings collection
func NewWarnings() *Warnings {
	return &Warnings{Items: make([]Warning, 0)}
}

// Add appends a warning to the collection
func (ws *Warnings) Add(w Warning) {
	ws.Items = append(ws.Items, w)
}

// Addf appends a warning built from a format string
func (ws *Warnings) Addf(kind WarningKind, format string, args ...interface{}) {
	ws.Add(NewWarning(kind, fmt.Sprintf(format, args...)))
}

// Merge appends every warning from other
func (ws *Warnings) Merge(other *Warnings) {
	if other == nil {
		return
	}
	ws.Items = append(ws.Items, other.Items...)
}

// Count returns the number of collected warnings
func (ws *Warnings) Count() int {
	return len(ws.Items)
}

// CountKind returns the number of collected warnings of the given kind
func (ws *Warnings) CountKind(kind WarningKind) int {
	n := 0
	for _, w := range ws.Items {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Strings renders every warning, in insertion order
func (ws *Warnings) Strings() []string {
	out := make([]string, 0, len(ws.Items))
	for _, w := range ws.Items {
		out = append(out, w.String())
	}
	return out
}
