package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorFormatting(t *testing.T) {
	t.Run("malformed without detail", func(t *testing.T) {
		err := NewParseError(ParseMalformed, "startxref not found")
		assert.Equal(t, "[MALFORMED] startxref not found", err.Error())
	})

	t.Run("unsupported with detail", func(t *testing.T) {
		err := NewParseError(ParseUnsupported, "document is encrypted").
			WithDetail("trailer contains /Encrypt")
		assert.Equal(t, "[UNSUPPORTED] document is encrypted: trailer contains /Encrypt", err.Error())
	})

	t.Run("offset is carried", func(t *testing.T) {
		err := NewParseError(ParseMalformed, "bad object header").WithOffset(1234)
		assert.Equal(t, int64(1234), err.Offset)
	})
}

func TestAsParseError(t *testing.T) {
	inner := NewParseError(ParseUnsupported, "document is encrypted")
	wrapped := fmt.Errorf("redact sample.pdf: %w", inner)

	pe, ok := AsParseError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ParseUnsupported, pe.Kind)

	_, ok = AsParseError(fmt.Errorf("plain error"))
	assert.False(t, ok)
}

func TestSerializeError(t *testing.T) {
	err := NewSerializeError(SerializeObjectGraphBroken, "dangling reference").
		WithObject(12, 0)
	assert.Contains(t, err.Error(), "OBJECT_GRAPH_BROKEN")
	assert.Contains(t, err.Error(), "object 12 0")

	se, ok := AsSerializeError(fmt.Errorf("write: %w", err))
	require.True(t, ok)
	assert.Equal(t, SerializeObjectGraphBroken, se.Kind)
}

func TestWarningString(t *testing.T) {
	tests := []struct {
		name     string
		warning  Warning
		expected string
	}{
		{
			name:     "kind and message only",
			warning:  NewWarning(WarningPageRewriteSkipped, "stream could not be rebuilt"),
			expected: "[PAGE_REWRITE_SKIPPED] stream could not be rebuilt",
		},
		{
			name:     "with page",
			warning:  NewWarning(WarningPageRewriteSkipped, "stream could not be rebuilt").OnPage(3),
			expected: "[PAGE_REWRITE_SKIPPED] page 3: stream could not be rebuilt",
		},
		{
			name:     "with page and subject",
			warning:  NewWarning(WarningUnresolvableFontEncoding, "no ToUnicode map").OnPage(2).About("F4"),
			expected: "[UNRESOLVABLE_FONT_ENCODING] page 2, F4: no ToUnicode map",
		},
		{
			name:     "with subject only",
			warning:  NewWarning(WarningOverlappingMatchSkipped, "claimed by earlier span").About("confidential"),
			expected: "[OVERLAPPING_MATCH_SKIPPED] confidential: claimed by earlier span",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.warning.String())
		})
	}
}

func TestWarningsCollection(t *testing.T) {
	ws := NewWarnings()
	assert.Equal(t, 0, ws.Count())

	ws.Add(NewWarning(WarningUnresolvableFontEncoding, "no base encoding").About("F1"))
	ws.Addf(WarningOverlappingMatchSkipped, "span at offset %d overlaps", 42)

	other := NewWarnings()
	other.Add(NewWarning(WarningPageRewriteSkipped, "unbalanced operand").OnPage(7))
	ws.Merge(other)

	require.Equal(t, 3, ws.Count())
	assert.Equal(t, 1, ws.CountKind(WarningPageRewriteSkipped))
	assert.Equal(t, 1, ws.CountKind(WarningOverlappingMatchSkipped))

	rendered := ws.Strings()
	require.Len(t, rendered, 3)
	assert.Contains(t, rendered[0], "F1")
	assert.Contains(t, rendered[2], "page 7")
}
