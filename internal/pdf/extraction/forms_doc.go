// Package extraction provides PDF content extraction capabilities.
// This file documents the requirements and implementation details for PDF form extraction.
package extraction

/*
PDF Form Extraction Documentation

This document describes the requirements and implementation details for extracting
form fields from PDF documents according to the PDF specifications (PDF 1.4 and PDF 1.7).

## Overview

PDF forms, also known as AcroForms (Acrobat Forms), are interactive elements that
allow users to fill in data within a PDF document. According to the Adobe PDF
specifications (PDF 1.4 section 8.6 and PDF 1.7 section 12.7), forms are defined
through the following structure:

1. **Document Catalog**: Contains an optional AcroForm entry
2. **AcroForm Dictionary**: Contains the Fields array and form-wide properties
3. **Field Dictionaries**: Define individual form fields and their properties
4. **Widget Annotations**: Visual representations of form fields on pages

## PDF Form Structure (Per Adobe Standards)

### AcroForm Dictionary (PDF 1.7 Section 12.7.2)
The AcroForm dictionary is referenced from the document catalog and contains:
- Fields (required): An array of references to the document's root fields
- NeedAppearances: Flag indicating whether to construct appearance streams
- SigFlags: Flags specifying signature-related form properties
- CO: Calculation order array
- DR: Default resources dictionary
- DA: Default appearance string
- Q: Default quadding (justification)

### Field Types (PDF 1.7 Section 12.7.4)
PDF supports the following interactive form field types:
1. **Button Fields** (FT = Btn)
   - Push buttons
   - Check boxes
   - Radio buttons
2. **Text Fields** (FT = Tx)
   - Single line or multiline text input
3. **Choice Fields** (FT = Ch)
   - List boxes
   - Combo boxes (drop-down lists)
4. **Signature Fields** (FT = Sig)
   - Digital signature fields

### Field Dictionary Entries (PDF 1.7 Table 8.69)
Each field dictionary contains:
- FT: Field type (Btn, Tx, Ch, Sig)
- Parent: Reference to parent field (for hierarchical fields)
- Kids: Array of child fields
- T: Partial field name
- TU: Alternative field name (tooltip)
- TM: Mapping name
- Ff: Field flags (bitwise flags for field properties)
- V: Field value
- DV: Default value
- AA: Additional actions dictionary

### Field Flags (PDF 1.7 Table 8.70-8.77)
Field flags are bitwise flags that specify field properties:
- Bit 1: ReadOnly
- Bit 2: Required
- Bit 3: NoExport
- Additional bits are field-type specific

## Current Implementation Limitations

The current implementation uses the `github.com/ledongthuc/pdf` library, which has
significant limitations for form extraction:

1. **No AcroForm Access**: The library doesn't provide access to the document catalog
   or AcroForm dictionary structures.
2. **No Field Dictionary Parsing**: Cannot parse field dictionaries or their properties.
3. **No Annotation Support**: Cannot access widget annotations that define field positions.
4. **Text-Only Focus**: The library is designed primarily for text extraction.

As a result, our current implementation uses pattern matching to detect form-like
elements in the text content, which is a heuristic approach with limitations:
- Cannot detect actual interactive form fields
- Cannot extract field properties (name, type, value, etc.)
- Cannot determine field positions accurately
- May produce false positives/negatives

## Requirements for Proper Implementation

To properly implement PDF form extraction according to Adobe standards, we need:

### 1. PDF Structure Access
- Parse PDF file structure at a low level
- Navigate object references and streams
- Handle cross-reference tables
- Support incremental updates

### 2. Dictionary Parsing
- Parse PDF dictionary objects
- Handle indirect object references
- Support array and nested dictionary structures
- Parse name objects and strings with proper encoding

### 3. AcroForm Processing
- Locate and parse the AcroForm dictionary from the catalog
- Process the Fields array recursively
- Handle field inheritance (parent/child relationships)
- Merge inherited properties correctly

### 4. Field Type Detection
- Identify field types from FT entries
- Parse field flags for type-specific properties
- Handle button field subtypes (checkbox, radio, pushbutton)
- Process choice field options

### 5. Value Extraction
- Extract current field values (V entry)
- Handle different value types per field type
- Process default values (DV entry)
- Support value formatting

### 6. Position Calculation
- Parse Rect arrays for field boundaries
- Handle page coordinate systems
- Process rotation and scaling
- Calculate absolute positions

### 7. Appearance Handling
- Parse default appearance strings (DA)
- Extract font and color information
- Handle appearance streams (AP)
- Process form XObjects

## Recommended Libraries

For proper PDF form extraction, consider these alternatives:

1. **pdfcpu** (github.com/pdfcpu/pdfcpu)
   - Pure Go implementation
   - Supports form filling and extraction
   - Actively maintained
   - Apache 2.0 license

2. **unipdf** (github.com/unidoc/unipdf)
   - Commercial library with free tier
   - Comprehensive PDF support
   - Full form field access
   - Requires license for commercial use

3. **Custom Implementation**
   - Build on top of existing PDF parsing libraries
   - Implement form-specific functionality
   - More control but more complexity

## Future Implementation Plan

1. **Phase 1**: Research and select appropriate PDF library
2. **Phase 2**: Implement basic form detection using AcroForm dictionary
3. **Phase 3**: Add field type detection and property extraction
4. **Phase 4**: Implement value extraction and formatting
5. **Phase 5**: Add position calculation and bounds detection
6. **Phase 6**: Support complex features (JavaScript, calculations, etc.)

## Testing Requirements

Proper form extraction should be tested with:
- Various form field types (text, checkbox, radio, dropdown, etc.)
- Hierarchical field structures
- Fields with calculations and validations
- Different PDF versions (1.4, 1.7, 2.0)
- Forms created by different software
- Signed and encrypted documents

## References

- PDF Reference 1.4 (PDF14.pdf) - Section 8.6: Interactive Forms
- PDF Reference 1.7 (PDF17.pdf) - Section 12.7: Interactive Forms
- ISO 32000-1:2008 (PDF 1.7 standard)
- ISO 32000-2:2020 (PDF 2.0 standard)
*/
