package custom

import (
	"bytes"
	"compress/flate"
	"compress/lzw"
	"compress/zlib"
	"encoding/ascii85"
	"fmt"
	"io"
)

// FilterDecoder decodes one stream filter
type FilterDecoder interface {
	Decode(data []byte, params *Dictionary) ([]byte, error)
	Name() string
}

// FilterRegistry holds all available filter decoders. The image compression
// filters are passthrough: their payloads are replaced wholesale during
// redaction and never inspected pixel by pixel.
var FilterRegistry = map[string]FilterDecoder{
	"FlateDecode":     &FlateDecoder{},
	"ASCIIHexDecode":  &ASCIIHexDecoder{},
	"ASCII85Decode":   &ASCII85Decoder{},
	"LZWDecode":       &LZWDecoder{},
	"RunLengthDecode": &RunLengthDecoder{},
	"DCTDecode":       &PassthroughDecoder{FilterName: "DCTDecode"},
	"JPXDecode":       &PassthroughDecoder{FilterName: "JPXDecode"},
	"CCITTFaxDecode":  &PassthroughDecoder{FilterName: "CCITTFaxDecode"},
	"JBIG2Decode":     &PassthroughDecoder{FilterName: "JBIG2Decode"},
}

// GetFilterDecoder returns a filter decoder by name
func GetFilterDecoder(name string) FilterDecoder {
	return FilterRegistry[name]
}

// DecodeStream applies the stream's filter chain and returns the plain bytes
func DecodeStream(stream *Stream) ([]byte, error) {
	data := stream.Data
	filters := stream.GetFilter()

	if len(filters) == 0 {
		return data, nil
	}

	parms := stream.Dict.Get("DecodeParms")
	if parms.Type() == TypeNull {
		parms = stream.Dict.Get("DP")
	}

	for i, filterName := range filters {
		decoder := GetFilterDecoder(filterName)
		if decoder == nil {
			return nil, fmt.Errorf("unsupported filter: %s", filterName)
		}

		var params *Dictionary
		switch parms.Type() {
		case TypeArray:
			if arr := parms.(*Array); i < arr.Len() {
				if d := arr.Get(i); d.Type() == TypeDictionary {
					params = d.(*Dictionary)
				}
			}
		case TypeDictionary:
			if i == 0 {
				params = parms.(*Dictionary)
			}
		}

		var err error
		data, err = decoder.Decode(data, params)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", filterName, err)
		}
	}

	return data, nil
}

// FlateDecoder implements zlib/deflate decompression with predictors
type FlateDecoder struct{}

func (f *FlateDecoder) Name() string {
	return "FlateDecode"
}

func (f *FlateDecoder) Decode(data []byte, params *Dictionary) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	decoded, err := inflate(data)
	if err != nil {
		return nil, fmt.Errorf("flate decode: %w", err)
	}

	if params != nil {
		if predictor := params.GetInt("Predictor"); predictor > 1 {
			decoded, err = applyPredictor(decoded, params)
			if err != nil {
				return nil, fmt.Errorf("predictor: %w", err)
			}
		}
	}

	return decoded, nil
}

// inflate handles both zlib-wrapped and bare deflate payloads. The format
// requires the zlib wrapper, but some writers emit raw deflate.
func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err == nil {
		defer zr.Close()
		decoded, rerr := io.ReadAll(zr)
		if rerr == nil || len(decoded) > 0 {
			return decoded, nil
		}
	}

	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	decoded, err := io.ReadAll(fr)
	if err != nil && len(decoded) == 0 {
		return nil, err
	}
	return decoded, nil
}

func applyPredictor(data []byte, params *Dictionary) ([]byte, error) {
	predictor := params.GetInt("Predictor")
	columns := params.GetInt("Columns")
	bitsPerComponent := params.GetInt("BitsPerComponent")
	colors := params.GetInt("Colors")

	if columns == 0 {
		columns = 1
	}
	if bitsPerComponent == 0 {
		bitsPerComponent = 8
	}
	if colors == 0 {
		colors = 1
	}

	switch {
	case predictor == 2:
		return applyTIFFPredictor(data, int(columns), int(bitsPerComponent), int(colors))
	case predictor >= 10 && predictor <= 15:
		return applyPNGPredictor(data, int(columns), int(bitsPerComponent), int(colors))
	default:
		return data, nil
	}
}

func applyTIFFPredictor(data []byte, columns, bitsPerComponent, colors int) ([]byte, error) {
	if bitsPerComponent != 8 {
		return nil, fmt.Errorf("TIFF predictor supports only 8 bits per component, got %d", bitsPerComponent)
	}

	bytesPerPixel := colors
	rowSize := columns * bytesPerPixel
	if rowSize == 0 || len(data)%rowSize != 0 {
		return nil, fmt.Errorf("data length %d not a multiple of row size %d", len(data), rowSize)
	}

	result := make([]byte, len(data))
	copy(result, data)

	for row := 0; row < len(data)/rowSize; row++ {
		rowStart := row * rowSize
		for col := 1; col < columns; col++ {
			for c := 0; c < bytesPerPixel; c++ {
				idx := rowStart + col*bytesPerPixel + c
				prevIdx := rowStart + (col-1)*bytesPerPixel + c
				result[idx] = byte(int(result[idx]) + int(result[prevIdx]))
			}
		}
	}

	return result, nil
}

func applyPNGPredictor(data []byte, columns, bitsPerComponent, colors int) ([]byte, error) {
	bytesPerPixel := (bitsPerComponent*colors + 7) / 8
	if bytesPerPixel < 1 {
		bytesPerPixel = 1
	}
	rowSize := (columns*bitsPerComponent*colors + 7) / 8
	totalRowSize := rowSize + 1 // leading predictor byte per row

	if totalRowSize <= 1 || len(data)%totalRowSize != 0 {
		return nil, fmt.Errorf("data length %d not a multiple of row size %d", len(data), totalRowSize)
	}

	numRows := len(data) / totalRowSize
	result := make([]byte, numRows*rowSize)

	for row := 0; row < numRows; row++ {
		srcStart := row * totalRowSize
		dstStart := row * rowSize
		predictor := data[srcStart]
		rowData := data[srcStart+1 : srcStart+totalRowSize]
		copy(result[dstStart:], rowData)

		switch predictor {
		case 0: // None
		case 1: // Sub
			for i := bytesPerPixel; i < rowSize; i++ {
				result[dstStart+i] = byte(int(result[dstStart+i]) + int(result[dstStart+i-bytesPerPixel]))
			}
		case 2: // Up
			if row > 0 {
				prevRowStart := (row - 1) * rowSize
				for i := 0; i < rowSize; i++ {
					result[dstStart+i] = byte(int(result[dstStart+i]) + int(result[prevRowStart+i]))
				}
			}
		case 3: // Average
			for i := 0; i < rowSize; i++ {
				var left, up byte
				if i >= bytesPerPixel {
					left = result[dstStart+i-bytesPerPixel]
				}
				if row > 0 {
					up = result[(row-1)*rowSize+i]
				}
				result[dstStart+i] = byte(int(result[dstStart+i]) + (int(left)+int(up))/2)
			}
		case 4: // Paeth
			for i := 0; i < rowSize; i++ {
				var left, up, upLeft byte
				if i >= bytesPerPixel {
					left = result[dstStart+i-bytesPerPixel]
				}
				if row > 0 {
					up = result[(row-1)*rowSize+i]
					if i >= bytesPerPixel {
						upLeft = result[(row-1)*rowSize+i-bytesPerPixel]
					}
				}
				result[dstStart+i] = byte(int(result[dstStart+i]) + int(paethPredictor(left, up, upLeft)))
			}
		default:
			return nil, fmt.Errorf("unknown PNG predictor %d in row %d", predictor, row)
		}
	}

	return result, nil
}

func paethPredictor(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ASCIIHexDecoder implements ASCIIHexDecode
type ASCIIHexDecoder struct{}

func (a *ASCIIHexDecoder) Name() string {
	return "ASCIIHexDecode"
}

func (a *ASCIIHexDecoder) Decode(data []byte, params *Dictionary) ([]byte, error) {
	var result bytes.Buffer
	var hi byte
	havePending := false

	for _, b := range data {
		if b == '>' {
			break
		}
		if IsWhitespace(b) {
			continue
		}
		v, ok := hexValue(b)
		if !ok {
			return nil, fmt.Errorf("invalid hex digit %q", b)
		}
		if havePending {
			result.WriteByte(hi<<4 | v)
			havePending = false
		} else {
			hi = v
			havePending = true
		}
	}

	if havePending {
		result.WriteByte(hi << 4)
	}

	return result.Bytes(), nil
}

// ASCII85Decoder implements ASCII85Decode
type ASCII85Decoder struct{}

func (a *ASCII85Decoder) Name() string {
	return "ASCII85Decode"
}

func (a *ASCII85Decoder) Decode(data []byte, params *Dictionary) ([]byte, error) {
	if idx := bytes.Index(data, []byte("<~")); idx >= 0 {
		data = data[idx+2:]
	}
	if idx := bytes.Index(data, []byte("~>")); idx >= 0 {
		data = data[:idx]
	}

	// ascii85.NewDecoder rejects whitespace-free guarantees we cannot make,
	// so strip whitespace up front.
	clean := make([]byte, 0, len(data))
	for _, b := range data {
		if !IsWhitespace(b) {
			clean = append(clean, b)
		}
	}

	decoder := ascii85.NewDecoder(bytes.NewReader(clean))
	decoded, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("ascii85 decode: %w", err)
	}
	return decoded, nil
}

// LZWDecoder implements LZWDecode
type LZWDecoder struct{}

func (l *LZWDecoder) Name() string {
	return "LZWDecode"
}

func (l *LZWDecoder) Decode(data []byte, params *Dictionary) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	// compress/lzw has no EarlyChange knob; the default variant matches
	// what the vast majority of writers emit.
	reader := lzw.NewReader(bytes.NewReader(data), lzw.MSB, 8)
	defer reader.Close()

	decoded, err := io.ReadAll(reader)
	if err != nil && len(decoded) == 0 {
		return nil, fmt.Errorf("LZW decode: %w", err)
	}

	if params != nil {
		if predictor := params.GetInt("Predictor"); predictor > 1 {
			decoded, err = applyPredictor(decoded, params)
			if err != nil {
				return nil, fmt.Errorf("predictor: %w", err)
			}
		}
	}

	return decoded, nil
}

// RunLengthDecoder implements RunLengthDecode
type RunLengthDecoder struct{}

func (r *RunLengthDecoder) Name() string {
	return "RunLengthDecode"
}

func (r *RunLengthDecoder) Decode(data []byte, params *Dictionary) ([]byte, error) {
	var result bytes.Buffer
	i := 0

	for i < len(data) {
		length := int(data[i])
		i++

		if length == 128 {
			break
		}

		if length < 128 {
			count := length + 1
			if i+count > len(data) {
				return nil, fmt.Errorf("truncated literal run at offset %d", i)
			}
			result.Write(data[i : i+count])
			i += count
		} else {
			count := 257 - length
			if i >= len(data) {
				return nil, fmt.Errorf("truncated replicate run at offset %d", i)
			}
			value := data[i]
			i++
			for j := 0; j < count; j++ {
				result.WriteByte(value)
			}
		}
	}

	return result.Bytes(), nil
}

// PassthroughDecoder returns data unchanged. Used for image codecs whose
// payloads are never decoded here.
type PassthroughDecoder struct {
	FilterName string
}

func (p *PassthroughDecoder) Name() string {
	return p.FilterName
}

func (p *PassthroughDecoder) Decode(data []byte, params *Dictionary) ([]byte, error) {
	return data, nil
}
