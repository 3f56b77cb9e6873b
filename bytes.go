package jsonscan

import (
	"bytes"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

var (
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
	bomUTF16BE = []byte{0xfe, 0xff}
	bomUTF16LE = []byte{0xff, 0xfe}
	bomUTF32BE = []byte{0x00, 0x00, 0xfe, 0xff}
	bomUTF32LE = []byte{0xff, 0xfe, 0x00, 0x00}
)

// DetectEncoding guesses the Unicode encoding of a JSON document from
// its byte order mark or, lacking one, from where the zero bytes of the
// first code point fall. It returns nil for UTF-8; a UTF-8 BOM is
// reported through bom.
func DetectEncoding(data []byte) (enc encoding.Encoding, bom bool) {
	switch {
	case bytes.HasPrefix(data, bomUTF32BE), bytes.HasPrefix(data, bomUTF32LE):
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM), true
	case bytes.HasPrefix(data, bomUTF16BE), bytes.HasPrefix(data, bomUTF16LE):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), true
	case bytes.HasPrefix(data, bomUTF8):
		return nil, true
	}
	if len(data) >= 4 {
		switch {
		case data[0] == 0 && data[1] != 0:
			return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), false
		case data[0] == 0:
			return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), false
		case data[1] == 0 && (data[2] != 0 || data[3] != 0):
			return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), false
		case data[1] == 0:
			return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), false
		}
	} else if len(data) == 2 {
		switch {
		case data[0] == 0:
			return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), false
		case data[1] == 0:
			return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), false
		}
	}
	return nil, false
}

// DecodeBytes decodes a document given as raw bytes in UTF-8, UTF-16 or
// UTF-32, detected by DetectEncoding. A leading byte order mark is
// dropped. Unpaired surrogates in UTF-16 input read as U+FFFD.
func DecodeBytes(data []byte) (any, error) {
	return NewDecoder().DecodeBytes(data)
}

// DecodeBytes is the package level DecodeBytes with dec's settings.
func (dec *Decoder) DecodeBytes(data []byte) (any, error) {
	enc, bom := DetectEncoding(data)
	var text string
	if enc == nil {
		if bom {
			data = data[len(bomUTF8):]
		}
		text = string(data)
	} else {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, errors.Wrap(err, "jsonscan: transcoding input")
		}
		text = string(decoded)
	}
	return dec.Decode(text)
}
