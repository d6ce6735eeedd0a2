package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

// Supported input encodings
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-sig"
	EncodingEUCKR   = "euc-kr"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
)

// SupportedEncodings lists the accepted values for the encoding option
var SupportedEncodings = []string{
	EncodingUTF8,
	EncodingUTF8BOM,
	EncodingEUCKR,
	EncodingUTF16LE,
	EncodingUTF16BE,
}

// newDecoder returns nil for plain UTF-8, which is passed through byte for byte
func newDecoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(name) {
	case "", EncodingUTF8:
		return nil, nil
	case EncodingUTF8BOM:
		return unicode.UTF8BOM.NewDecoder(), nil
	case EncodingEUCKR:
		return korean.EUCKR.NewDecoder(), nil
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), nil
	}

	return nil, fmt.Errorf("unsupported encoding %q", name)
}

// decodeText converts raw file content to a Go string using the named encoding.
// UTF-8 input must be valid; invalid bytes are an error, not replaced.
func decodeText(data []byte, name string) (string, error) {
	dec, err := newDecoder(name)
	if err != nil {
		return "", err
	}
	if isUTF8(name) && !utf8.Valid(data) {
		return "", fmt.Errorf("invalid %s content", name)
	}
	if dec == nil {
		return string(data), nil
	}

	out, err := dec.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s content: %w", name, err)
	}

	return string(out), nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(name) {
	case "", EncodingUTF8, EncodingUTF8BOM:
		return true
	}
	return false
}
