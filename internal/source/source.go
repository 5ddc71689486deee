// Package source reads org files from disk into lines ready for parsing
package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// ErrBinary is returned for files that do not look like text
var ErrBinary = errors.New("file is not text")

const sampleSize = 4096

type encoding int

const (
	encodingUnknown encoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

// ReadFile reads an org file and returns its lines
func ReadFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !IsText(content) {
		return nil, fmt.Errorf("%s: %w", path, ErrBinary)
	}
	return Lines(Decode(content)), nil
}

// IsText reports whether content looks like text. UTF-16 input is text even
// though it carries NUL bytes.
func IsText(content []byte) bool {
	sample := content
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	if detectEncoding(sample) != encodingUnknown {
		return true
	}
	return bytes.IndexByte(sample, 0x00) == -1
}

// Decode converts content to a UTF-8 string in NFC form, dropping a byte
// order mark and decoding UTF-16 when one is present
func Decode(content []byte) string {
	var text string
	switch detectEncoding(content) {
	case encodingUTF8BOM:
		text = string(content[3:])
	case encodingUTF16LE:
		text = decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		text = decodeUTF16(content, unicode.BigEndian)
	default:
		text = string(content)
	}
	return norm.NFC.String(text)
}

// Lines splits text into lines. Windows line endings are accepted and a
// trailing newline does not produce an extra empty line.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func detectEncoding(sample []byte) encoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
