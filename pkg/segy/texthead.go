package segy

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"segysak/internal/log"
)

// Text header layout.
const (
	TextLines   = 40
	TextColumns = 80
)

// defaultTexthead is the content of the default textual header, keyed by
// 1-based line number. Lines not listed are blank.
var defaultTexthead = map[int]string{
	1:  "segysak SEG-Y Output",
	2:  "Data created by: segysak",
	4:  "DATA FORMAT: SEG-Y",
	5:  "DATA DESCRIPTION: SEG-Y format data output from segysak",
	35: "*** BYTE LOCATION OF KEY HEADERS ***",
	36: "CMP UTM-X 181-184, ALL COORDS X1, INT. CMP UTM-Y 185-188",
	37: "INLINE 189-192, XLINE 193-196",
	39: "SEG Y REV1",
	40: "END TEXTUAL HEADER",
}

// CreateDefaultTextheadE builds the default textual header with the content
// of the lines in override replaced. Each line carries its "Cnn " card
// prefix. Override keys must be in 1..40; control characters in an override
// value, line breaks included, become blanks so every value stays on its own
// card.
func CreateDefaultTextheadE(override map[int]string) (string, error) {
	content := make(map[int]string, len(defaultTexthead))
	for k, v := range defaultTexthead {
		content[k] = v
	}

	keys := make([]int, 0, len(override))
	for k := range override {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if k < 1 || k > TextLines {
			return "", fmt.Errorf("%w: override line %d not in 1..%d", ErrTexthead, k, TextLines)
		}
		content[k] = strings.Map(blankControl, override[k])
	}

	lines := make([]string, TextLines)
	for i := range lines {
		line := fmt.Sprintf("C%02d %s", i+1, content[i+1])
		lines[i] = strings.TrimRight(truncate(line, TextColumns), " ")
	}
	return strings.Join(lines, "\n"), nil
}

// CreateDefaultTexthead is CreateDefaultTextheadE with out of range override
// keys dropped.
func CreateDefaultTexthead(override map[int]string) string {
	valid := make(map[int]string, len(override))
	for k, v := range override {
		if k >= 1 && k <= TextLines {
			valid[k] = v
		} else {
			log.Warnf("texthead override line %d ignored", k)
		}
	}
	text, _ := CreateDefaultTextheadE(valid)
	return text
}

// PutTexthead writes text as the textual header of the SEG-Y file at path.
//
// Text is split on newlines into cards; a single line longer than 80
// characters is instead cut into consecutive 80 column cards. Cards are
// padded to 80 columns and stored EBCDIC encoded. Content beyond 40 cards
// or 80 columns is dropped with a warning.
func PutTexthead(path, text string) error {
	f, err := Open(path, Writable())
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SetText(text); err != nil {
		return err
	}
	return f.Close()
}

// GetTexthead reads the textual header of the SEG-Y file at path. The header
// is returned as 40 lines joined by newlines with trailing blanks trimmed,
// so text written by PutTexthead reads back unchanged.
func GetTexthead(path string) (string, error) {
	f, err := Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return f.Text()
}

// cards lays text out into at most 40 lines of at most 80 columns.
func cards(text string) []string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 1 && len([]rune(lines[0])) > TextColumns {
		r := []rune(lines[0])
		lines = lines[:0]
		for len(r) > 0 {
			n := min(TextColumns, len(r))
			lines = append(lines, string(r[:n]))
			r = r[n:]
		}
	}

	if len(lines) > TextLines {
		log.Warnf("textual header has %d lines, keeping the first %d", len(lines), TextLines)
		lines = lines[:TextLines]
	}
	for i, line := range lines {
		if len([]rune(line)) > TextColumns {
			log.Warnf("textual header line %d longer than %d columns, truncating", i+1, TextColumns)
			lines[i] = truncate(line, TextColumns)
		}
	}
	return lines
}

// encodeText returns the 3200 byte EBCDIC encoding of text.
func encodeText(text string) []byte {
	var sb strings.Builder
	lines := cards(text)
	for i := 0; i < TextLines; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		sb.WriteString(line)
		sb.WriteString(strings.Repeat(" ", TextColumns-len([]rune(line))))
	}

	enc := encoding.ReplaceUnsupported(charmap.CodePage037.NewEncoder())
	out, err := enc.Bytes([]byte(sb.String()))
	if err != nil || len(out) != TextHeaderSize {
		// Every rune maps to exactly one byte once unsupported runes are
		// replaced, so this only guards against a short encoder result.
		buf := make([]byte, TextHeaderSize)
		copy(buf, out)
		return buf
	}
	return out
}

// decodeText converts a raw 3200 byte header to newline separated lines.
// Both EBCDIC and ASCII headers are accepted.
func decodeText(raw []byte) string {
	var text []rune
	if isEBCDIC(raw) {
		dec, err := charmap.CodePage037.NewDecoder().Bytes(raw)
		if err != nil {
			dec = raw
		}
		text = []rune(string(dec))
	} else {
		text = make([]rune, len(raw))
		for i, b := range raw {
			text[i] = rune(b)
		}
	}

	for i, r := range text {
		text[i] = blankControl(r)
	}

	lines := make([]string, 0, TextLines)
	for i := 0; i < TextLines; i++ {
		start := i * TextColumns
		if start >= len(text) {
			lines = append(lines, "")
			continue
		}
		end := min(start+TextColumns, len(text))
		lines = append(lines, strings.TrimRight(string(text[start:end]), " "))
	}
	return strings.Join(lines, "\n")
}

func blankControl(r rune) rune {
	if r < 0x20 || r == 0x7f {
		return ' '
	}
	return r
}

// isEBCDIC guesses the encoding of a textual header. EBCDIC blanks are 0x40
// and letters live above 0x80, whereas ASCII text is dominated by 0x20.
func isEBCDIC(raw []byte) bool {
	if len(raw) > 0 && raw[0] == 0xC3 {
		return true
	}
	var ebcdic, ascii int
	for _, b := range raw {
		switch {
		case b == 0x40 || b >= 0x80:
			ebcdic++
		case b == 0x20:
			ascii++
		}
	}
	return ebcdic > ascii
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
