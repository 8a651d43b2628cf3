// Package zscii translates between Unicode code points and the Z-Machine's
// Z-SCII character encoding for the subset the screen adapter must handle
// at its boundary: printable text going out to z_ucs_output, and the
// buffer read_line hands back to the interpreter.
//
// The accented-letter table (Z-SCII 155-223) mirrors the standard Z-Machine
// "extra characters" table; ASCII 32-126 passes through unchanged.
package zscii

// extraCharacters is the standard Z-Machine extra character set, addressed
// by (code - 155) for codes 155 through 223 inclusive (69 entries).
var extraCharacters = [69]rune{
	'ä', 'ö', 'ü',
	'Ä', 'Ö', 'Ü',
	'ß', '»', '«',
	'ë', 'ï', 'ÿ',
	'Ë', 'Ï', 'á',
	'é', 'í', 'ó',
	'ú', 'ý', 'Á',
	'É', 'Í', 'Ó',
	'Ú', 'Ý', 'à',
	'è', 'ì', 'ò',
	'ù', 'À', 'È',
	'Ì', 'Ò', 'Ù',
	'â', 'ê', 'î',
	'ô', 'û', 'Â',
	'Ê', 'Î', 'Ô',
	'Û', 'å', 'Å',
	'ø', 'Ø', 'ã',
	'ñ', 'õ', 'Ã',
	'Ñ', 'Õ', 'æ',
	'Æ', 'ç', 'Ç',
	'þ', 'ð', 'Þ',
	'Ð', '£', 'œ',
	'Œ', '¡', '¿',
}

var runeToExtra map[rune]byte

func init() {
	runeToExtra = make(map[rune]byte, len(extraCharacters))
	for i, r := range extraCharacters {
		runeToExtra[r] = byte(155 + i)
	}
}

// Extra Z-SCII input codes read_char returns for editing keys, per
// spec.md §4.D.
const (
	CursorUp    byte = 129
	CursorDown  byte = 130
	CursorLeft  byte = 131
	CursorRight byte = 132
	Delete      byte = 8
	DeleteChar  byte = 127
	Newline     byte = 13
)

// ToZSCII converts one Unicode code point to its Z-SCII byte. ok is false
// for code points with no Z-SCII representation; callers drop those bytes
// rather than emit garbage (this only matters for read_line's returned
// buffer -- output text is carried as code points throughout the adapter,
// per spec.md §9's "32-bit code point" design note).
func ToZSCII(r rune) (byte, bool) {
	switch {
	case r == '\n' || r == '\r':
		return Newline, true
	case r >= 32 && r <= 126:
		return byte(r), true
	default:
		if b, ok := runeToExtra[r]; ok {
			return b, true
		}
		return 0, false
	}
}

// FromZSCII converts one Z-SCII byte to its Unicode code point.
func FromZSCII(b byte) rune {
	switch {
	case b == 13 || b == 10:
		return '\n'
	case b >= 32 && b <= 126:
		return rune(b)
	case b >= 155 && b <= 223:
		return extraCharacters[b-155]
	default:
		return '?'
	}
}

// EncodeBuffer converts a rune buffer to Z-SCII bytes, dropping any code
// point with no representation. This is the "translate the buffer from
// Unicode back to Z-SCII using the interpreter-provided mapper" step of
// read_line's exit path (spec.md §4.D); the adapter always uses this fixed
// table and has no hook for an interpreter-supplied mapper.
func EncodeBuffer(runes []rune) []byte {
	out := make([]byte, 0, len(runes))
	for _, r := range runes {
		if b, ok := ToZSCII(r); ok {
			out = append(out, b)
		}
	}
	return out
}
