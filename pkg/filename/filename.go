package filename

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// tokenLength is the number of random characters used when nothing of the
// original base name survives sanitization.
const tokenLength = 8

// cyrillicToLatin maps Russian letters to ASCII transliterations. It backs
// up the unidecode pass for inputs the library leaves untouched.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Е': "E", 'Ё': "Yo",
	'Ж': "Zh", 'З': "Z", 'И': "I", 'Й': "Y", 'К': "K", 'Л': "L", 'М': "M",
	'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
	'Ф': "F", 'Х': "Kh", 'Ц': "Ts", 'Ч': "Ch", 'Ш': "Sh", 'Щ': "Sch",
	'Ъ': "", 'Ы': "Y", 'Ь': "", 'Э': "E", 'Ю': "Yu", 'Я': "Ya",
}

// Normalize converts an arbitrary uploaded filename into a safe ASCII name.
// The extension is preserved in lowercase; the base name goes through a
// fallback chain of sanitization, transliteration, and finally a random
// token, so the result is never empty and never contains path separators.
func Normalize(original string) string {
	// Compose combining marks before any byte-level inspection, so that
	// "й" typed as two code points matches the single-rune form.
	name := norm.NFC.String(original)

	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))

	safe := sanitize(base)
	if safe == "" {
		safe = sanitize(unidecode.Unidecode(base))
	}
	if safe == "" {
		safe = sanitize(transliterateCyrillic(base))
	}
	if safe == "" {
		safe = strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
	}

	safe = sanitize(safe + ext)
	if safe == "" {
		// Extension alone was hostile too; fall back to a bare token.
		safe = strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
	}
	return safe
}

// sanitize reduces a name to ASCII letters, digits, underscores, hyphens,
// and dots. Whitespace becomes underscores, runs of underscores collapse,
// and leading/trailing underscores and dots are stripped. Returns "" when
// nothing survives.
func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	prevUnderscore := false
	for _, r := range name {
		switch {
		case r == ' ' || r == '\t':
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_':
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		default:
			// Dropped. Path separators, control chars, and non-ASCII all
			// land here; transliteration happens in a later pass.
		}
	}

	out := strings.Trim(b.String(), "_.")
	if strings.Trim(out, "_") == "" {
		return ""
	}
	return out
}

// transliterateCyrillic replaces Russian letters with Latin equivalents,
// passing every other rune through unchanged.
func transliterateCyrillic(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if lat, ok := cyrillicToLatin[r]; ok {
			b.WriteString(lat)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
