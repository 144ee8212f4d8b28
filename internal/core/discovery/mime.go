package discovery

import (
	"mime"
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// GuessMIME guesses the MIME type of a file from its name alone. The chroma
// lexer registry is consulted first since it knows far more source file names
// than the system MIME table. An empty string means the type is unknown.
func GuessMIME(name string) string {
	base := path.Base(name)

	if lexer := lexers.Match(base); lexer != nil {
		types := lexer.Config().MimeTypes
		for _, t := range types {
			if strings.HasPrefix(t, "text/") {
				return t
			}
		}
		if len(types) > 0 {
			return types[0]
		}
		// a lexer without declared types is still a text format
		return "text/plain"
	}

	if t := mime.TypeByExtension(path.Ext(base)); t != "" {
		mediaType, _, err := mime.ParseMediaType(t)
		if err == nil {
			return mediaType
		}
		return t
	}

	return ""
}

// IsText reports whether the guessed MIME type of name is in the text
// category. Unknown types are not text.
func IsText(name string) bool {
	t := GuessMIME(name)
	category, _, _ := strings.Cut(t, "/")
	return category == "text"
}
