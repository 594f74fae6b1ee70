package output

import (
	"encoding/json"
	"io"
)

// WriteJSON writes v as an indented JSON document. HTML characters are not escaped
// so names like "SMITH & SONS" stay readable.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
