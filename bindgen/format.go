package bindgen

import (
	"golang.org/x/tools/imports"

	"github.com/teranos/glbind/errors"
)

// Format gofmts generated source and drops imports it does not use.
// filename is only used in error positions.
func Format(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to format %s", filename)
	}
	return out, nil
}
