package character

import (
	"encoding/json"
	"io"

	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
)

// Marshal encodes the record in its compact stored form
func Marshal(r *Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to encode record")
	}
	return data, nil
}

// Unmarshal decodes, migrates, validates and normalizes stored or imported
// bytes. Any failure is a validation error.
func Unmarshal(data []byte) (*Record, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "invalid file")
	}
	if doc == nil {
		return nil, dnderr.Validationf("invalid file: empty document")
	}

	Migrate(doc)

	r, err := FromDocument(doc)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "invalid file")
	}
	if err := r.Validate(); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "invalid file")
	}
	r.Normalize()
	return r, nil
}

// Encode writes the record as indented JSON for export
func Encode(w io.Writer, r *Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to export record")
	}
	return nil
}

// Decode reads an exported record
func Decode(rd io.Reader) (*Record, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "invalid file")
	}
	return Unmarshal(data)
}
