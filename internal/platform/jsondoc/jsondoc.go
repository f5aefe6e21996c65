// Package jsondoc edits JSON engine configuration files in place.
//
// Claude and Gemini keep MCP servers inside larger settings files that also
// hold state aisw knows nothing about. A Document applies RFC 6902 patches
// through tailscale/hujson so that every byte outside the patched members,
// comments included, is written back as it was read.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tailscale/hujson"

	"github.com/thoreinstein/aisw/pkg/fileutil"
)

// DefaultPerm is the mode used when a document is written for the first time.
const DefaultPerm os.FileMode = 0o644

// ErrNotObject is returned when a pointer resolves to something other than an object.
var ErrNotObject = errors.New("not a JSON object")

// Document is a parsed JSON file. The zero value is not usable; use Load or Parse.
type Document struct {
	path  string
	perm  os.FileMode
	value hujson.Value

	// commas is set when the source used trailing commas.
	commas bool
}

// Load reads and parses path. A missing or empty file yields an empty object.
func Load(path string) (*Document, error) {
	data, err := fileutil.ReadFileIfExists(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	doc.path = path
	if info, err := os.Stat(path); err == nil {
		doc.perm = info.Mode().Perm()
	}
	return doc, nil
}

// Parse parses data, which may contain comments and trailing commas.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	v, err := hujson.Parse(data)
	if err != nil {
		return nil, err
	}
	if _, ok := v.Value.(*hujson.Object); !ok {
		return nil, errors.Wrap(ErrNotObject, "document root")
	}
	return &Document{perm: DefaultPerm, value: v, commas: hasTrailingCommas(&v)}, nil
}

// Path returns the file the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Pointer builds an RFC 6901 JSON pointer from unescaped reference tokens.
func Pointer(tokens ...string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		t = strings.ReplaceAll(t, "~", "~0")
		b.WriteString(strings.ReplaceAll(t, "/", "~1"))
	}
	return b.String()
}

// Has reports whether ptr resolves to a value.
func (d *Document) Has(ptr string) bool {
	return d.value.Find(ptr) != nil
}

// Members returns the members of the object at ptr in standard JSON.
// A missing or null value yields nil.
func (d *Document) Members(ptr string) (map[string]json.RawMessage, error) {
	found := d.value.Find(ptr)
	if found == nil {
		return nil, nil
	}
	v := found.Clone()
	v.Standardize()
	raw := v.Pack()
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, errors.Wrapf(ErrNotObject, "value at %s", ptr)
	}
	return members, nil
}

// Set stores value at ptr, creating missing parent objects.
func (d *Document) Set(ptr string, value json.RawMessage) error {
	if err := d.ensureParents(ptr); err != nil {
		return err
	}
	op := "add"
	if d.Has(ptr) {
		op = "replace"
	}
	return d.patch(op, ptr, value)
}

// Remove deletes the value at ptr. It reports whether anything was removed.
func (d *Document) Remove(ptr string) (bool, error) {
	if !d.Has(ptr) {
		return false, nil
	}
	return true, d.patch("remove", ptr, nil)
}

// Bytes returns the formatted document. Trailing commas are only written
// when the source already had them, so files read by strict JSONC parsers
// stay readable.
func (d *Document) Bytes() ([]byte, error) {
	v := d.value.Clone()
	v.Format()
	if !d.commas {
		stripTrailingCommas(&v)
	}
	return v.Pack(), nil
}

// Save writes the document back to its path, keeping the file's mode.
func (d *Document) Save() error {
	if d.path == "" {
		return errors.New("document has no path")
	}
	out, err := d.Bytes()
	if err != nil {
		return err
	}
	return fileutil.WriteFile(d.path, out, d.perm)
}

func (d *Document) ensureParents(ptr string) error {
	for i := 1; i < len(ptr); i++ {
		if ptr[i] != '/' {
			continue
		}
		parent := ptr[:i]
		if d.Has(parent) {
			continue
		}
		if err := d.patch("add", parent, json.RawMessage("{}")); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) patch(op, ptr string, value json.RawMessage) error {
	entry := map[string]any{"op": op, "path": ptr}
	if value != nil {
		entry["value"] = value
	}
	patch, err := json.Marshal([]any{entry})
	if err != nil {
		return errors.Wrap(err, "encoding patch")
	}
	if err := d.value.Patch(patch); err != nil {
		return errors.Wrapf(err, "applying %s at %s", op, ptr)
	}
	return nil
}

// lastValue returns the last member value or element of a composite.
func lastValue(v *hujson.Value) *hujson.Value {
	switch c := v.Value.(type) {
	case *hujson.Object:
		if n := len(c.Members); n > 0 {
			return &c.Members[n-1].Value
		}
	case *hujson.Array:
		if n := len(c.Elements); n > 0 {
			return &c.Elements[n-1]
		}
	}
	return nil
}

func hasTrailingCommas(root *hujson.Value) bool {
	for v := range root.All() {
		if last := lastValue(v); last != nil && last.AfterExtra != nil {
			return true
		}
	}
	return false
}

// stripTrailingCommas drops every trailing comma. Comments that sat
// between the last value and its comma move in front of the closing
// bracket.
func stripTrailingCommas(root *hujson.Value) {
	for v := range root.All() {
		last := lastValue(v)
		if last == nil || last.AfterExtra == nil {
			continue
		}
		moved := append(hujson.Extra{}, last.AfterExtra...)
		switch c := v.Value.(type) {
		case *hujson.Object:
			c.AfterExtra = append(moved, c.AfterExtra...)
		case *hujson.Array:
			c.AfterExtra = append(moved, c.AfterExtra...)
		}
		last.AfterExtra = nil
	}
	root.UpdateOffsets()
}
