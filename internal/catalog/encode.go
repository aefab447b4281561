package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
)

// Encode renders the catalog as 2-space indented JSON: puzzles in numeric
// year order, then meta, then any preserved keys in sorted order. Non-ASCII
// text is written as UTF-8, not escaped. There is no trailing newline.
func (c *Catalog) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"puzzles":{`)
	for i, year := range c.Years() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, strconv.Itoa(year), c.puzzles[year]); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`},"meta":{`)

	m := c.Meta()
	if err := writeMember(&buf, "total_puzzles", m.TotalPuzzles); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeMember(&buf, "date_range", m.DateRange); err != nil {
		return nil, err
	}
	for _, key := range sortedKeys(c.meta) {
		buf.WriteByte(',')
		if err := writeMember(&buf, key, c.meta[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	for _, key := range sortedKeys(c.extra) {
		buf.WriteByte(',')
		if err := writeMember(&buf, key, c.extra[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent catalog: %w", err)
	}
	return out.Bytes(), nil
}

// Save writes the catalog to path, replacing it via a temp file in the same
// directory so a failed write never leaves a truncated catalog.
func (c *Catalog) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// writeMember writes "key":value with HTML escaping disabled.
func writeMember(buf *bytes.Buffer, key string, value any) error {
	if err := writeValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeValue(buf, value)
}

func writeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	// Encoder appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
