// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
	"howett.net/plist"

	"github.com/NVIDIA/hostcond/pkg/errors"
)

// Format represents the encoding of a conditions document.
type Format string

const (
	// FormatPlist encodes documents as XML property lists.
	FormatPlist Format = "plist"
	// FormatJSON encodes documents as JSON.
	FormatJSON Format = "json"
	// FormatYAML encodes documents as YAML.
	FormatYAML Format = "yaml"
	// FormatTable renders documents as a key/value table. Write only.
	FormatTable Format = "table"
)

const emptyValue = "<empty>"

func (f Format) IsUnknown() bool {
	switch f {
	case FormatPlist, FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// Decodable reports whether documents in this format can be read back.
func (f Format) Decodable() bool {
	return f == FormatPlist || f == FormatJSON || f == FormatYAML
}

// SupportedFormats returns a list of all supported output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatPlist),
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

// FormatFromPath determines the document format from a file extension.
// Paths without a recognized extension are treated as plist.
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".plist", "":
		return FormatPlist
	default:
		slog.Warn("unrecognized file extension, defaulting to plist", "path", path, "extension", ext)
		return FormatPlist
	}
}

// Encode renders a flat document in the given format.
func Encode(format Format, doc map[string]any) ([]byte, error) {
	if doc == nil {
		doc = map[string]any{}
	}

	switch format {
	case FormatPlist:
		data, err := plist.MarshalIndent(doc, plist.XMLFormat, "\t")
		if err != nil {
			return nil, fmt.Errorf("failed to encode plist: %w", err)
		}
		return data, nil

	case FormatJSON:
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return buf.Bytes(), nil

	case FormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("failed to flush yaml: %w", err)
		}
		return buf.Bytes(), nil

	case FormatTable:
		return encodeTable(doc)

	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("unsupported format: %q", format))
	}
}

// Decode parses a flat document. Empty input decodes to an empty document.
func Decode(format Format, data []byte) (map[string]any, error) {
	doc := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	var err error
	switch format {
	case FormatPlist:
		_, err = plist.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("format %q cannot be decoded", format))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", format, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// encodeTable writes one row per key. Sequences get one row per item,
// with the key shown on the first row only.
func encodeTable(doc map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	fmt.Fprintln(w, "---\t-----")

	for _, k := range keys {
		items := tableCells(doc[k])
		if len(items) == 0 {
			fmt.Fprintf(w, "%s\t%s\n", k, emptyValue)
			continue
		}
		for i, item := range items {
			label := k
			if i > 0 {
				label = ""
			}
			fmt.Fprintf(w, "%s\t%s\n", label, item)
		}
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush table: %w", err)
	}
	return buf.Bytes(), nil
}

func tableCells(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return []string{fmt.Sprintf("%v", val)}
	}
}
