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

package parser

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// maxFileSize bounds files read by FileLines.
const maxFileSize = 1 << 20

// Option configures a Parser.
type Option func(*Parser)

// Parser splits text into trimmed lines and key/value maps.
// Blank lines and "#" comment lines are dropped.
type Parser struct {
	kvDelimiter     string
	skipEmptyValues bool
}

// WithKVDelimiter sets the key-value delimiter used by Map.
// Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithSkipEmptyValues drops keys without a value from Map.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// NewParser creates a new parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{kvDelimiter: "="}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Lines splits text into trimmed, non-empty entries.
func (p *Parser) Lines(text string) []string {
	parts := strings.Split(text, "\n")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if strings.HasPrefix(clean, "#") {
			continue
		}
		result = append(result, clean)
	}
	return result
}

// Map splits text into entries and each entry into a key and value.
// Entries without the delimiter map to an empty value. Later keys win.
func (p *Parser) Map(text string) map[string]string {
	result := make(map[string]string)
	for _, line := range p.Lines(text) {
		key, value, found := strings.Cut(line, p.kvDelimiter)
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if (!found || value == "") && p.skipEmptyValues {
			slog.Debug("skipping entry with empty value", "key", key)
			continue
		}
		result[key] = value
	}
	return result
}

// FileLines reads path and splits it with Lines.
func (p *Parser) FileLines(path string) ([]string, error) {
	text, err := p.read(path)
	if err != nil {
		return nil, err
	}
	return p.Lines(text), nil
}

func (p *Parser) read(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if len(b) > maxFileSize {
		return "", fmt.Errorf("file %q exceeds maximum size of %d bytes", path, maxFileSize)
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	return string(b), nil
}
