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
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/errors"
)

const fileMode os.FileMode = 0o644

// FileSink merges condition sets into a document on disk.
type FileSink struct {
	Path   string
	Format Format

	mu sync.Mutex
}

// NewFileSink returns a sink writing to path in the given format.
func NewFileSink(path string, format Format) *FileSink {
	return &FileSink{Path: path, Format: format}
}

// Write reads the existing document, overlays set and replaces the file.
// An unreadable existing document is reported rather than overwritten.
func (s *FileSink) Write(ctx context.Context, set condition.Set) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeTimeout, "conditions write cancelled", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeSinkFailure, "failed to read existing conditions", err,
			map[string]any{"path": s.Path})
	}

	for k, v := range set.Raw() {
		doc[k] = v
	}

	data, err := Encode(s.Format, doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSinkFailure, "failed to encode conditions", err)
	}

	if err := writeAtomic(s.Path, data); err != nil {
		return errors.WrapWithContext(errors.ErrCodeSinkFailure, "failed to write conditions", err,
			map[string]any{"path": s.Path})
	}

	slog.Debug("conditions written", "path", s.Path, "format", s.Format, "keys", len(set), "total", len(doc))
	return nil
}

func (s *FileSink) load() (map[string]any, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	return Decode(s.Format, data)
}

// writeAtomic writes data to a temp file next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		return fmt.Errorf("failed to set mode on temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
