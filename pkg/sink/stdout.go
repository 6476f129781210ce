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
	"io"
	"os"
	"sync"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/errors"
)

// StdoutSink prints every condition set it receives.
// Sets are not merged; each Write emits one document.
type StdoutSink struct {
	format Format
	out    io.Writer

	mu sync.Mutex
}

// NewStdoutSink returns a sink printing to w. A nil w means os.Stdout.
func NewStdoutSink(w io.Writer, format Format) *StdoutSink {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutSink{format: format, out: w}
}

// Write encodes set and prints it.
func (s *StdoutSink) Write(_ context.Context, set condition.Set) error {
	data, err := Encode(s.format, set.Raw())
	if err != nil {
		return errors.Wrap(errors.ErrCodeSinkFailure, "failed to encode conditions", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == FormatYAML {
		if _, err := fmt.Fprintln(s.out, "---"); err != nil {
			return errors.Wrap(errors.ErrCodeSinkFailure, "failed to write conditions", err)
		}
	}
	if _, err := s.out.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeSinkFailure, "failed to write conditions", err)
	}
	return nil
}
