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

package certificates

import (
	"strings"

	"github.com/NVIDIA/hostcond/pkg/parser"
)

const (
	endMarker    = "-----END CERTIFICATE-----"
	beginMarker  = "-----BEGIN CERTIFICATE-----"
	sha1Prefix   = "SHA-1 hash: "
	sha256Prefix = "SHA-256 hash: "
)

// Record is one certificate as found in the store dump.
type Record struct {
	SHA1   string
	SHA256 string
	// PEM is the standalone PEM document, empty when the chunk had no PEM block.
	PEM string
}

// HasPEM reports whether the record can be inspected.
func (r Record) HasPEM() bool {
	return r.PEM != ""
}

// splitRecords cuts a store dump into records on the END marker.
// Chunks with neither digests nor PEM are dropped.
func splitRecords(dump string) []Record {
	chunks := strings.Split(dump, endMarker)
	records := make([]Record, 0, len(chunks))

	for _, chunk := range chunks {
		var rec Record
		for _, line := range strings.Split(chunk, "\n") {
			if v, ok := parser.ValueAfterPrefix(line, sha1Prefix); ok {
				rec.SHA1 = v
			} else if v, ok := parser.ValueAfterPrefix(line, sha256Prefix); ok {
				rec.SHA256 = v
			}
		}

		if i := strings.Index(chunk, beginMarker); i >= 0 {
			rec.PEM = strings.TrimSpace(chunk[i:]+endMarker) + "\n"
		}

		if rec.SHA1 == "" && rec.SHA256 == "" && !rec.HasPEM() {
			continue
		}
		records = append(records, rec)
	}

	return records
}
