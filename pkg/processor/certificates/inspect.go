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
	"context"
	"log/slog"
	"strings"

	"github.com/NVIDIA/hostcond/pkg/errors"
	"github.com/NVIDIA/hostcond/pkg/invoker"
	"github.com/NVIDIA/hostcond/pkg/parser"
)

const (
	notBeforePrefix = "notBefore="
	notAfterPrefix  = "notAfter="
	subjectPrefix   = "subject="
	windowSep       = " to "
)

var inspectCommand = []string{"/usr/bin/openssl", "x509", "-dates", "-subject", "-noout"}

// Metadata is what the inspection tool reports for one certificate.
type Metadata struct {
	NotBefore string
	NotAfter  string
	Subject   string
}

// Window returns "<not-before> to <not-after>", or "" unless both bounds are known.
func (m Metadata) Window() string {
	if m.NotBefore == "" || m.NotAfter == "" {
		return ""
	}
	return m.NotBefore + windowSep + m.NotAfter
}

// parseInspection reads the label-prefixed lines printed by the inspection tool.
func parseInspection(out string) Metadata {
	var m Metadata
	for _, raw := range strings.Split(out, "\n") {
		line := parser.CollapseSpace(raw)
		if v, ok := parser.ValueAfterPrefix(line, notBeforePrefix); ok {
			m.NotBefore, _ = parser.NormalizeDate(v)
		} else if v, ok := parser.ValueAfterPrefix(line, notAfterPrefix); ok {
			m.NotAfter, _ = parser.NormalizeDate(v)
		} else if v, ok := parser.ValueAfterPrefix(line, subjectPrefix); ok {
			m.Subject = strings.TrimSpace(v)
		}
	}
	return m
}

// inspect pipes one PEM document to the inspection tool.
// The returned result label feeds the inspections metric.
func inspect(ctx context.Context, inv invoker.Invoker, rec Record) (Metadata, string) {
	res, err := inv.Invoke(ctx, inspectCommand, rec.PEM)
	if err == nil {
		err = invoker.Check(res, inspectCommand)
	}
	if err != nil {
		result := resultUnavailable
		if errors.HasCode(err, errors.ErrCodeTimeout) {
			result = resultTimeout
		}
		slog.Debug("certificate inspection unavailable",
			"sha1", rec.SHA1,
			"code", errors.CodeOf(err),
			"error", err)
		return Metadata{}, result
	}

	m := parseInspection(res.Stdout)
	if m.Window() == "" || m.Subject == "" {
		slog.Debug("certificate inspection incomplete",
			"sha1", rec.SHA1,
			"code", errors.ErrCodePartialParse,
			"not_before", m.NotBefore,
			"not_after", m.NotAfter,
			"has_subject", m.Subject != "")
		return m, resultPartial
	}
	return m, resultOK
}
