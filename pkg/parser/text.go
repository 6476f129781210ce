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
	"strings"
	"time"
)

const (
	// inputDateLayout matches "<Mon> <day> <HH:MM:SS> <YYYY>" after whitespace collapse.
	inputDateLayout = "Jan 2 15:04:05 2006"
	// outputDateLayout is the normalized "<YYYY-MM-DD> <HH:MM:SS>" form.
	outputDateLayout = "2006-01-02 15:04:05"
)

// ValueAfterPrefix returns the remainder of line after prefix.
// Leading whitespace on line is ignored. It reports false when line does not
// start with prefix.
func ValueAfterPrefix(line, prefix string) (string, bool) {
	line = strings.TrimLeft(line, " \t")
	if prefix == "" || !strings.HasPrefix(line, prefix) {
		return "", false
	}
	return strings.TrimRight(strings.TrimPrefix(line, prefix), " \t\r"), true
}

// FirstValue scans text line by line and returns the value of the first line
// starting with prefix.
func FirstValue(text, prefix string) (string, bool) {
	for _, l := range strings.Split(text, "\n") {
		if v, ok := ValueAfterPrefix(l, prefix); ok {
			return v, true
		}
	}
	return "", false
}

// CollapseSpace replaces every run of whitespace with a single space and
// trims both ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeDate converts "<Mon> <day> <HH:MM:SS> <YYYY> <TZ>" into
// "<YYYY-MM-DD> <HH:MM:SS> <TZ>". TZ is carried through verbatim and is
// never resolved to an offset. Input already in the output form is returned
// unchanged. It reports false when s matches neither form.
func NormalizeDate(s string) (string, bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return "", false
	}
	tz := fields[len(fields)-1]
	body := strings.Join(fields[:len(fields)-1], " ")

	if len(fields) == 3 {
		if _, err := time.Parse(outputDateLayout, body); err == nil {
			return body + " " + tz, true
		}
		return "", false
	}
	if len(fields) != 5 {
		return "", false
	}

	t, err := time.Parse(inputDateLayout, body)
	if err != nil {
		return "", false
	}
	return t.Format(outputDateLayout) + " " + tz, true
}
