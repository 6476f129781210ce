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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostcond/pkg/errors"
	"github.com/NVIDIA/hostcond/pkg/invoker"
	"github.com/NVIDIA/hostcond/pkg/invoker/invokertest"
	"github.com/NVIDIA/hostcond/pkg/processor"
)

const testKeychain = "/Library/Keychains/System.keychain"

var listCmd = "/usr/bin/security find-certificate -a -p -Z " + testKeychain

func chunk(sha1, sha256, body string) string {
	var b strings.Builder
	if sha256 != "" {
		b.WriteString("SHA-256 hash: " + sha256 + "\n")
	}
	if sha1 != "" {
		b.WriteString("SHA-1 hash: " + sha1 + "\n")
	}
	b.WriteString("keychain: \"" + testKeychain + "\"\nversion: 512\nattributes:\n    \"labl\"<blob>=\"test\"\n")
	if body != "" {
		b.WriteString("-----BEGIN CERTIFICATE-----\n" + body + "\n-----END CERTIFICATE-----\n")
	}
	return b.String()
}

const (
	rootOut = "notBefore=Jan  5 10:00:00 2023 GMT\nnotAfter=Jan  5 10:00:00 2033 GMT\nsubject= CN=Root CA,  O=Example\n"
	leafOut = "notBefore=Mar 1 00:00:00 2024 GMT\nnotAfter=Mar 1 00:00:00 2025 GMT\nsubject=CN=leaf\n"
	halfOut = "notBefore=Jan 1 00:00:00 2020 GMT\nsubject=CN=half\n"
)

// inspector answers the inspection tool from the PEM body on stdin.
func inspector(outputs map[string]string) invokertest.HandlerFunc {
	return func(args []string, stdin string) (*invoker.Result, error) {
		if strings.Join(args, " ") != strings.Join(inspectCommand, " ") {
			return nil, nil
		}
		for body, out := range outputs {
			if strings.Contains(stdin, "\n"+body+"\n") {
				return &invoker.Result{Stdout: out}, nil
			}
		}
		return &invoker.Result{ExitCode: 1, Stderr: "unable to load certificate"}, nil
	}
}

func newProcessor(fake *invokertest.Fake, workers int) *Processor {
	return New(processor.NewConfig(
		processor.WithInvoker(fake),
		processor.WithKeychain(testKeychain),
		processor.WithWorkers(workers),
	))
}

func TestCollect(t *testing.T) {
	dump := chunk("AA01", "AA256", "ROOTPEM") +
		chunk("BB01", "BB256", "LEAFPEM") +
		chunk("AA01", "AA256", "ROOTPEM") + // duplicate entry
		chunk("CC01", "CC256", "HALFPEM") +
		chunk("EE01", "", "BADPEM") + // inspection fails
		chunk("DD01", "DD256", "") // digests only, trails the last END marker

	fake := invokertest.New().
		Stdout(listCmd, dump).
		Handle(inspector(map[string]string{
			"ROOTPEM": rootOut,
			"LEAFPEM": leafOut,
			"HALFPEM": halfOut,
		}))

	for _, workers := range []int{1, 4} {
		inv := newProcessor(fake, workers).Collect(context.Background())

		rootWindow := "2023-01-05 10:00:00 GMT to 2033-01-05 10:00:00 GMT"
		leafWindow := "2024-03-01 00:00:00 GMT to 2025-03-01 00:00:00 GMT"

		assert.Equal(t, []string{"AA01", "BB01", "CC01", "EE01", "DD01"}, inv.SHA1)
		assert.Equal(t, []string{"AA256", "BB256", "CC256", "DD256"}, inv.SHA256)
		assert.Equal(t, []string{"AA01," + rootWindow, "BB01," + leafWindow}, inv.SHA1Dates)
		assert.Equal(t, []string{"AA256," + rootWindow, "BB256," + leafWindow}, inv.SHA256Dates)
		assert.Equal(t, []string{"CN=Root CA, O=Example", "CN=leaf", "CN=half"}, inv.Subject)
		assert.Equal(t, []string{"CN=Root CA, O=Example," + rootWindow, "CN=leaf," + leafWindow}, inv.SubjectDates)
	}
}

func TestCollectPipesStandalonePEM(t *testing.T) {
	fake := invokertest.New().
		Stdout(listCmd, chunk("AA01", "AA256", "ROOTPEM")).
		Handle(inspector(map[string]string{"ROOTPEM": rootOut}))

	newProcessor(fake, 1).Collect(context.Background())

	var stdin []string
	for _, c := range fake.Calls() {
		if c.Args[0] == "/usr/bin/openssl" {
			stdin = append(stdin, c.Stdin)
		}
	}
	require.Len(t, stdin, 1)
	assert.Equal(t, "-----BEGIN CERTIFICATE-----\nROOTPEM\n-----END CERTIFICATE-----\n", stdin[0])
}

func TestCollectEmptyStore(t *testing.T) {
	tests := []struct {
		name string
		fake *invokertest.Fake
	}{
		{name: "no output", fake: invokertest.New().Stdout(listCmd, "")},
		{name: "non-zero exit", fake: invokertest.New().Exit(listCmd, 44)},
		{name: "tool missing", fake: invokertest.New()},
		{name: "timeout", fake: invokertest.New().Error(listCmd, errors.New(errors.ErrCodeTimeout, "slow"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newProcessor(tt.fake, 1).Run(context.Background())
			for _, key := range []string{KeySHA1, KeySHA1Dates, KeySHA256, KeySHA256Dates, KeySubject, KeySubjectDates} {
				require.Contains(t, set, key)
				got := set.Strings(key)
				assert.NotNil(t, got, key)
				assert.Empty(t, got, key)
			}
		})
	}
}

func TestCollectDuplicateChunks(t *testing.T) {
	c := chunk("AA01", "AA256", "ROOTPEM")
	fake := invokertest.New().
		Stdout(listCmd, c+c).
		Handle(inspector(map[string]string{"ROOTPEM": rootOut}))

	inv := newProcessor(fake, 2).Collect(context.Background())
	assert.Len(t, inv.SHA1, 1)
	assert.Len(t, inv.SHA256, 1)
	assert.Len(t, inv.Subject, 1)
	assert.Len(t, inv.SHA1Dates, 1)
	assert.Len(t, inv.SHA256Dates, 1)
	assert.Len(t, inv.SubjectDates, 1)
}

func TestCollectHalfWindow(t *testing.T) {
	fake := invokertest.New().
		Stdout(listCmd, chunk("CC01", "CC256", "HALFPEM")).
		Handle(inspector(map[string]string{"HALFPEM": halfOut}))

	inv := newProcessor(fake, 1).Collect(context.Background())
	assert.Equal(t, []string{"CC01"}, inv.SHA1)
	assert.Equal(t, []string{"CC256"}, inv.SHA256)
	assert.Empty(t, inv.SHA1Dates)
	assert.Empty(t, inv.SHA256Dates)
	assert.Empty(t, inv.SubjectDates)
}

func TestSplitRecords(t *testing.T) {
	dump := chunk("AA01", "AA256", "ROOTPEM") + chunk("DD01", "", "") + "\n\n"
	records := splitRecords(dump)

	require.Len(t, records, 2)
	assert.Equal(t, "AA01", records[0].SHA1)
	assert.Equal(t, "AA256", records[0].SHA256)
	assert.True(t, records[0].HasPEM())
	assert.Equal(t, "DD01", records[1].SHA1)
	assert.False(t, records[1].HasPEM())

	assert.Empty(t, splitRecords(""))
	assert.Empty(t, splitRecords("\n  \n"))
}

func TestParseInspection(t *testing.T) {
	tests := []struct {
		name   string
		out    string
		want   Metadata
		window string
	}{
		{
			name: "complete",
			out:  rootOut,
			want: Metadata{
				NotBefore: "2023-01-05 10:00:00 GMT",
				NotAfter:  "2033-01-05 10:00:00 GMT",
				Subject:   "CN=Root CA, O=Example",
			},
			window: "2023-01-05 10:00:00 GMT to 2033-01-05 10:00:00 GMT",
		},
		{
			name: "missing not after",
			out:  halfOut,
			want: Metadata{NotBefore: "2020-01-01 00:00:00 GMT", Subject: "CN=half"},
		},
		{
			name: "unparseable date",
			out:  "notBefore=yesterday\nnotAfter=Mar 1 00:00:00 2025 GMT\n",
			want: Metadata{NotAfter: "2025-03-01 00:00:00 GMT"},
		},
		{
			name: "empty",
			out:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInspection(tt.out)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.window, got.Window())
		})
	}
}

func TestProcessorName(t *testing.T) {
	assert.Equal(t, "certificates", newProcessor(invokertest.New(), 1).Name())
}
