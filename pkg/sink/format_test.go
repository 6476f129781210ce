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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostcond/pkg/errors"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"/Library/Managed Installs/ConditionalItems.plist", FormatPlist},
		{"/tmp/conditions.json", FormatJSON},
		{"/tmp/conditions.yaml", FormatYAML},
		{"/tmp/conditions.YML", FormatYAML},
		{"/tmp/conditions", FormatPlist},
		{"/tmp/conditions.txt", FormatPlist},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range SupportedFormats() {
		assert.False(t, Format(f).IsUnknown(), f)
	}
	assert.True(t, Format("xml").IsUnknown())
	assert.True(t, Format("").IsUnknown())
	assert.False(t, FormatTable.Decodable())
}

func TestEncodeDecode_Document(t *testing.T) {
	doc := map[string]any{
		"certificate_cn": []string{"Example Root CA"},
		"sip_enabled":    true,
		"timezone":       "Europe/Berlin",
		"volume_owners":  []string{},
	}

	for _, format := range []Format{FormatPlist, FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(format, doc)
			require.NoError(t, err)

			got, err := Decode(format, data)
			require.NoError(t, err)

			assert.Equal(t, "Europe/Berlin", got["timezone"])
			assert.Equal(t, true, got["sip_enabled"])
			assert.Equal(t, []any{"Example Root CA"}, got["certificate_cn"])
			assert.Empty(t, got["volume_owners"])
			assert.Contains(t, got, "volume_owners")
		})
	}
}

func TestEncode_PlistIsXML(t *testing.T) {
	data, err := Encode(FormatPlist, map[string]any{"ssh_enabled": false})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "<?xml")
	assert.Contains(t, out, "<key>ssh_enabled</key>")
	assert.Contains(t, out, "<false/>")
}

func TestEncode_Table(t *testing.T) {
	data, err := Encode(FormatTable, map[string]any{
		"ntp_servers": []string{"time.example.com", "pool.example.org"},
		"timezone":    "",
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "KEY"))
	assert.Contains(t, lines[2], "ntp_servers")
	assert.Contains(t, lines[2], "time.example.com")
	assert.NotContains(t, lines[3], "ntp_servers")
	assert.Contains(t, lines[3], "pool.example.org")
	assert.Contains(t, lines[4], emptyValue)
}

func TestDecode_Empty(t *testing.T) {
	for _, format := range []Format{FormatPlist, FormatJSON, FormatYAML} {
		got, err := Decode(format, []byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(FormatTable, []byte("KEY VALUE"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))

	_, err = Decode(FormatJSON, []byte("{not json"))
	require.Error(t, err)

	_, err = Decode(FormatYAML, []byte("- just\n- a list\n"))
	require.Error(t, err)
}
