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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostcond/pkg/errors"
)

func TestPurge(t *testing.T) {
	t.Run("removes existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ConditionalItems.plist")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		require.NoError(t, Purge(path))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file", func(t *testing.T) {
		assert.NoError(t, Purge(filepath.Join(t.TempDir(), "absent.plist")))
	})

	t.Run("non-file destinations", func(t *testing.T) {
		assert.NoError(t, Purge(StdoutDestination))
		assert.NoError(t, Purge("cm://fleet/node-a"))
	})
}

func TestReadPreferences(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "prefs.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("certificates: true\npppcp: false\nbogus: maybe\n"), 0o644))

	plistPath := filepath.Join(dir, "prefs.plist")
	require.NoError(t, os.WriteFile(plistPath, []byte(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>python</key>
	<true/>
	<key>system_setup</key>
	<false/>
</dict>
</plist>
`), 0o644))

	badPath := filepath.Join(dir, "prefs.json")
	require.NoError(t, os.WriteFile(badPath, []byte("[true]"), 0o644))

	t.Run("yaml", func(t *testing.T) {
		prefs, err := ReadPreferences(yamlPath)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"certificates": true, "pppcp": false}, prefs)
	})

	t.Run("plist", func(t *testing.T) {
		prefs, err := ReadPreferences(plistPath)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"python": true, "system_setup": false}, prefs)
	})

	t.Run("missing", func(t *testing.T) {
		prefs, err := ReadPreferences(filepath.Join(dir, "absent.plist"))
		require.NoError(t, err)
		assert.Nil(t, prefs)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ReadPreferences(badPath)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	})
}
