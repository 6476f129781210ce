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

package defaults

// Well-known locations.
const (
	// ConditionsFile is the conditions file consumed by the deployment policy engine.
	ConditionsFile = "/Library/Managed Installs/ConditionalItems.plist"

	// PreferencesFile holds the persisted default module selection.
	PreferencesFile = "/Library/Preferences/com.nvidia.hostcond.plist"

	// SystemKeychain is the certificate store listed by the certificates module.
	SystemKeychain = "/Library/Keychains/System.keychain"

	// TCCOverridesFile holds the MDM-delivered privacy preference overrides.
	TCCOverridesFile = "/Library/Application Support/com.apple.TCC/MDMOverrides.plist"

	// NTPConfigFile lists the configured network time servers.
	NTPConfigFile = "/etc/ntp.conf"

	// ConfigMapDataKey is the ConfigMap data key holding the conditions document.
	ConfigMapDataKey = "conditions.yaml"
)
