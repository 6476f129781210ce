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

// Package pppcp reports privacy preference (TCC) overrides delivered by MDM
// configuration profiles.
//
// Every TCC service maps to one tcc_* condition holding a list of
// "<auth>,<identifier>" entries. Apple Events entries also name the
// receiving application: "<auth>,<identifier>,<receiver>". The auth value
// is the lower-cased Authorization, or "allow"/"deny" derived from the older
// boolean Allowed, with AllowStandardUserToSetSystemService shortened to
// "allow_standard_user".
package pppcp

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"howett.net/plist"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/processor"
)

// Name is the module name used for selection.
const Name = "pppcp"

const appleEvents = "kTCCServiceAppleEvents"

// Services maps TCC service identifiers to condition keys.
var Services = map[string]string{
	"kTCCServiceAccessibility":                "tcc_accessibility",
	"kTCCServiceAddressBook":                  "tcc_address_book",
	"kTCCServiceAppleEvents":                  "tcc_apple_events",
	"kTCCServiceCalendar":                     "tcc_calendar",
	"kTCCServiceCamera":                       "tcc_camera",
	"kTCCServiceFileProviderPresence":         "tcc_file_provider_presence",
	"kTCCServiceListenEvent":                  "tcc_listen_event",
	"kTCCServiceMediaLibrary":                 "tcc_media_library",
	"kTCCServiceMicrophone":                   "tcc_microphone",
	"kTCCServicePhotos":                       "tcc_photos",
	"kTCCServicePostEvent":                    "tcc_post_event",
	"kTCCServiceReminders":                    "tcc_reminders",
	"kTCCServiceScreenCapture":                "tcc_screen_capture",
	"kTCCServiceSpeechRecognition":            "tcc_speech_recognition",
	"kTCCServiceSystemPolicyAllFiles":         "tcc_all_files",
	"kTCCServiceSystemPolicyDesktopFolder":    "tcc_desktop_folder",
	"kTCCServiceSystemPolicyDocumentsFolder":  "tcc_documents_folder",
	"kTCCServiceSystemPolicyDownloadsFolder":  "tcc_downloads_folder",
	"kTCCServiceSystemPolicyNetworkVolumes":   "tcc_network_volumes",
	"kTCCServiceSystemPolicyRemovableVolumes": "tcc_removable_volumes",
	"kTCCServiceSystemPolicySysAdminFiles":    "tcc_sys_admin_files",
}

// Processor gathers privacy preference override conditions.
type Processor struct {
	Path string
}

// New creates the pppcp module from cfg.
func New(cfg *processor.Config) *Processor {
	return &Processor{Path: cfg.TCCOverrides}
}

// Name implements processor.Processor.
func (p *Processor) Name() string { return Name }

// Run implements processor.Processor.
func (p *Processor) Run(ctx context.Context) condition.Set {
	tables := make(map[string]*condition.Sequence, len(Services))
	for _, key := range Services {
		tables[key] = condition.NewSequence()
	}

	for _, payload := range p.overrides() {
		for _, service := range sortedKeys(payload) {
			key, known := Services[service]
			if !known {
				slog.Debug("skipping unknown TCC service", "service", service)
				continue
			}
			for _, entry := range entries(service, payload[service]) {
				tables[key].Add(entry)
			}
		}
	}

	b := condition.NewBuilder()
	for key, seq := range tables {
		b.SetStrings(key, seq.Values())
	}
	return b.Build()
}

// overrides reads the overrides plist in a stable order. A missing or
// unreadable file yields nothing.
func (p *Processor) overrides() []map[string]any {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("TCC overrides unreadable", "path", p.Path, "error", err)
		}
		return nil
	}

	var doc map[string]any
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		slog.Warn("TCC overrides unparseable", "path", p.Path, "error", err)
		return nil
	}

	out := make([]map[string]any, 0, len(doc))
	for _, id := range sortedKeys(doc) {
		if payload, ok := doc[id].(map[string]any); ok {
			out = append(out, payload)
		}
	}
	return out
}

// entries renders one service's override payload.
func entries(service string, v any) []string {
	dict, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	if service != appleEvents {
		auth, id := authorization(dict), str(dict["Identifier"])
		if auth == "" || id == "" {
			return nil
		}
		return []string{auth + "," + id}
	}

	// Apple Events nest one dictionary per receiving application.
	var out []string
	for _, receiver := range sortedKeys(dict) {
		sub, ok := dict[receiver].(map[string]any)
		if !ok {
			continue
		}
		auth, id, ae := authorization(sub), str(sub["Identifier"]), str(sub["AEReceiverIdentifier"])
		if auth == "" || id == "" || ae == "" {
			continue
		}
		out = append(out, auth+","+id+","+ae)
	}
	return out
}

// authorization prefers Authorization and falls back to the boolean Allowed.
func authorization(dict map[string]any) string {
	auth := str(dict["Authorization"])
	if auth == "" {
		allowed, ok := dict["Allowed"].(bool)
		if !ok {
			return ""
		}
		auth = "Deny"
		if allowed {
			auth = "Allow"
		}
	}
	if auth == "AllowStandardUserToSetSystemService" {
		auth = "allow_standard_user"
	}
	return strings.ToLower(auth)
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
