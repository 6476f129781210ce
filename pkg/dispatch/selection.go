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

package dispatch

import "sort"

// Source names where a selection came from.
type Source string

const (
	// SourceExplicit means the caller named the modules.
	SourceExplicit Source = "explicit"
	// SourcePreferences means the persisted preferences decided.
	SourcePreferences Source = "preferences"
	// SourceAll means no selection was given and every module runs.
	SourceAll Source = "all"
)

// Selection is the ordered list of module names to run.
type Selection struct {
	Names  []string
	Source Source
}

// ResolveSelection decides which modules run.
//
// Any explicit name wins over the preferences entirely. Otherwise a non-nil
// prefs map selects the names mapped to true; an existing but empty
// preferences document therefore selects nothing. Otherwise every known
// module is selected.
//
// known is the declared module order. Selected names found in known keep
// that order; the rest follow in lexical order. Duplicates are removed.
func ResolveSelection(explicit []string, prefs map[string]bool, known []string) Selection {
	switch {
	case len(explicit) > 0:
		return Selection{Names: order(explicit, known), Source: SourceExplicit}

	case prefs != nil:
		names := make([]string, 0, len(prefs))
		for name, enabled := range prefs {
			if enabled {
				names = append(names, name)
			}
		}
		return Selection{Names: order(names, known), Source: SourcePreferences}

	default:
		names := make([]string, len(known))
		copy(names, known)
		return Selection{Names: names, Source: SourceAll}
	}
}

func order(names, known []string) []string {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			wanted[n] = true
		}
	}

	out := make([]string, 0, len(wanted))
	for _, k := range known {
		if wanted[k] {
			out = append(out, k)
			delete(wanted, k)
		}
	}

	rest := make([]string, 0, len(wanted))
	for n := range wanted {
		rest = append(rest, n)
	}
	sort.Strings(rest)

	return append(out, rest...)
}
