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

// Package useraccounts reports local user accounts: home directories,
// SecureToken status, and APFS volume ownership.
package useraccounts

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"howett.net/plist"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/errors"
	"github.com/NVIDIA/hostcond/pkg/invoker"
	"github.com/NVIDIA/hostcond/pkg/parser"
	"github.com/NVIDIA/hostcond/pkg/processor"
	"github.com/NVIDIA/hostcond/pkg/version"
)

// Name is the module name used for selection.
const Name = "user_accounts"

// Condition keys produced by this module.
const (
	KeyHomePath     = "user_home_path"
	KeySecureToken  = "secure_token"
	KeyVolumeOwners = "volume_owners"
)

const (
	dscl        = "/usr/bin/dscl"
	sysadminctl = "/usr/sbin/sysadminctl"
	diskutil    = "/usr/sbin/diskutil"

	homeAttr           = "dsAttrTypeStandard:NFSHomeDirectory"
	guidPrefix         = "GeneratedUID:"
	personalRecovery   = "PersonalRecovery"
	secureTokenEnabled = "ENABLED"
)

// secureTokenSince is the first release that reports SecureToken status.
var secureTokenSince = version.MustParseVersion("10.14")

var ignoredUsers = map[string]struct{}{
	"daemon": {},
	"nobody": {},
	"root":   {},
}

// Processor gathers user account conditions.
type Processor struct {
	Invoker invoker.Invoker
}

// New creates the user_accounts module from cfg.
func New(cfg *processor.Config) *Processor {
	return &Processor{Invoker: cfg.Invoker}
}

// Name implements processor.Processor.
func (p *Processor) Name() string { return Name }

// Run implements processor.Processor.
func (p *Processor) Run(ctx context.Context) condition.Set {
	users := p.users(ctx)

	return condition.NewBuilder().
		SetStrings(KeyHomePath, p.homePaths(ctx, users)).
		SetStrings(KeySecureToken, p.secureTokens(ctx, users)).
		SetStrings(KeyVolumeOwners, p.volumeOwners(ctx, users)).
		Build()
}

// users lists interactive accounts in lexical order.
func (p *Processor) users(ctx context.Context) []string {
	res, err := invoker.Probe(ctx, p.Invoker, dscl, ".", "-list", "/Users")
	if err != nil {
		slog.Warn("user listing unavailable", "code", errors.CodeOf(err), "error", err)
		return nil
	}

	seq := condition.NewSequence()
	for _, u := range parser.NewParser().Lines(res.Stdout) {
		if strings.HasPrefix(u, "_") {
			continue
		}
		if _, skip := ignoredUsers[u]; skip {
			continue
		}
		seq.Add(u)
	}

	users := seq.Values()
	sort.Strings(users)
	return users
}

// homePaths returns "user,home" pairs.
func (p *Processor) homePaths(ctx context.Context, users []string) []string {
	seq := condition.NewSequence()
	for _, u := range users {
		res, err := invoker.Probe(ctx, p.Invoker, dscl, "-plist", ".", "-read", "/Users/"+u, "NFSHomeDirectory")
		if err != nil {
			slog.Debug("home directory unavailable", "user", u, "code", errors.CodeOf(err))
			continue
		}

		var attrs map[string]any
		if _, err := plist.Unmarshal([]byte(res.Stdout), &attrs); err != nil {
			slog.Debug("home directory unparseable", "user", u, "error", err)
			continue
		}

		if home := firstString(attrs[homeAttr]); home != "" {
			seq.Add(u + "," + home)
		}
	}
	return seq.Values()
}

// secureTokens returns "user,ENABLED" for accounts holding a SecureToken.
func (p *Processor) secureTokens(ctx context.Context, users []string) []string {
	seq := condition.NewSequence()
	if len(users) == 0 {
		return seq.Values()
	}

	v, ok := processor.ProductVersion(ctx, p.Invoker)
	if !ok || !v.EqualsOrNewer(secureTokenSince) {
		slog.Debug("secure token status not supported", "version", v.String(), "known", ok)
		return seq.Values()
	}

	for _, u := range users {
		// sysadminctl reports on stderr.
		res, err := p.Invoker.Invoke(ctx, []string{sysadminctl, "-secureTokenStatus", u}, "")
		if err != nil || !res.Succeeded() {
			continue
		}
		if strings.Contains(res.Stderr+res.Stdout, secureTokenEnabled) {
			seq.Add(u + "," + secureTokenEnabled)
		}
	}
	return seq.Values()
}

// volumeOwners returns the sorted names of APFS volume owners.
func (p *Processor) volumeOwners(ctx context.Context, users []string) []string {
	owners := make([]string, 0)

	guids := p.guids(ctx, users)

	res, err := invoker.Probe(ctx, p.Invoker, diskutil, "apfs", "listUsers", "/", "-plist")
	if err != nil {
		slog.Debug("volume users unavailable", "code", errors.CodeOf(err))
		return owners
	}

	var doc struct {
		Users []struct {
			CryptoType  string `plist:"APFSCryptoUserType"`
			CryptoUUID  string `plist:"APFSCryptoUserUUID"`
			VolumeOwner bool   `plist:"VolumeOwner"`
		} `plist:"Users"`
	}
	if _, err := plist.Unmarshal([]byte(res.Stdout), &doc); err != nil {
		slog.Debug("volume users unparseable", "error", err)
		return owners
	}

	seen := condition.NewSequence()
	for _, u := range doc.Users {
		if !u.VolumeOwner || u.CryptoType == personalRecovery {
			continue
		}
		name, ok := guids[u.CryptoUUID]
		if !ok {
			continue
		}
		seen.Add(name)
	}

	owners = seen.Values()
	sort.Strings(owners)
	return owners
}

// guids maps each user's GeneratedUID to the user name.
func (p *Processor) guids(ctx context.Context, users []string) map[string]string {
	out := make(map[string]string, len(users))
	for _, u := range users {
		res, err := invoker.Probe(ctx, p.Invoker, dscl, ".", "-read", "/Users/"+u, "GeneratedUID")
		if err != nil {
			continue
		}
		if id, ok := parser.FirstValue(res.Stdout, guidPrefix); ok {
			if id = strings.TrimSpace(id); id != "" {
				out[id] = u
			}
		}
	}
	return out
}

// firstString accepts a string or the first string of an array.
func firstString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
