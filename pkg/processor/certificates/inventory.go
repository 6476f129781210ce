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
	"github.com/NVIDIA/hostcond/pkg/condition"
)

// Condition keys produced by this module.
const (
	KeySHA1         = "certificates_sha1"
	KeySHA1Dates    = "certificates_sha1_dates"
	KeySHA256       = "certificates_sha256"
	KeySHA256Dates  = "certificates_sha256_dates"
	KeySubject      = "certificates_subject"
	KeySubjectDates = "certificates_subject_dates"
)

// Inventory is the typed result of one store walk.
type Inventory struct {
	SHA1         []string `json:"sha1" yaml:"sha1"`
	SHA1Dates    []string `json:"sha1Dates" yaml:"sha1Dates"`
	SHA256       []string `json:"sha256" yaml:"sha256"`
	SHA256Dates  []string `json:"sha256Dates" yaml:"sha256Dates"`
	Subject      []string `json:"subject" yaml:"subject"`
	SubjectDates []string `json:"subjectDates" yaml:"subjectDates"`
}

// Conditions flattens the inventory into the module's condition set.
func (inv *Inventory) Conditions() condition.Set {
	return condition.NewBuilder().
		SetStrings(KeySHA1, inv.SHA1).
		SetStrings(KeySHA1Dates, inv.SHA1Dates).
		SetStrings(KeySHA256, inv.SHA256).
		SetStrings(KeySHA256Dates, inv.SHA256Dates).
		SetStrings(KeySubject, inv.Subject).
		SetStrings(KeySubjectDates, inv.SubjectDates).
		Build()
}

// tables accumulates the six de-duplicated sequences.
type tables struct {
	sha1, sha1Dates, sha256, sha256Dates, subject, subjectDates *condition.Sequence
}

func newTables() *tables {
	return &tables{
		sha1:         condition.NewSequence(),
		sha1Dates:    condition.NewSequence(),
		sha256:       condition.NewSequence(),
		sha256Dates:  condition.NewSequence(),
		subject:      condition.NewSequence(),
		subjectDates: condition.NewSequence(),
	}
}

// add folds one record and its metadata, if any, into the tables.
func (t *tables) add(rec Record, meta *Metadata) {
	if rec.SHA1 != "" {
		t.sha1.Add(rec.SHA1)
	}
	if rec.SHA256 != "" {
		t.sha256.Add(rec.SHA256)
	}
	if meta == nil {
		return
	}

	window := meta.Window()
	if window != "" {
		if rec.SHA1 != "" {
			t.sha1Dates.Add(rec.SHA1 + "," + window)
		}
		if rec.SHA256 != "" {
			t.sha256Dates.Add(rec.SHA256 + "," + window)
		}
	}
	if meta.Subject != "" {
		t.subject.Add(meta.Subject)
		if window != "" {
			t.subjectDates.Add(meta.Subject + "," + window)
		}
	}
}

func (t *tables) inventory() *Inventory {
	return &Inventory{
		SHA1:         t.sha1.Values(),
		SHA1Dates:    t.sha1Dates.Values(),
		SHA256:       t.sha256.Values(),
		SHA256Dates:  t.sha256Dates.Values(),
		Subject:      t.subject.Values(),
		SubjectDates: t.subjectDates.Values(),
	}
}
