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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/defaults"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{
			name:          "valid URI",
			uri:           "cm://fleet/node-conditions",
			wantNamespace: "fleet",
			wantName:      "node-conditions",
		},
		{
			name:          "valid URI with spaces",
			uri:           "cm://fleet / node-conditions ",
			wantNamespace: "fleet",
			wantName:      "node-conditions",
		},
		{
			name:    "missing scheme",
			uri:     "fleet/node-conditions",
			wantErr: true,
		},
		{
			name:    "missing name",
			uri:     "cm://fleet/",
			wantErr: true,
		},
		{
			name:    "missing namespace",
			uri:     "cm:///node-conditions",
			wantErr: true,
		},
		{
			name:    "missing separator",
			uri:     "cm://fleet",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namespace, name, err := parseConfigMapURI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNamespace, namespace)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func getConditions(t *testing.T, s *ConfigMapSink) (*corev1.ConfigMap, map[string]any) {
	t.Helper()
	cm, err := s.Client.CoreV1().ConfigMaps(s.Namespace).Get(context.Background(), s.Name, metav1.GetOptions{})
	require.NoError(t, err)
	doc, err := Decode(FormatYAML, []byte(cm.Data[defaults.ConfigMapDataKey]))
	require.NoError(t, err)
	return cm, doc
}

func TestConfigMapSink_CreateThenMerge(t *testing.T) {
	s := NewConfigMapSink("fleet", "node-a", fake.NewClientset())
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, condition.Set{
		"certificate_sha1": condition.Strings([]string{"AA01"}),
		"timezone":         condition.Str("UTC"),
	}))

	cm, doc := getConditions(t, s)
	assert.Equal(t, "hostcond", cm.Labels["app.kubernetes.io/name"])
	assert.Equal(t, []any{"AA01"}, doc["certificate_sha1"])
	assert.Equal(t, "UTC", doc["timezone"])

	require.NoError(t, s.Write(ctx, condition.Set{
		"timezone":    condition.Str("Europe/Paris"),
		"sip_enabled": condition.Bool(true),
	}))

	_, doc = getConditions(t, s)
	assert.Equal(t, []any{"AA01"}, doc["certificate_sha1"])
	assert.Equal(t, "Europe/Paris", doc["timezone"])
	assert.Equal(t, true, doc["sip_enabled"])
}

func TestConfigMapSink_PreservesOtherData(t *testing.T) {
	existing := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "node-b",
			Namespace: "fleet",
			Labels:    map[string]string{"team": "infra"},
		},
		Data: map[string]string{
			"notes":                   "keep me",
			defaults.ConfigMapDataKey: "machine_type: desktop\n",
		},
	}
	s := NewConfigMapSink("fleet", "node-b", fake.NewClientset(existing))

	require.NoError(t, s.Write(context.Background(), condition.Set{"ssh_enabled": condition.Bool(false)}))

	cm, doc := getConditions(t, s)
	assert.Equal(t, "keep me", cm.Data["notes"])
	assert.Equal(t, "infra", cm.Labels["team"])
	assert.Equal(t, "desktop", doc["machine_type"])
	assert.Equal(t, false, doc["ssh_enabled"])
}
