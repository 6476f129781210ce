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
	"fmt"
	"log/slog"
	"strings"
	"sync"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/util/retry"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/defaults"
	"github.com/NVIDIA/hostcond/pkg/errors"
)

// ConfigMapURIScheme prefixes ConfigMap destinations: cm://namespace/name.
const ConfigMapURIScheme = "cm://"

var configMapLabels = map[string]string{
	"app.kubernetes.io/name":       "hostcond",
	"app.kubernetes.io/component":  "conditions",
	"app.kubernetes.io/managed-by": "hostcond",
}

// ConfigMapSink merges condition sets into the conditions.yaml key of a ConfigMap.
type ConfigMapSink struct {
	Namespace string
	Name      string

	// Kubeconfig is used when Client is nil. Empty means automatic discovery.
	Kubeconfig string

	// Client is built on first Write when nil.
	Client kubernetes.Interface

	mu sync.Mutex
}

// NewConfigMapSink returns a sink for the ConfigMap namespace/name.
func NewConfigMapSink(namespace, name string, client kubernetes.Interface) *ConfigMapSink {
	return &ConfigMapSink{
		Namespace: namespace,
		Name:      name,
		Client:    client,
	}
}

// Write merges set into the ConfigMap, creating it when absent.
// Update conflicts are retried with a fresh read.
func (s *ConfigMapSink) Write(ctx context.Context, set condition.Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.client()
	if err != nil {
		return errors.Wrap(errors.ErrCodeSinkFailure, "failed to get kubernetes client", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
		return s.merge(writeCtx, client, set)
	})
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeSinkFailure, "failed to write conditions ConfigMap", err,
			map[string]any{"namespace": s.Namespace, "name": s.Name})
	}

	slog.Debug("conditions written to ConfigMap",
		"namespace", s.Namespace,
		"name", s.Name,
		"keys", len(set))
	return nil
}

func (s *ConfigMapSink) merge(ctx context.Context, client kubernetes.Interface, set condition.Set) error {
	cms := client.CoreV1().ConfigMaps(s.Namespace)

	existing, err := cms.Get(ctx, s.Name, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return fmt.Errorf("failed to get ConfigMap: %w", err)
		}
		data, encErr := Encode(FormatYAML, set.Raw())
		if encErr != nil {
			return encErr
		}
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      s.Name,
				Namespace: s.Namespace,
				Labels:    configMapLabels,
			},
			Data: map[string]string{defaults.ConfigMapDataKey: string(data)},
		}
		if _, err := cms.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create ConfigMap: %w", err)
		}
		return nil
	}

	doc, err := Decode(FormatYAML, []byte(existing.Data[defaults.ConfigMapDataKey]))
	if err != nil {
		return err
	}
	for k, v := range set.Raw() {
		doc[k] = v
	}
	data, err := Encode(FormatYAML, doc)
	if err != nil {
		return err
	}

	updated := existing.DeepCopy()
	if updated.Data == nil {
		updated.Data = map[string]string{}
	}
	if updated.Labels == nil {
		updated.Labels = map[string]string{}
	}
	for k, v := range configMapLabels {
		updated.Labels[k] = v
	}
	updated.Data[defaults.ConfigMapDataKey] = string(data)

	if _, err := cms.Update(ctx, updated, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update ConfigMap: %w", err)
	}
	return nil
}

func (s *ConfigMapSink) client() (kubernetes.Interface, error) {
	if s.Client != nil {
		return s.Client, nil
	}
	c, err := NewKubeClient(s.Kubeconfig)
	if err != nil {
		return nil, err
	}
	s.Client = c
	return c, nil
}

// parseConfigMapURI parses cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid ConfigMap URI %q: must start with %s", uri, ConfigMapURIScheme))
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid ConfigMap URI %q: expected %snamespace/name", uri, ConfigMapURIScheme))
	}

	namespace, name = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid ConfigMap URI %q: namespace is empty", uri))
	}
	if name == "" {
		return "", "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid ConfigMap URI %q: name is empty", uri))
	}
	return namespace, name, nil
}
