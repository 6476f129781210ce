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
	"io"
	"os"
	"strings"

	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/defaults"
	"github.com/NVIDIA/hostcond/pkg/errors"
)

// StdoutDestination selects the stdout sink.
const StdoutDestination = "-"

// Sink persists the conditions produced by one module run.
// Write is called once per module, in run order.
type Sink interface {
	Write(ctx context.Context, set condition.Set) error
}

// Option configures sinks built by New.
type Option func(*options)

type options struct {
	out        io.Writer
	kubeClient kubernetes.Interface
	kubeconfig string
}

// WithOutput sets the writer used by the stdout sink.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithKubeClient sets the client used by the ConfigMap sink.
func WithKubeClient(c kubernetes.Interface) Option {
	return func(o *options) {
		o.kubeClient = c
	}
}

// WithKubeconfig sets the kubeconfig path used when the ConfigMap sink
// builds its own client.
func WithKubeconfig(path string) Option {
	return func(o *options) {
		o.kubeconfig = path
	}
}

// New returns the sink for a destination.
//
//   - "" uses the default conditions file.
//   - "-" prints to stdout; format defaults to YAML.
//   - cm://namespace/name writes to a ConfigMap; format is ignored.
//   - anything else is a file path; an empty format is taken from the
//     extension.
func New(dest string, format Format, opts ...Option) (Sink, error) {
	o := &options{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	if format != "" && format.IsUnknown() {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown format %q, supported: %s", format, strings.Join(SupportedFormats(), ", ")))
	}

	dest = strings.TrimSpace(dest)
	switch {
	case dest == StdoutDestination:
		if format == "" {
			format = FormatYAML
		}
		return NewStdoutSink(o.out, format), nil

	case strings.HasPrefix(dest, ConfigMapURIScheme):
		namespace, name, err := parseConfigMapURI(dest)
		if err != nil {
			return nil, err
		}
		cm := NewConfigMapSink(namespace, name, o.kubeClient)
		cm.Kubeconfig = o.kubeconfig
		return cm, nil

	default:
		if dest == "" {
			dest = defaults.ConditionsFile
		}
		if format == "" {
			format = FormatFromPath(dest)
		}
		if !format.Decodable() {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("format %q cannot be used for a conditions file", format))
		}
		return NewFileSink(dest, format), nil
	}
}
