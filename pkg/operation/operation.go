// Copyright 2025 Mamoun's Restaurants
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

package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/mamouns/sitefix/pkg/config"
	"github.com/mamouns/sitefix/pkg/report"
	"github.com/mamouns/sitefix/pkg/rewrite"
	"github.com/mamouns/sitefix/pkg/scan"
)

// 🎯 Operation defines a unit of batch work
type Operation interface {
	// Execute runs the operation
	Execute(ctx context.Context) error

	// Name returns the operation name for logging
	Name() string
}

// ⚙️ Options contains the dependencies an operation needs
type Options struct {
	Config   *config.Config
	Scanner  *scan.Scanner
	Rewriter rewrite.Rewriter
	Reporter *report.Reporter
}

// 🔍 Validate checks that all required dependencies are present
func (o Options) Validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Scanner == nil {
		return errors.Errorf("scanner is required")
	}
	if o.Rewriter == nil {
		return errors.Errorf("rewriter is required")
	}
	if o.Reporter == nil {
		return errors.Errorf("reporter is required")
	}
	return nil
}

// 🏗️ BaseOperation provides common functionality for operations
type BaseOperation struct {
	Config   *config.Config
	Scanner  *scan.Scanner
	Rewriter rewrite.Rewriter
	Reporter *report.Reporter
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{
		Config:   opts.Config,
		Scanner:  opts.Scanner,
		Rewriter: opts.Rewriter,
		Reporter: opts.Reporter,
	}
}
