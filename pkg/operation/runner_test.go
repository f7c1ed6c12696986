// Copyright 2025 walteh LLC
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

package operation_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/assetrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

type fakeOperation struct {
	name    string
	err     error
	release chan struct{}
	ran     chan struct{}
}

func (f *fakeOperation) Name() string { return f.name }

func (f *fakeOperation) Execute(ctx context.Context) error {
	if f.ran != nil {
		close(f.ran)
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func TestRunner(t *testing.T) {
	errBoom := errors.Base("boom")

	tests := []struct {
		name    string
		async   bool
		err     error
		wantErr string
	}{
		{name: "sync_success"},
		{name: "async_success", async: true},
		{name: "sync_failure", err: errBoom, wantErr: "executing operation fake: boom"},
		{name: "async_failure", async: true, err: errBoom, wantErr: "executing operation fake: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zerolog.New(zerolog.NewTestWriter(t))
			runner := operation.NewRunner(&logger, tt.async)

			err := runner.Run(context.Background(), &fakeOperation{name: "fake", err: tt.err})
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, errBoom)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestRunnerAsyncCancellation(t *testing.T) {
	op := &fakeOperation{name: "slow", release: make(chan struct{}), ran: make(chan struct{})}
	defer close(op.release)

	ctx, cancel := context.WithCancel(context.Background())
	runner := operation.NewRunner(nil, true)

	errc := make(chan error, 1)
	go func() { errc <- runner.Run(ctx, op) }()

	<-op.ran
	cancel()

	select {
	case err := <-errc:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, err.Error(), "operation cancelled")
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not return after cancellation")
	}
}
