// Copyright 2026 Google LLC. All Rights Reserved.
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

package server

import (
	"errors"
	"fmt"

	"github.com/google/sparsemerkle/merkle/sparse"
)

// errInvalidArgument is wrapped by every request validation failure.
var errInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidArgument, fmt.Sprintf(format, args...))
}

func validateTreeRequest(req *TreeRequest) error {
	if len(req.Items) == 0 && len(req.Leaves) == 0 {
		return invalidArgument("TreeRequest has neither items nor leaves, want one")
	}
	if len(req.Items) > 0 && len(req.Leaves) > 0 {
		return invalidArgument("TreeRequest has %d items and %d leaves, want only one", len(req.Items), len(req.Leaves))
	}
	return nil
}

func validateProofRequest(req *ProofRequest) error {
	if err := validateTreeRequest(&req.TreeRequest); err != nil {
		return err
	}
	if req.Index >= sparse.MaxLeaves {
		return invalidArgument("ProofRequest.Index: %d, want < %d", req.Index, uint64(sparse.MaxLeaves))
	}
	return nil
}

func validateVerifyRequest(req *VerifyRequest, maxChecks int) error {
	if len(req.Checks) == 0 {
		return invalidArgument("len(VerifyRequest.Checks)=0, want > 0")
	}
	if len(req.Checks) > maxChecks {
		return invalidArgument("len(VerifyRequest.Checks)=%d, want <= %d", len(req.Checks), maxChecks)
	}
	return nil
}
