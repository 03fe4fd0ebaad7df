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

package testonly

import (
	"strings"
	"testing"
)

// EnsureErrorContains checks that err is not nil and that its message
// contains s, failing the test with a fatal otherwise.
func EnsureErrorContains(t *testing.T, err error, s string) {
	t.Helper()
	if err == nil {
		t.Fatalf("operation unexpectedly succeeded, want error containing %q", s)
	}
	if !strings.Contains(err.Error(), s) {
		t.Fatalf("got error %q, want one containing %q", err, s)
	}
}
