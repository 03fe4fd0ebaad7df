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

// Package cmd holds helpers shared by the binaries of this module.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// ParseFlagFile sets flags from the YAML file at the provided path. The file
// holds a mapping from flag names to values, and values may refer to
// environment variables as $VAR or ${VAR}. Re-parses the command line after
// applying the file so that flags provided on the command line take
// precedence over flags provided in the file.
func ParseFlagFile(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return parseFlags(flag.CommandLine, file, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, contents []byte, args []string) error {
	values := map[string]interface{}{}
	if err := yaml.UnmarshalStrict(contents, &values); err != nil {
		return fmt.Errorf("parsing flag file: %v", err)
	}

	// Sorted so that errors are reported deterministically.
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var value string
		switch v := values[name].(type) {
		case nil:
			value = ""
		case map[interface{}]interface{}, []interface{}:
			return fmt.Errorf("flag %q: value must be a scalar, got %T", name, v)
		default:
			value = os.ExpandEnv(fmt.Sprint(v))
		}
		if fs.Lookup(name) == nil {
			return fmt.Errorf("flag provided but not defined: -%s", name)
		}
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("flag %q: %v", name, err)
		}
	}

	// Parse the command line again so that it can override the file.
	return fs.Parse(args)
}
