// Copyright 2018 The CUE Authors
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

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/efinauri/strql/cue/errors"
	"github.com/efinauri/strql/internal/parser"
	"github.com/efinauri/strql/internal/solver"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <program.strql>",
		Short: "Parse and flatten a program, reporting compile-time errors without solving.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, programPath string) error {
	src, err := os.ReadFile(programPath)
	if err != nil {
		return err
	}
	prog, err := parser.Parse(programPath, string(src))
	if err != nil {
		errors.Print(os.Stderr, err)
		return fmt.Errorf("strql: failed to parse %s", programPath)
	}
	g, err := solver.Flatten(prog)
	if err != nil {
		errors.Print(os.Stderr, err)
		return fmt.Errorf("strql: failed to compile %s", programPath)
	}
	printer().Fprintf(cmd.OutOrStdout(), "%s: ok, %d statement(s)\n", programPath, len(g.NameToID))
	return nil
}
