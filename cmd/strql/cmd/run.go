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
	"encoding/json"
	goerrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/efinauri/strql/cue/errors"
	"github.com/efinauri/strql/internal/parser"
	"github.com/efinauri/strql/internal/solver"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <program.strql> <input file>",
		Short: "Solve a program against an input file and print the result tree as JSON.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args[0], args[1])
		},
	}
}

func runSolve(cmd *cobra.Command, programPath, inputPath string) error {
	progSrc, err := os.ReadFile(programPath)
	if err != nil {
		return err
	}
	input, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	prog, err := parser.Parse(programPath, string(progSrc))
	if err != nil {
		errors.Print(os.Stderr, err)
		return fmt.Errorf("strql: failed to parse %s", programPath)
	}

	result, err := solver.Solve(cmd.Context(), prog, input)
	if err != nil {
		var partial *solver.PartialMatchError
		if goerrors.As(err, &partial) {
			msg := printer().Sprintf("strql: matched only %d of %d byte(s)", partial.MatchedBytes, partial.TotalBytes)
			return goerrors.New(msg)
		}
		return fmt.Errorf("strql: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
