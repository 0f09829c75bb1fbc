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

// Package cmd implements the strql command tree.
package cmd

import (
	"github.com/spf13/cobra"
)

// New builds the strql root command: run and check subcommands wired
// through the lexer, parser, and solver.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:   "strql",
		Short: "strql solves declarative string-partitioning programs against an input text.",

		// Parse and compile errors are printed by our own run
		// functions via errors.Print; the error a command returns is
		// printed once by main, not by cobra's default one-liner.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckCmd())
	return root
}
