/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostcond/pkg/processor/builtin"
)

func modulesCmd() *cli.Command {
	return &cli.Command{
		Name:  "modules",
		Usage: "List the available condition modules",
		Action: func(_ context.Context, cmd *cli.Command) error {
			flags := make(map[string]string, len(moduleFlags))
			for _, m := range moduleFlags {
				flags[m.module] = "--" + m.flag
			}

			w := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODULE\tFLAG")
			fmt.Fprintln(w, "------\t----")
			for _, n := range builtin.Names() {
				fmt.Fprintf(w, "%s\t%s\n", n, flags[n])
			}
			return w.Flush()
		},
	}
}
