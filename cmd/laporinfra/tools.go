package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/geo"
	"github.com/laporinfra/laporinfra/internal/imagegps"
	"github.com/spf13/cobra"
)

func newCategoriesCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List report categories and their field options",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, e := range enum.Categories.Entries() {
				fmt.Fprintf(out, "%-16s %s\n", e.Token, e.Label)
				if !verbose {
					continue
				}
				options := enum.Options(enum.Category(e.Token))
				fields := make([]string, 0, len(options))
				for f := range options {
					fields = append(fields, f)
				}
				sort.Strings(fields)
				for _, f := range fields {
					fmt.Fprintf(out, "  %s: %s\n", f, strings.Join(options[f], ", "))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also list the select options of every field")
	return cmd
}

func newGPSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gps <photo>",
		Short: "Print the GPS position embedded in a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p, err := imagegps.MustExtract(data)
			if errors.Is(err, imagegps.ErrNoGPS) {
				return fmt.Errorf("%s has no GPS position", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s,%s\n", geo.FormatCoordinate(p.Lat()), geo.FormatCoordinate(p.Lon()))
			return nil
		},
	}
}
