package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"irkit/internal/fixture"
	"irkit/internal/native"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [flags] <fixture>",
	Short: "Load a fixture and save the native context as a .irk snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  snapshotExecution,
}

func init() {
	snapshotCmd.Flags().StringP("output", "o", "", "snapshot path (default: fixture name with .irk)")
}

func snapshotExecution(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	src := args[0]
	if output == "" {
		output = strings.TrimSuffix(src, filepath.Ext(src)) + ".irk"
	}
	if filepath.Clean(output) == filepath.Clean(src) {
		return fmt.Errorf("snapshot output %q would overwrite its input", output)
	}

	c, err := fixture.Load(src)
	if err != nil {
		return err
	}
	if err := writeSnapshot(output, c); err != nil {
		return err
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d modules, context %s)\n", output, len(c.Modules()), c.ID())
	}
	return nil
}

func writeSnapshot(path string, c *native.Context) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close snapshot: %w", cerr)
		}
	}()
	if err := native.Encode(f, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
