package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdforge/promptkit/internal/uiconf"
)

func newUIConfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uiconf",
		Short: "Validate and rewrite UI override documents",
	}
	cmd.AddCommand(
		newUIConfCheckCmd(),
		newUIConfFmtCmd(),
	)
	return cmd
}

// loadOverrideInputs reads the override document and the registry
// description the GUI would register at startup.
func loadOverrideInputs(docPath, regPath string) ([]byte, *uiconf.Registry, error) {
	doc, err := os.ReadFile(docPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading override document: %w", err)
	}
	regData, err := os.ReadFile(regPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading registry description: %w", err)
	}
	reg, err := uiconf.LoadRegistryDescription(regData)
	if err != nil {
		return nil, nil, err
	}
	return doc, reg, nil
}

func newUIConfCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <ui-config.json> <registry.json>",
		Short: "Validate an override document against a control registry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, reg, err := loadOverrideInputs(args[0], args[1])
			if err != nil {
				return err
			}

			tabs := reg.Tabs()
			controls := 0
			for _, tab := range tabs {
				controls += len(reg.Tab(tab))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registry: %d control(s) across %d tab(s)\n",
				controls, len(tabs))

			report := uiconf.Apply(doc, reg)
			fmt.Fprintln(cmd.OutOrStdout(), report)
			if report.HasErrors() {
				return fmt.Errorf("%d invalid override(s)", len(report.Errors))
			}
			return nil
		},
	}
	return cmd
}

func newUIConfFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <ui-config.json> <registry.json>",
		Short: "Rewrite an override document with canonical control names",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, reg, err := loadOverrideInputs(args[0], args[1])
			if err != nil {
				return err
			}

			out, report, err := uiconf.Normalize(doc, reg)
			if err != nil {
				return err
			}
			for _, e := range report.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "dropped %s\n", e)
			}

			if write {
				return os.WriteFile(args[0], out, 0o644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "rewrite the document in place instead of printing it")
	return cmd
}
