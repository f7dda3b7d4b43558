package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eringen/headkit/presets"
)

// presetKinds maps a preset name to a constructor for its input type.
var presetKinds = map[string]func() presets.Preset{
	"blog":    func() presets.Preset { return &presets.BlogPost{} },
	"product": func() presets.Preset { return &presets.Product{} },
	"page":    func() presets.Preset { return &presets.Page{} },
	"social":  func() presets.Preset { return &presets.Social{} },
}

func presetNames() []string {
	names := make([]string, 0, len(presetKinds))
	for k := range presetKinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func init() {
	cmd := &cobra.Command{
		Use:       "preset <" + strings.Join(presetNames(), "|") + ">",
		Short:     "Build a page config from a preset input file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: presetNames(),
		RunE:      runPreset,
	}
	cmd.Flags().StringP("file", "f", "", "Preset input, YAML or JSON (required)")
	cmd.Flags().StringP("defaults", "d", "", "Site defaults file, YAML or JSON")
	cmd.Flags().StringP("output", "o", "html", "Output: html, json or yaml")
	cmd.MarkFlagRequired("file")
	rootCmd.AddCommand(cmd)
}

func runPreset(cmd *cobra.Command, args []string) error {
	newPreset, ok := presetKinds[args[0]]
	if !ok {
		return fmt.Errorf("unknown preset %q (want one of %s)", args[0], strings.Join(presetNames(), ", "))
	}
	file, _ := cmd.Flags().GetString("file")
	defaultsPath, _ := cmd.Flags().GetString("defaults")
	output, _ := cmd.Flags().GetString("output")

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	p := newPreset()
	// YAML is a superset of JSON, so one decoder covers both.
	if err := yaml.Unmarshal(data, p); err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	provider, err := loadProvider(defaultsPath)
	if err != nil {
		return err
	}
	cfg := p.Config()

	w := cmd.OutOrStdout()
	switch output {
	case "html":
		_, err = fmt.Fprintln(w, provider.Render(cfg))
		return err
	case "json":
		return writeJSON(w, provider.Merge(cfg))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(provider.Merge(cfg)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output %q", output)
}
