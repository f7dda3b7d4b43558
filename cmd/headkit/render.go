package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eringen/headkit/metadata"
	"github.com/eringen/headkit/seo"
)

func init() {
	rootCmd.AddCommand(
		configCommand("render", "Print the static <head> markup for a page config", func(w io.Writer, p *seo.Provider, cfg seo.Config) error {
			_, err := fmt.Fprintln(w, p.Render(cfg))
			return err
		}),
		configCommand("tags", "Print the synthesized tag descriptors as JSON", func(w io.Writer, p *seo.Provider, cfg seo.Config) error {
			return writeJSON(w, p.Tags(cfg))
		}),
		configCommand("metadata", "Print the config as a Next.js-style metadata object", func(w io.Writer, p *seo.Provider, cfg seo.Config) error {
			return writeJSON(w, metadata.FromConfig(p.Merge(cfg)))
		}),
	)
}

// configCommand builds a command reading a page config (-c) and optional
// site defaults (-d), then handing the pair to out.
func configCommand(use, short string, out func(io.Writer, *seo.Provider, seo.Config) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			defaultsPath, _ := cmd.Flags().GetString("defaults")

			provider, err := loadProvider(defaultsPath)
			if err != nil {
				return err
			}
			cfg, err := seo.LoadFile(configPath)
			if err != nil {
				return err
			}
			return out(cmd.OutOrStdout(), provider, cfg)
		},
	}
	cmd.Flags().StringP("config", "c", "", "Page config file, YAML or JSON (required)")
	cmd.Flags().StringP("defaults", "d", "", "Site defaults file, YAML or JSON")
	cmd.MarkFlagRequired("config")
	return cmd
}

func loadProvider(path string) (*seo.Provider, error) {
	if path == "" {
		return seo.NewProvider(seo.Config{}), nil
	}
	defaults, err := seo.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return seo.NewProvider(defaults), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
