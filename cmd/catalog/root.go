package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"machcat/internal/catalog"
	applog "machcat/internal/log"
)

// errInvalid is returned by validate when the shard has violations, so the
// process exits non-zero.
var errInvalid = errors.New("shard failed validation")

type options struct {
	file     string
	format   string
	logLevel string
}

// load opens the shard named by --file, or the embedded shard.
func (o *options) load() (*catalog.Shard, error) {
	if o.file == "" {
		return catalog.Default()
	}
	if o.format == "" {
		return catalog.Open(o.file)
	}
	format, err := catalog.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return catalog.OpenFormat(o.file, format)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "catalog",
		Short:        "Inspect machining materials catalog shards",
		Long:         "Reads a catalog shard (the embedded stainless shard by default), looks up records, validates invariants and converts between encodings.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applog.SetLevel(opts.logLevel)
		},
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "shard file to read (default: embedded stainless shard)")
	root.PersistentFlags().StringVar(&opts.format, "format", "", "input format override: json, jsonc, yaml, cbor, cbor.zst")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level: debug, info, warn, error")

	root.AddCommand(
		newIDsCmd(opts),
		newGetCmd(opts),
		newValidateCmd(opts),
		newConvertCmd(opts),
		newDigestCmd(opts),
	)
	return root
}

func newIDsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ids",
		Short: "List material ids in authored order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shard, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range shard.IDs() {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}

func newGetCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print one material record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shard, err := opts.load()
			if err != nil {
				return err
			}
			rec, err := shard.Get(args[0])
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), rec, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func writeValue(w io.Writer, v any, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output %q (want json or yaml)", output)
}

func newValidateCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every shard invariant and report violations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shard, err := opts.load()
			if err != nil {
				return err
			}
			errs := shard.Validate()
			out := cmd.OutOrStdout()

			if asJSON {
				list := []catalog.ValidationError(errs)
				if list == nil {
					list = []catalog.ValidationError{}
				}
				if err := writeValue(out, list, "json"); err != nil {
					return err
				}
			} else if len(errs) == 0 {
				fmt.Fprintf(out, "ok: %d materials, no violations\n", shard.Len())
			} else {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "RECORD\tFIELD\tKIND\tMESSAGE")
				for _, e := range errs {
					id := e.RecordID
					if id == "" {
						id = "-"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, e.Field, e.Kind, e.Message)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if len(errs) > 0 {
				applog.Warn(context.Background(), "shard failed validation", "violations", len(errs))
				return fmt.Errorf("%w: %d violations", errInvalid, len(errs))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print violations as a JSON list")
	return cmd
}

func newConvertCmd(opts *options) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <out>",
		Short: "Re-encode the shard, picking the format from the output extension",
		Long:  "Re-encode the shard. The output format comes from the file extension unless --to is given; \"-\" writes to stdout.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shard, err := opts.load()
			if err != nil {
				return err
			}
			dest := args[0]

			if dest == "-" {
				format := catalog.FormatJSON
				if to != "" {
					if format, err = catalog.ParseFormat(to); err != nil {
						return err
					}
				}
				return catalog.Encode(cmd.OutOrStdout(), shard, format)
			}
			if to != "" {
				format, err := catalog.ParseFormat(to)
				if err != nil {
					return err
				}
				if want, _ := catalog.FormatFromPath(dest); want != format {
					return fmt.Errorf("--to %s does not match extension of %s", format, dest)
				}
			}
			if err := catalog.Save(dest, shard); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d materials to %s\n", shard.Len(), dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "output format; must agree with the extension unless writing to stdout")
	return cmd
}

func newDigestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Print the content digest used as the HTTP ETag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shard, err := opts.load()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), shard.Digest())
			return nil
		},
	}
}
