package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/scan"
)

const shortDigest = 12

// NewImportCommand creates the import command
func NewImportCommand(a *app) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "import <path>...",
		Short: "Import files into the catalog",
		Long: `Import files or directories into the catalog. Files whose bytes are
already catalogued are skipped; unreadable files are reported and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner := scan.New(a.fs, a.builder, a.logger)
			result, err := scanner.Scan(cmd.Context(), a.coll, scan.Options{
				Paths:       args,
				Recursive:   recursive,
				MaxFileSize: a.cfg.MaxFileSize,
			})
			if result != nil && result.TotalImported > 0 {
				a.dirty = true
			}
			if err != nil {
				// the post-run hook does not run after an error, so keep
				// what was imported before the scan stopped
				if saveErr := a.close(context.WithoutCancel(cmd.Context())); saveErr != nil {
					return errors.Join(fmt.Errorf("import failed: %w", err), saveErr)
				}
				return fmt.Errorf("import failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported: %d\n", result.TotalImported)
			fmt.Fprintf(out, "Duplicates: %d\n", result.TotalDuplicates)
			fmt.Fprintf(out, "Failed: %d\n", result.TotalFailed)
			for _, path := range result.FailedPaths {
				fmt.Fprintf(out, "  %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")

	return cmd
}

// NewListCommand creates the list command
func NewListCommand(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			objects := a.coll.Objects()
			if kind != "" {
				k, err := catalog.ParseKind(kind)
				if err != nil {
					return err
				}
				objects = a.coll.OfKind(k)
			}
			writeTable(cmd.OutOrStdout(), objects)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only list objects of this kind")

	return cmd
}

// NewSearchCommand creates the search command
func NewSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search catalogued objects",
		Long: `Search catalogued objects. Text is searched by content, binary data by
its lowercase hex encoding and photos by their EXIF values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			writeTable(cmd.OutOrStdout(), a.coll.Search(args[0]))
			return nil
		},
	}
}

// NewShowCommand creates the show command
func NewShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <digest>",
		Short: "Show an object by digest prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := a.coll.Find(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Digest: %s\n", obj.Digest())
			fmt.Fprintf(out, "Kind: %s\n", obj.Kind())
			fmt.Fprintf(out, "Size: %s\n\n", humanize.Bytes(uint64(obj.Size())))
			fmt.Fprintln(out, catalog.Describe(obj))
			return nil
		},
	}
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <digest>",
		Short: "Delete an object by digest prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := a.coll.Find(args[0])
			if err != nil {
				return err
			}
			a.coll.Remove(obj)
			a.dirty = true
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", obj.Digest())
			return nil
		},
	}
}

// NewClassifyCommand creates the classify command
func NewClassifyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>...",
		Short: "Classify files without importing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tKIND\tRULE")
			for _, path := range args {
				data, err := afero.ReadFile(a.fs, path)
				if err != nil {
					a.logger.Warn("Failed to read file", "path", path, "err", err)
					fmt.Fprintf(tw, "%s\t-\t%v\n", path, err)
					continue
				}
				kind, rule := a.builder.Classifier().Explain(data)
				if rule == "" {
					rule = "fallback"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", path, kind, rule)
			}
			return tw.Flush()
		},
	}
}

func writeTable(w io.Writer, objects []catalog.Object) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIGEST\tKIND\tSIZE\tTAGS\tPREVIEW")
	for _, obj := range objects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			obj.Digest()[:shortDigest],
			obj.Kind(),
			humanize.Bytes(uint64(obj.Size())),
			len(obj.Tags()),
			preview(obj),
		)
	}
	tw.Flush()
}

// preview returns a one-line excerpt of the payload.
func preview(obj catalog.Object) string {
	const maxPreview = 40
	var text string
	switch obj.Kind() {
	case catalog.KindEmpty:
		return ""
	case catalog.KindPhoto:
		return "(image data)"
	default:
		text = catalog.RenderReadable(obj.Data())
	}
	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > maxPreview {
		text = string(r[:maxPreview]) + "..."
	}
	return text
}
