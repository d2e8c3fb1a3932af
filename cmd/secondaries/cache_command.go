package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type cacheEntryJSON struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage cached interpolators",
		Long: `Inspect and manage cached interpolators.

Artifacts are never refreshed automatically. After replacing a spectrum table,
invalidate its artifact so the next evaluation rebuilds it.

Commands:
  list        - List artifacts in the data root
  build       - Build or load artifacts for the given kinds (default: all)
  invalidate  - Delete artifacts for the given kinds`,
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheBuildCommand(ctx))
	cacheCmd.AddCommand(newCacheInvalidateCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := ctx.ensureSpectra()
			if err != nil {
				return err
			}
			entries, err := store.Entries()
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				out := make([]cacheEntryJSON, 0, len(entries))
				for _, e := range entries {
					out = append(out, cacheEntryJSON{
						Name:     e.Name,
						Path:     e.Path,
						Size:     e.Size,
						Modified: e.ModTime.UTC().Format("2006-01-02T15:04:05Z"),
					})
				}
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(w, "No artifacts in %s\n", store.Root())
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Name, humanize.Bytes(uint64(e.Size)), humanize.Time(e.ModTime)})
			}
			writeTable(w, []string{"Artifact", "Size", "Modified"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft})
			return nil
		},
	}
}

func newCacheBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build [kind...]",
		Short: "Build or load artifacts ahead of evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(args)
			if err != nil {
				return err
			}
			store, sp, err := ctx.ensureSpectra()
			if err != nil {
				return err
			}
			if err := sp.Warm(kinds...); err != nil {
				return err
			}
			if ctx.JSONMode() {
				names := make([]string, len(kinds))
				for i, k := range kinds {
					names[i] = k.ArtifactName()
				}
				return writeJSON(cmd, map[string]any{"ready": names})
			}
			for _, k := range kinds {
				fmt.Fprintf(cmd.OutOrStdout(), "%s ready: %s\n", k, store.Path(k.ArtifactName()))
			}
			return nil
		},
	}
}

func newCacheInvalidateCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "invalidate <kind>...",
		Short: "Delete cached artifacts so they are rebuilt on next use",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return fmt.Errorf("name at least one kind or pass --all")
			}
			kinds, err := parseKinds(args)
			if err != nil {
				return err
			}
			store, _, err := ctx.ensureSpectra()
			if err != nil {
				return err
			}
			for _, k := range kinds {
				if err := store.Invalidate(k.ArtifactName()); err != nil {
					return err
				}
				if !ctx.JSONMode() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s invalidated\n", k)
				}
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]int{"invalidated": len(kinds)})
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Invalidate every kind")
	return cmd
}
