package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dorm-menu-csv/internal/config"
	"dorm-menu-csv/internal/export"
	"dorm-menu-csv/internal/menu"

	"github.com/spf13/cobra"
)

// pageFlags select the page to process: the live site for a given day, or
// a saved response body for offline debugging.
type pageFlags struct {
	date        string
	file        string
	contentType string
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Day to request as YYYY-MM-DD (default today in source.timezone)")
	cmd.Flags().StringVar(&f.file, "file", "", "Read a saved page from disk instead of fetching")
	cmd.Flags().StringVar(&f.contentType, "content-type", "text/html", "Content-Type header to assume for --file")
}

func (f *pageFlags) load(ctx context.Context, cfg *config.Config) (page, time.Time, error) {
	day, err := resolveDay(f.date, cfg.Source.Location())
	if err != nil {
		return page{}, time.Time{}, err
	}

	if f.file == "" {
		pg, err := fetchPage(ctx, newHTTPClient(cfg.Source), dormURL(cfg.Source.BaseURL, day))
		return pg, day, err
	}

	body, err := os.ReadFile(f.file)
	if err != nil {
		return page{}, time.Time{}, fmt.Errorf("read page: %w", err)
	}
	abs, err := filepath.Abs(f.file)
	if err != nil {
		abs = f.file
	}
	return page{URL: "file://" + abs, ContentType: f.contentType, Body: body}, day, nil
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		flags    pageFlags
		outDir   string
		noUpload bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch the schedule, write the artifact and upload it",
		Long: `Fetch the dormitory meal schedule for one day, extract one row per day
and write it as CSV (date, breakfast, lunch, dinner) or JSON. The artifact is
written to output.dir and uploaded to storage.bucket unless --no-upload is set.

With --file the page is read from disk instead of fetched, so a saved
response can be replayed through the whole pipeline.

Examples:
  scrape run                                     # Today, upload to S3_BUCKET
  scrape run --date 2025-03-10                   # A specific day
  scrape run --no-upload --out ./tmp             # Local file only
  scrape run --no-upload --file saved.html \
    --content-type "text/html; charset=euc-kr"   # Replay a saved page`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if outDir != "" {
				cfg.Output.Dir = outDir
			}
			if !noUpload {
				if err := cfg.RequireBucket(); err != nil {
					return err
				}
			}

			pg, day, err := flags.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			out, err := extractPage(cmd.Context(), pg, cfg.Source, day)
			if err != nil {
				return err
			}

			data, contentType, err := renderArtifact(out, cfg.Output)
			if err != nil {
				return fmt.Errorf("render %s: %w", cfg.Output.Format, err)
			}
			name := artifactName(cfg.Output.CSVName, cfg.Output.Format)
			localPath := filepath.Join(cfg.Output.Dir, name)
			if err := writeArtifact(localPath, data); err != nil {
				return fmt.Errorf("write artifact: %w", err)
			}
			slog.InfoContext(cmd.Context(), "wrote artifact", "path", localPath, "records", len(out.Menus), "encoding", out.Meta.Encoding)

			if noUpload {
				return export.WriteJSON(cmd.OutOrStdout(), uploadResult{OK: true, Path: localPath})
			}

			api, err := newObjectPutter(cmd.Context(), cfg.Storage.Region)
			if err != nil {
				return err
			}
			res, err := uploadArtifact(cmd.Context(), api, cfg.Storage.Bucket, objectKey(cfg.Storage.Prefix, name), contentType, data)
			if err != nil {
				return err
			}
			res.Path = localPath
			slog.InfoContext(cmd.Context(), "uploaded artifact", "bucket", res.Bucket, "key", res.Key)
			return export.WriteJSON(cmd.OutOrStdout(), res)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&outDir, "out", "", "Directory for the local artifact (default output.dir)")
	cmd.Flags().BoolVar(&noUpload, "no-upload", false, "Skip the S3 upload")

	return cmd
}

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var flags pageFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the extracted records as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			pg, day, err := flags.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			out, err := extractPage(cmd.Context(), pg, cfg.Source, day)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderRecords(w, out.Menus))
			fmt.Fprintf(w, "%d rows from %s (encoding override: %s)\n", len(out.Menus), out.Meta.Source, encodingLabel(out.Meta.Encoding))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newDecodeCommand(ctx *commandContext) *cobra.Command {
	var flags pageFlags

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Print the page as decoded before extraction",
		Long: `Print the resolved encoding override on stderr and the decoded markup on
stdout. Useful when menu text comes out garbled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			pg, _, err := flags.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			text, codec := menu.Decode(pg.Body, pg.ContentType)
			fmt.Fprintf(cmd.ErrOrStderr(), "content-type: %s\nencoding override: %s\n", pg.ContentType, encodingLabel(string(codec)))
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
	flags.register(cmd)

	return cmd
}

func encodingLabel(codec string) string {
	if strings.TrimSpace(codec) == "" {
		return "none"
	}
	return codec
}
