package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/foxxcyber/notes-bridge/internal/app"
	"github.com/foxxcyber/notes-bridge/internal/config"
	"github.com/foxxcyber/notes-bridge/internal/logger"
	"github.com/foxxcyber/notes-bridge/internal/models"
)

// Execute runs the extract command tree
func Execute(cfg *config.Config) {
	log := logger.WithComponent("cmd")

	if err := newRootCmd(cfg, os.Stdout).Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed")
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "extract",
		Short: "Run local files through the notes bridge",
		Long: `extract sends a local PDF or image through the same OCR provider and
cleaning webhook the HTTP bridge uses, and prints the JSON response.`,
		SilenceUsage: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "ocr <file>",
		Short: "Extract text with the configured OCR backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := loadUpload(args[0])
			if err != nil {
				return err
			}
			extractor, err := app.NewExtractor(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.OCRTimeout)
			defer cancel()

			result, err := extractor.ProcessFile(ctx, upload)
			if err != nil {
				return err
			}
			return writeJSON(out, models.OCRResponse{Text: result.Text})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "pipeline <file>",
		Short: "Extract text through the OCR bridge and clean it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := loadUpload(args[0])
			if err != nil {
				return err
			}

			result, err := app.NewPipeline(cfg).Run(cmd.Context(), upload)
			if err != nil {
				return err
			}
			return writeJSON(out, models.UploadResponse{
				Success: true,
				Text:    result.Cleaned,
				RawOCR:  result.RawOCR,
			})
		},
	})

	return root
}

// loadUpload reads a local file and guesses its content type from the extension
func loadUpload(path string) (*models.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &models.Upload{
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
