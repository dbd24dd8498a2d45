package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// The default prefix for generated files, if none is specified.
const defaultFileNamePrefix = "mbparams-gen-"

// Options for the `ExportContext.Write` method.
type WriteOptions struct {
	FileNamePrefix string // The prefix for generated files.
	ClearOutput    bool   // If `true`, all files at the output path with the right prefix will be removed before generation.
}

// Returns either the prefix set in the options, or the default one.
func (wo *WriteOptions) getFileNamePrefix() string {
	if len(wo.FileNamePrefix) > 0 {
		return wo.FileNamePrefix
	}
	return defaultFileNamePrefix
}

// Removes all files in `path` with the prefix specified in the options (or the default one).
func clearOutput(path string, opts WriteOptions) error {
	glob := fmt.Sprintf("%s*.tf", filepath.Join(path, opts.getFileNamePrefix()))
	files, err := filepath.Glob(glob)
	if err != nil {
		return err
	}

	for _, f := range files {
		err := os.Remove(f)
		if err != nil {
			return err
		}
	}

	return nil
}

// Returns the path of the file containing the parameters of a dashboard.
func makeFilePath(path string, slug string, opts WriteOptions) string {
	slugWithDashes := strings.ReplaceAll(strings.TrimPrefix(slug, "_"), "_", "-")
	fileName := fmt.Sprintf("%s%s.tf", opts.getFileNamePrefix(), slugWithDashes)

	return filepath.Join(path, fileName)
}

// Writes the parameters of the dashboards that have been exported to Terraform files, one file per dashboard.
// Returns the paths of the written files.
func (ec *ExportContext) Write(path string, opts WriteOptions) ([]string, error) {
	if opts.ClearOutput {
		err := clearOutput(path, opts)
		if err != nil {
			return nil, err
		}
	}

	err := os.MkdirAll(path, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]string, 0, len(ec.dashboards))
	for _, d := range ec.dashboards {
		filePath := makeFilePath(path, d.Slug, opts)

		err := os.WriteFile(filePath, d.Hcl, 0644)
		if err != nil {
			return nil, err
		}

		written = append(written, filePath)
	}

	return written, nil
}
