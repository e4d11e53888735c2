package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"mock-generator/internal/plan"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// PlanFilename is the name of the plan document written next to mocks.
const PlanFilename = "mocks.plan.yaml"

// PlanFile renders the pass result as a YAML plan document.
func PlanFile(res *plan.Result) (GeneratedFile, error) {
	content, err := plan.ExportYAML(res)
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("exporting plan: %w", err)
	}

	return GeneratedFile{Filename: PlanFilename, Content: content}, nil
}

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
