package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/stigoleg/vidle/internal/config"
)

// gen-docs writes shell completions and a man page generated from the
// vidle command definition into docs/completions and man/.

const appName = "vidle"

var completionFiles = map[string]string{
	"bash":       appName + ".bash",
	"zsh":        "_" + appName,
	"fish":       appName + ".fish",
	"powershell": appName + ".ps1",
}

func main() {
	root := config.NewCommand("", func(*cobra.Command, config.Options) error { return nil })
	root.InitDefaultHelpFlag()

	if err := writeCompletions(root, filepath.Join("docs", "completions")); err != nil {
		log.Fatal(err)
	}
	if err := writeManFile(root, "man"); err != nil {
		log.Fatal(err)
	}
}

func writeCompletions(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for shell, name := range completionFiles {
		var buf bytes.Buffer
		if err := config.WriteCompletion(root, shell, &buf); err != nil {
			return fmt.Errorf("%s completion: %w", shell, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeManFile(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return doc.GenManTree(root, manHeader(), dir)
}

// writeMan renders the root command's page only.
func writeMan(root *cobra.Command, w io.Writer) error {
	return doc.GenMan(root, manHeader(), w)
}

func manHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   strings.ToUpper(appName),
		Section: "1",
		Manual:  "User Commands",
		Source:  appName,
	}
}
