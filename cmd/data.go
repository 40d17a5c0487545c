package cmd

import (
	"fmt"
	"io"

	"github.com/inovacc/kboard/internal/encoding"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board as JSON",
	Long: `Export the whole board as indented JSON to stdout or a file.

With --encrypt the JSON is encrypted with a password using AES-256-GCM and
encoded in base58 behind a KBOARD: header. 'kboard import' recognizes both.

Examples:
  kboard export > board.json
  kboard export -o ~/backups/board.json
  kboard export --encrypt -o board.kboard`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the board with an exported file",
	Long: `Replace the board with the contents of a JSON export. Use - for stdin.

Missing fields are filled in: lists and cards get IDs, titles default to
"Untitled" and unknown categories become project. A file that is not a JSON
object is rejected and the board is left unchanged.

Examples:
  kboard import board.json
  kboard import board.kboard
  cat board.json | kboard import -`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportOutput  string
	exportEncrypt bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().BoolVar(&exportEncrypt, "encrypt", false, "Encrypt the export with a password")
}

func runExport(cmd *cobra.Command, _ []string) error {
	svc, err := openBoard(cmd)
	if err != nil {
		return err
	}

	data, err := svc.Export()
	if err != nil {
		return fmt.Errorf("failed to serialize board: %w", err)
	}

	if exportEncrypt {
		if data, err = seal(data); err != nil {
			return err
		}
	}

	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	path, err := expandPath(exportOutput)
	if err != nil {
		return err
	}

	if err := encoding.WriteFile(path, data, 0o600); err != nil {
		return err
	}

	b := svc.Board()
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d lists, %d cards to %s\n", len(b.Lists), len(b.Cards), path)

	return nil
}

func seal(data []byte) ([]byte, error) {
	password, err := readPassword("Enter encryption password: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) < 8 {
		return nil, encoding.ErrPasswordTooShort
	}

	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if password != confirm {
		return nil, fmt.Errorf("passwords do not match")
	}

	armored, err := encoding.Seal(data, password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}

	return []byte(armored + "\n"), nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	svc, err := openBoard(cmd)
	if err != nil {
		return err
	}

	if err := svc.Import(data); err != nil {
		return err
	}

	b := svc.Board()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d lists, %d cards\n", len(b.Lists), len(b.Cards))

	if n := len(b.Orphans()); n > 0 {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %d card(s) are in no list, see 'kboard show --ids'\n", n)
	}

	return nil
}

// readInput reads a file argument, or stdin for "-", and decrypts it when
// it is an armored backup.
func readInput(cmd *cobra.Command, arg string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if arg == "-" {
		if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		path, err := expandPath(arg)
		if err != nil {
			return nil, err
		}

		if data, err = encoding.ReadFile(path); err != nil {
			return nil, err
		}
	}

	if !encoding.IsSealed(data) {
		return data, nil
	}

	password, err := readPassword("Enter decryption password: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	plain, err := encoding.Open(data, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data (wrong password?): %w", err)
	}

	return plain, nil
}
