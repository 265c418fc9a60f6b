package cli

import (
	"fmt"
	"io"
	"os"
)

// readInput reads the named file, or stdin when args is empty or names "-".
func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "<stdin>", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, args[0], nil
}
