package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// argOrStdin returns the first positional argument, falling back to
// one line from stdin so expressions can be piped in.
func argOrStdin(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "error reading stdin")
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("no input provided")
	}
	return line, nil
}

func printJSON(in interface{}) error {
	out, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
