package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// StdinPath is the --file value that reads standard input.
const StdinPath = "-"

// ErrNoInput is returned by Read when no --file value was given.
var ErrNoInput = errors.New("no input file")

// FileReader decodes one JSON document of type T from the path given to its
// --file flag. The path "-" reads Stdin instead.
type FileReader[T any] struct {
	// Stdin is read for "-". Nil means os.Stdin, which must not be a
	// terminal.
	Stdin io.Reader

	path string
}

// Flag returns the --file/-f flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       `path to JSON file ("-" reads stdin)`,
		Destination: &fr.path,
	}
}

// Path returns the flag value.
func (fr *FileReader[T]) Path() string {
	return fr.path
}

// Read opens the named file (or stdin for "-") and decodes it into T.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	reader, closer, err := fr.open()
	if err != nil {
		return input, err
	}
	defer closer()

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}

func (fr *FileReader[T]) open() (io.Reader, func(), error) {
	switch fr.path {
	case "":
		return nil, nil, ErrNoInput
	case StdinPath:
		if fr.Stdin != nil {
			return fr.Stdin, func() {}, nil
		}
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, fmt.Errorf("stdin is a terminal; pipe JSON input or pass a file path")
		}
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(fr.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
