package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Encode writes the set as newline-delimited identifiers in ascending order.
// No header and no trailing newline are written. An identifier that is empty
// or contains whitespace would not survive Decode, so it is rejected and
// nothing is written.
func Encode(w io.Writer, s *Set) error {
	ids := s.Sorted()
	for _, id := range ids {
		if !Valid(id) {
			return fmt.Errorf("identifier %q cannot be stored in a snapshot", id)
		}
	}
	_, err := io.WriteString(w, strings.Join(ids, "\n"))
	return err
}

// Valid reports whether id can be written to and read back from a snapshot
func Valid(id Identifier) bool {
	return id != "" && strings.IndexFunc(id, unicode.IsSpace) < 0
}

// Decode reads a snapshot listing. Lines are trimmed and blank lines ignored.
func Decode(r io.Reader) (*Set, error) {
	s := NewSet()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			s.Add(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return s, nil
}

// Write replaces the file at path with the set's listing. The content goes to a
// temporary sibling first and is renamed into place, so readers never observe a
// partially written snapshot.
func Write(path string, s *Set) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tempPath := path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary snapshot file: %w", err)
	}

	if err := Encode(file, s); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync snapshot file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	return nil
}

// Read loads the snapshot at path
func Read(path string) (*Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer file.Close()

	return Decode(file)
}
