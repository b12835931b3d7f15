package snapshot

import (
	"bytes"
	"encoding/csv"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"fsinventory/internal/fserr"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatGob  Format = "gob"
)

// Header is the csv header row, in serialized field order.
var Header = []string{"name", "path", "parent_directory", "type", "size_bytes"}

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "gob", "bin":
		return FormatGob, nil
	default:
		return "", fserr.InvalidArgument("unknown snapshot format %q", s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fserr.InvalidArgument("cannot infer snapshot format from %q", path)
	}
	return ParseFormat(ext)
}

func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Encode writes entries to w in the given format.
func Encode(w io.Writer, entries []Entry, format Format) error {
	if entries == nil {
		entries = []Entry{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		// "<root>" must survive unescaped
		enc.SetEscapeHTML(false)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(Header); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
		for _, e := range entries {
			row := []string{e.Name, e.Path, e.ParentDirectory, string(e.Type), strconv.FormatInt(e.SizeBytes, 10)}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row %s: %w", e.Path, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("failed to flush csv: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to close yaml encoder: %w", err)
		}
	case FormatGob:
		if err := gob.NewEncoder(w).Encode(entries); err != nil {
			return fmt.Errorf("failed to encode gob: %w", err)
		}
	default:
		return fserr.InvalidArgument("unknown snapshot format %q", format)
	}
	return nil
}

// Decode reads entries in the given format from r.
func Decode(r io.Reader, format Format) ([]Entry, error) {
	var entries []Entry

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&entries); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	case FormatCSV:
		rows, err := csv.NewReader(r).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("csv snapshot has no header")
		}
		if strings.Join(rows[0], ",") != strings.Join(Header, ",") {
			return nil, fmt.Errorf("unexpected csv header %v", rows[0])
		}
		entries = make([]Entry, 0, len(rows)-1)
		for i, row := range rows[1:] {
			size, err := strconv.ParseInt(row[4], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("csv row %d: invalid size_bytes %q: %w", i+2, row[4], err)
			}
			entries = append(entries, Entry{
				Name:            row[0],
				Path:            row[1],
				ParentDirectory: row[2],
				Type:            Kind(row[3]),
				SizeBytes:       size,
			})
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	case FormatGob:
		if err := gob.NewDecoder(r).Decode(&entries); err != nil {
			return nil, fmt.Errorf("failed to decode gob: %w", err)
		}
	default:
		return nil, fserr.InvalidArgument("unknown snapshot format %q", format)
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Save writes entries to path, creating parent directories as needed.
func Save(entries []Entry, path string, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, entries, format); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Load reads a snapshot previously written by Save.
func Load(path string, format Format) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}
