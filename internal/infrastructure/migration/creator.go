package migration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

const upTemplate = `-- {{.Name}}
-- created {{.Timestamp}}
{{- if .Description}}
-- {{.Description}}
{{- end}}

-- forward migration statements go here

`

const downTemplate = `-- {{.Name}} (rollback)
-- created {{.Timestamp}}

-- statements undoing the forward migration go here

`

var (
	upTmpl   = template.Must(template.New("up").Parse(upTemplate))
	downTmpl = template.Must(template.New("down").Parse(downTemplate))
)

// MigrationFile describes a generated up/down pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration scaffolds an empty up/down pair in migrationsDir. The
// version prefix is the current timestamp so files sort in creation order.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating migrations directory: %w", err)
	}

	now := time.Now()
	base := now.Format("20060102150405") + "_" + sanitizeName(name)

	mf := &MigrationFile{
		Version:     now.Format("20060102150405"),
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
		UpPath:      filepath.Join(migrationsDir, base+".up.sql"),
		DownPath:    filepath.Join(migrationsDir, base+".down.sql"),
	}

	if err := renderTo(mf.UpPath, upTmpl, mf); err != nil {
		return nil, err
	}
	if err := renderTo(mf.DownPath, downTmpl, mf); err != nil {
		// Do not leave a half-created pair behind
		_ = os.Remove(mf.UpPath)
		return nil, err
	}

	return mf, nil
}

func renderTo(path string, tmpl *template.Template, mf *MigrationFile) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, mf); err != nil {
		return fmt.Errorf("rendering %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// sanitizeName lowercases a human name and collapses separators so it is
// safe inside a file name
func sanitizeName(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			pending = false
		case r == ' ', r == '-', r == '_':
			pending = true
		}
	}
	return b.String()
}

// ListMigrations returns the distinct migration base names found in dir
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	seen := make(map[string]struct{})
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), ".up.sql")
		if _, dup := seen[base]; dup {
			continue
		}
		seen[base] = struct{}{}
		names = append(names, base)
	}

	return names, nil
}
