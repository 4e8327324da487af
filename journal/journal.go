package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"studentadmin/types"
)

// Journal keeps batch reports as JSON lines in a single file.
type Journal struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) Path() string {
	return j.path
}

// Append writes one report as a JSON line
func (j *Journal) Append(r types.BatchReport) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if dir := filepath.Dir(j.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(r)
}

// ReadAll returns every stored report, oldest first. A missing file is empty.
func (j *Journal) ReadAll() ([]types.BatchReport, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var reports []types.BatchReport
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var r types.BatchReport
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("journal %s line %d: %w", j.path, line, err)
		}
		reports = append(reports, r)
	}

	return reports, scanner.Err()
}

// Clear removes the journal file.
func (j *Journal) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := os.Remove(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
