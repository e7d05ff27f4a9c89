package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bilgisen/tldr-relay/internal/models"
)

// Mirror receives a copy of every archived report.
type Mirror interface {
	Put(ctx context.Context, key string, data []byte) error
}

// Storage archives run reports as JSON files under reports/YYYY/MM/DD.
type Storage struct {
	basePath string
	mirror   Mirror
	mu       sync.RWMutex
}

func NewStorage(basePath string, mirror Mirror) (*Storage, error) {
	reportsPath := filepath.Join(basePath, "reports")
	if err := os.MkdirAll(reportsPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	return &Storage{
		basePath: basePath,
		mirror:   mirror,
	}, nil
}

// SaveReport writes a run report to disk and to the mirror, if any. A mirror
// failure is returned after the local copy has been written.
func (s *Storage) SaveReport(ctx context.Context, report models.RunResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run report: %w", err)
	}

	key := reportKey(report)
	filePath := filepath.Join(s.basePath, filepath.FromSlash(key))

	s.mu.Lock()
	err = writeFile(filePath, data)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	if s.mirror != nil {
		if err := s.mirror.Put(ctx, key, data); err != nil {
			return filePath, fmt.Errorf("failed to mirror run report: %w", err)
		}
	}

	return filePath, nil
}

// ListReports returns up to limit reports, newest first.
func (s *Storage) ListReports(ctx context.Context, limit int) ([]models.RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var files []string
	err := filepath.WalkDir(filepath.Join(s.basePath, "reports"), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking the path: %w", err)
	}

	// Paths embed the date and a nanosecond run id, so reverse lexical order is newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	reports := make([]models.RunResult, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading file %s: %w", file, err)
		}

		var report models.RunResult
		if err := json.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("error unmarshaling run report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// reportKey is the slash-separated object key of a report.
func reportKey(report models.RunResult) string {
	day := report.StartedAt.UTC().Format("2006/01/02")
	return fmt.Sprintf("reports/%s/%s_%s.json", day, report.ID, report.Status)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create date directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
