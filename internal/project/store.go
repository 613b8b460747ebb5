// Package project manages generated projects on disk: writing file batches,
// listing and inspecting projects, zipping them for download, and cleaning
// up old ones.
package project

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bowerbird-suite/bowerbird/internal/generator"
)

// structureDepth caps how deep Info's file listing descends.
const structureDepth = 3

// Store is rooted at a single output directory. All project paths are
// resolved strictly below it.
type Store struct {
	root string
	log  *zap.Logger
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}
	return &Store{root: abs, log: log}, nil
}

// Root returns the absolute output directory.
func (s *Store) Root() string {
	return s.root
}

// File pairs a project-relative path with its content.
type File struct {
	Path    string
	Content string
}

// Info summarizes one project on disk.
type Info struct {
	Name      string    `json:"project_name"`
	Path      string    `json:"project_path"`
	CreatedAt time.Time `json:"created_at"`
	SizeMB    float64   `json:"size_mb"`
	FileCount int       `json:"file_count"`
	Structure []string  `json:"structure"`
}

// validateName rejects names that would escape the store root.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("project name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." ||
		strings.Contains(name, "..") {
		return fmt.Errorf("invalid project name: %q", name)
	}
	return nil
}

func (s *Store) projectDir(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, name), nil
}

// Write materializes a batch of files under the project directory. Files are
// written through the operation executor, so one bad file is reported as a
// warning without aborting the rest. Returns the project directory and any
// per-file warnings.
func (s *Store) Write(ctx context.Context, name string, files []File, force bool) (string, []string, error) {
	dir, err := s.projectDir(name)
	if err != nil {
		return "", nil, err
	}

	ops := make([]generator.Operation, 0, len(files))
	for _, f := range files {
		rel := filepath.Clean(filepath.FromSlash(f.Path))
		if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
			return "", nil, fmt.Errorf("file path escapes project: %q", f.Path)
		}
		ops = append(ops, &generator.WriteFileOp{
			Path:    filepath.Join(dir, rel),
			Content: []byte(f.Content),
			Mode:    0644,
		})
	}

	result, err := generator.NewExecutor(force).Execute(ctx, ops)
	if err != nil {
		return dir, result.Warnings, err
	}

	s.log.Info("project written",
		zap.String("project", name),
		zap.Int("files", len(result.Executed)),
		zap.Int("warnings", len(result.Warnings)))

	return dir, result.Warnings, nil
}

// Info collects metadata about one project.
func (s *Store) Info(name string) (*Info, error) {
	dir, err := s.projectDir(name)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(dir)
	if err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("project not found: %s", name)
	}

	var (
		totalBytes int64
		fileCount  int
		structure  []string
	)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		depth := strings.Count(rel, string(filepath.Separator)) + 1
		if depth <= structureDepth {
			structure = append(structure, filepath.ToSlash(rel))
		}
		if d.IsDir() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		totalBytes += info.Size()
		fileCount++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("inspecting project %s: %w", name, err)
	}
	sort.Strings(structure)

	return &Info{
		Name:      name,
		Path:      dir,
		CreatedAt: stat.ModTime().UTC(),
		SizeMB:    float64(totalBytes) / (1024 * 1024),
		FileCount: fileCount,
		Structure: structure,
	}, nil
}

// List returns info for every project, newest first.
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	var infos []Info
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := s.Info(e.Name())
		if err != nil {
			s.log.Warn("skipping unreadable project", zap.String("project", e.Name()), zap.Error(err))
			continue
		}
		infos = append(infos, *info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// CreateArchive zips a project into <root>/<name>.zip, overwriting any
// previous archive, and returns the archive path.
func (s *Store) CreateArchive(name string) (string, error) {
	dir, err := s.projectDir(name)
	if err != nil {
		return "", err
	}
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		return "", fmt.Errorf("project not found: %s", name)
	}

	zipPath := dir + ".zip"
	f, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("creating archive: %w", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		dst, wErr := w.Create(filepath.ToSlash(filepath.Join(name, rel)))
		if wErr != nil {
			return wErr
		}
		src, oErr := os.Open(path)
		if oErr != nil {
			return oErr
		}
		defer src.Close()
		_, cErr := io.Copy(dst, src)
		return cErr
	})
	if err != nil {
		w.Close()
		return "", fmt.Errorf("archiving project %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing archive: %w", err)
	}

	s.log.Info("archive created", zap.String("project", name), zap.String("path", zipPath))
	return zipPath, nil
}

// Delete removes a project directory and its archive, if any.
func (s *Store) Delete(name string) error {
	dir, err := s.projectDir(name)
	if err != nil {
		return err
	}
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		return fmt.Errorf("project not found: %s", name)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("deleting project %s: %w", name, err)
	}
	if err := os.Remove(dir + ".zip"); err != nil && !os.IsNotExist(err) {
		s.log.Warn("could not remove archive", zap.String("project", name), zap.Error(err))
	}

	s.log.Info("project deleted", zap.String("project", name))
	return nil
}

// Cleanup deletes the oldest projects beyond keep and returns the names
// removed.
func (s *Store) Cleanup(keep int) ([]string, error) {
	if keep < 0 {
		keep = 0
	}
	infos, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(infos) <= keep {
		return nil, nil
	}

	var removed []string
	for _, info := range infos[keep:] {
		if err := s.Delete(info.Name); err != nil {
			s.log.Warn("cleanup could not delete project", zap.String("project", info.Name), zap.Error(err))
			continue
		}
		removed = append(removed, info.Name)
	}
	return removed, nil
}
