package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"phasepad/internal/domain"
)

// Store owns the JSON files under the data root:
//
//	<root>/home-notes.json, <root>/work-notes.json
//	<root>/workspace-preference.json
//	<root>/saved-documents.json
//	<root>/documents/*.ppdoc|*.html
//
// Every save is a whole-file overwrite; last writer wins. Reads tolerate
// missing or corrupt files and fall back to empty data — the in-memory
// state is the source of truth between successful saves.
type Store struct {
	mu       sync.Mutex
	dataPath string

	// Stamp of our own most recent write, so the external-change watcher
	// can tell our saves apart from edits by other programs.
	lastWrite time.Time
}

// New creates a Store rooted at dataPath, creating the directory tree.
func New(dataPath string) (*Store, error) {
	s := &Store{dataPath: dataPath}
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureDirs() error {
	if err := os.MkdirAll(s.dataPath, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(s.dataPath, "documents"), 0755); err != nil {
		return fmt.Errorf("create documents directory: %w", err)
	}
	return nil
}

// DataPath returns the current data root.
func (s *Store) DataPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataPath
}

// SetDataPath points the store at a new root, creating it if needed.
func (s *Store) SetDataPath(path string) error {
	s.mu.Lock()
	s.dataPath = path
	s.mu.Unlock()
	return s.ensureDirs()
}

// DocumentsDir returns the directory for saved document files.
func (s *Store) DocumentsDir() string {
	return filepath.Join(s.DataPath(), "documents")
}

// WorkspaceFile returns the path of a workspace's notes file.
func (s *Store) WorkspaceFile(name string) string {
	return filepath.Join(s.DataPath(), name+"-notes.json")
}

func (s *Store) markWrite() {
	s.mu.Lock()
	s.lastWrite = time.Now()
	s.mu.Unlock()
}

// WroteWithin reports whether the store itself wrote a file within d.
func (s *Store) WroteWithin(d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.lastWrite.IsZero() && time.Since(s.lastWrite) < d
}

// ── Workspaces ─────────────────────────────────────────────

// LoadWorkspace reads a workspace file. A missing file yields an empty
// workspace; a corrupt one is logged and treated the same way.
func (s *Store) LoadWorkspace(name string) *domain.Workspace {
	ws := domain.NewWorkspace()

	data, err := os.ReadFile(s.WorkspaceFile(name))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("store: read %s workspace: %v", name, err)
		}
		return ws
	}
	if err := json.Unmarshal(data, ws); err != nil {
		log.Printf("store: parse %s workspace: %v", name, err)
		return domain.NewWorkspace()
	}
	ws.Repair()
	return ws
}

// SaveWorkspace overwrites a workspace file with the full note lists.
func (s *Store) SaveWorkspace(name string, ws *domain.Workspace) error {
	if err := os.MkdirAll(s.DataPath(), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s workspace: %w", name, err)
	}
	s.markWrite()
	if err := os.WriteFile(s.WorkspaceFile(name), data, 0644); err != nil {
		return fmt.Errorf("write %s workspace: %w", name, err)
	}
	return nil
}

// MigrateLegacy adopts a pre-workspace notes.json into home, once, and only
// when home is still empty. The legacy file is deleted after a successful
// migration. Returns true when a migration happened.
func (s *Store) MigrateLegacy(home *domain.Workspace) bool {
	legacyPath := filepath.Join(s.DataPath(), "notes.json")
	data, err := os.ReadFile(legacyPath)
	if err != nil {
		return false
	}

	legacy := domain.NewWorkspace()
	if err := json.Unmarshal(data, legacy); err != nil {
		log.Printf("store: skip legacy migration, parse notes.json: %v", err)
		return false
	}
	legacy.Repair()
	if legacy.Empty() || !home.Empty() {
		return false
	}

	home.Notes = legacy.Notes
	home.ArchivedNotes = legacy.ArchivedNotes
	if err := s.SaveWorkspace(domain.WorkspaceHome, home); err != nil {
		log.Printf("store: save migrated workspace: %v", err)
		return false
	}
	if err := os.Remove(legacyPath); err != nil {
		log.Printf("store: remove legacy notes.json: %v", err)
	}
	return true
}

// ── Workspace preference ───────────────────────────────────

type workspacePreference struct {
	CurrentWorkspace string `json:"currentWorkspace"`
}

// LoadPreference returns the persisted current workspace, defaulting to
// home when the file is absent, corrupt, or names an unknown workspace.
func (s *Store) LoadPreference() string {
	data, err := os.ReadFile(filepath.Join(s.DataPath(), "workspace-preference.json"))
	if err != nil {
		return domain.WorkspaceHome
	}
	var pref workspacePreference
	if err := json.Unmarshal(data, &pref); err != nil {
		log.Printf("store: parse workspace preference: %v", err)
		return domain.WorkspaceHome
	}
	if !domain.ValidWorkspace(pref.CurrentWorkspace) {
		return domain.WorkspaceHome
	}
	return pref.CurrentWorkspace
}

// SavePreference persists the current workspace name.
func (s *Store) SavePreference(name string) error {
	if err := os.MkdirAll(s.DataPath(), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.Marshal(workspacePreference{CurrentWorkspace: name})
	if err != nil {
		return fmt.Errorf("marshal workspace preference: %w", err)
	}
	s.markWrite()
	if err := os.WriteFile(filepath.Join(s.DataPath(), "workspace-preference.json"), data, 0644); err != nil {
		return fmt.Errorf("write workspace preference: %w", err)
	}
	return nil
}

// ── Data relocation ────────────────────────────────────────

// dataFiles are the flat files moved during a data-path relocation.
var dataFiles = []string{
	"home-notes.json",
	"work-notes.json",
	"workspace-preference.json",
	"saved-documents.json",
}

// HasWorkspaceData reports whether dir already contains workspace files,
// which forces the caller to pick a relocation policy.
func HasWorkspaceData(dir string) bool {
	for _, name := range []string{"home-notes.json", "work-notes.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// MoveData copies the data files and the documents directory to newPath,
// then re-roots the store there. Files missing at the source are skipped.
func (s *Store) MoveData(newPath string) error {
	oldPath := s.DataPath()
	if err := os.MkdirAll(newPath, 0755); err != nil {
		return fmt.Errorf("create new data directory: %w", err)
	}

	for _, name := range dataFiles {
		src := filepath.Join(oldPath, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := copyFile(src, filepath.Join(newPath, name)); err != nil {
			return fmt.Errorf("copy %s: %w", name, err)
		}
	}

	srcDocs := filepath.Join(oldPath, "documents")
	if _, err := os.Stat(srcDocs); err == nil {
		if err := copyDir(srcDocs, filepath.Join(newPath, "documents")); err != nil {
			return fmt.Errorf("copy documents: %w", err)
		}
	}

	return s.SetDataPath(newPath)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}
