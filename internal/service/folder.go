package service

import (
	"context"
	"fmt"

	"phasepad/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Folder membership
// ─────────────────────────────────────────────────────────────
//
// Folders keep a folderItems id list and each member records its
// parentFolder. Both sides are maintained together; folders can nest, but
// never into their own subtree.

// AddToFolder places a note inside a folder, removing it from any previous
// folder first. Adding a folder into its own hierarchy is rejected.
func (s *WorkspaceService) AddToFolder(ctx context.Context, noteID, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if noteID == folderID {
		return fmt.Errorf("cannot add folder %s to itself", folderID)
	}

	folder, _ := s.activeLocked(folderID)
	if folder == nil || folder.Type != domain.NoteTypeFolder {
		return fmt.Errorf("note %s is not a folder", folderID)
	}
	n, _ := s.activeLocked(noteID)
	if n == nil {
		return fmt.Errorf("note %s not found", noteID)
	}
	if n.Type == domain.NoteTypeFolder && s.inHierarchyLocked(folderID, noteID) {
		return fmt.Errorf("cannot add folder %s into its own hierarchy", noteID)
	}

	s.detachFromParentLocked(n)

	for _, id := range folder.FolderItems {
		if id == noteID {
			n.ParentFolder = folderID
			s.saveLocked()
			return nil
		}
	}
	folder.FolderItems = append(folder.FolderItems, noteID)
	n.ParentFolder = folderID

	s.saveLocked()
	s.emitter.Emit(ctx, "note:saved", map[string]string{"noteId": noteID})
	return nil
}

// RemoveFromFolder detaches a note from its folder, clearing both sides of
// the membership.
func (s *WorkspaceService) RemoveFromFolder(ctx context.Context, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, _ := s.activeLocked(noteID)
	if n == nil {
		return fmt.Errorf("note %s not found", noteID)
	}

	s.detachFromParentLocked(n)
	n.IsOpenFromFolder = false

	s.saveLocked()
	s.emitter.Emit(ctx, "note:saved", map[string]string{"noteId": noteID})
	return nil
}

// detachFromParentLocked clears the note's parentFolder and removes its id
// from every folder's item list. Scanning every folder covers stale
// memberships that a recorded parentFolder would miss.
func (s *WorkspaceService) detachFromParentLocked(n *domain.Note) {
	n.ParentFolder = ""
	for _, other := range s.data[s.current].Notes {
		if other.Type == domain.NoteTypeFolder {
			other.FolderItems = removeID(other.FolderItems, n.ID)
		}
	}
}

// inHierarchyLocked reports whether target sits anywhere inside root's
// folder subtree (root included).
func (s *WorkspaceService) inHierarchyLocked(target, root string) bool {
	if target == root {
		return true
	}
	n, _ := s.activeLocked(root)
	if n == nil || n.Type != domain.NoteTypeFolder {
		return false
	}
	for _, id := range n.FolderItems {
		if s.inHierarchyLocked(target, id) {
			return true
		}
	}
	return false
}

// HandleDrop resolves a drag-and-drop: dropping onto a folder files the
// note there; dropping anywhere else detaches it.
func (s *WorkspaceService) HandleDrop(ctx context.Context, noteID, targetFolderID string) error {
	if targetFolderID == "" {
		return s.RemoveFromFolder(ctx, noteID)
	}
	return s.AddToFolder(ctx, noteID, targetFolderID)
}

// OpenFromFolder marks a filed note as temporarily visible on the canvas.
// The flag is session-only and never persisted.
func (s *WorkspaceService) OpenFromFolder(ctx context.Context, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, _ := s.activeLocked(noteID)
	if n == nil {
		return fmt.Errorf("note %s not found", noteID)
	}
	n.IsOpenFromFolder = true
	s.emitter.Emit(ctx, "note:saved", map[string]string{"noteId": noteID})
	return nil
}

// HideFromFolder puts a temporarily opened note back inside its folder.
func (s *WorkspaceService) HideFromFolder(ctx context.Context, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, _ := s.activeLocked(noteID)
	if n == nil {
		return fmt.Errorf("note %s not found", noteID)
	}
	n.IsOpenFromFolder = false
	s.emitter.Emit(ctx, "note:saved", map[string]string{"noteId": noteID})
	return nil
}

// FolderMembers resolves a folder's item ids to note copies, silently
// skipping ids that no longer resolve.
func (s *WorkspaceService) FolderMembers(folderID string) ([]*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, _ := s.activeLocked(folderID)
	if folder == nil || folder.Type != domain.NoteTypeFolder {
		return nil, fmt.Errorf("note %s is not a folder", folderID)
	}

	members := make([]*domain.Note, 0, len(folder.FolderItems))
	for _, id := range folder.FolderItems {
		if n, _ := s.activeLocked(id); n != nil {
			members = append(members, n.Clone())
		}
	}
	return members, nil
}
