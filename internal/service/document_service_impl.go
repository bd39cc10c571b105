package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/repository"
)

type documentService struct {
	folders   repository.FolderRepo
	documents repository.DocumentRepo
}

func NewDocumentService(folders repository.FolderRepo, documents repository.DocumentRepo) DocumentService {
	return &documentService{folders: folders, documents: documents}
}

func (s *documentService) CreateFolder(ctx context.Context, f *domain.Folder) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	if err := f.Validate(); err != nil {
		return err
	}
	if f.ParentID != nil {
		if _, err := s.folders.GetByID(ctx, *f.ParentID); err != nil {
			return fmt.Errorf("loading parent folder: %w", err)
		}
	}
	return s.folders.Create(ctx, f)
}

func (s *documentService) UpdateFolder(ctx context.Context, f *domain.Folder) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.ParentID != nil {
		if err := s.checkNoCycle(ctx, f.ID, *f.ParentID); err != nil {
			return err
		}
	}
	f.UpdatedAt = time.Now().UTC()
	return s.folders.Update(ctx, f)
}

// checkNoCycle walks up from the proposed parent; reaching the folder
// being updated would close a loop.
func (s *documentService) checkNoCycle(ctx context.Context, folderID, parentID string) error {
	seen := map[string]bool{folderID: true}
	cur := parentID
	for cur != "" {
		if seen[cur] {
			return fmt.Errorf("moving folder under its own descendant would create a cycle")
		}
		seen[cur] = true

		parent, err := s.folders.GetByID(ctx, cur)
		if err != nil {
			return fmt.Errorf("loading folder %s: %w", cur, err)
		}
		if parent.ParentID == nil {
			return nil
		}
		cur = *parent.ParentID
	}
	return nil
}

// DeleteFolder removes the folder; subfolders cascade and contained
// documents fall back to the root via the schema's foreign keys.
func (s *documentService) DeleteFolder(ctx context.Context, id string) error {
	if _, err := s.folders.GetByID(ctx, id); err != nil {
		return fmt.Errorf("loading folder: %w", err)
	}
	return s.folders.Delete(ctx, id)
}

func (s *documentService) Create(ctx context.Context, d *domain.Document) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := d.Validate(); err != nil {
		return err
	}
	if d.FolderID != nil {
		if _, err := s.folders.GetByID(ctx, *d.FolderID); err != nil {
			return fmt.Errorf("loading folder: %w", err)
		}
	}
	return s.documents.Create(ctx, d)
}

func (s *documentService) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	return s.documents.GetByID(ctx, id)
}

func (s *documentService) Update(ctx context.Context, d *domain.Document) error {
	if err := d.Validate(); err != nil {
		return err
	}
	d.UpdatedAt = time.Now().UTC()
	return s.documents.Update(ctx, d)
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	return s.documents.Delete(ctx, id)
}

func (s *documentService) Move(ctx context.Context, id string, folderID *string) error {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if folderID != nil {
		if _, err := s.folders.GetByID(ctx, *folderID); err != nil {
			return fmt.Errorf("loading target folder: %w", err)
		}
	}
	d.FolderID = folderID
	d.UpdatedAt = time.Now().UTC()
	return s.documents.Update(ctx, d)
}

func (s *documentService) SetPinned(ctx context.Context, id string, pinned bool) error {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d.Pinned == pinned {
		return nil
	}
	d.Pinned = pinned
	d.UpdatedAt = time.Now().UTC()
	return s.documents.Update(ctx, d)
}

func (s *documentService) Search(ctx context.Context, query string) ([]*domain.Document, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.documents.Search(ctx, query)
}

func (s *documentService) ListPinned(ctx context.Context) ([]*domain.Document, error) {
	return s.documents.ListPinned(ctx)
}

func (s *documentService) ListRecent(ctx context.Context, limit int) ([]*domain.Document, error) {
	return s.documents.ListRecent(ctx, limit)
}

// Tree loads all folders and documents in two queries and assembles the
// hierarchy in memory. Folders whose parent chain is broken are promoted
// to roots rather than dropped.
func (s *documentService) Tree(ctx context.Context) (*Tree, error) {
	folders, err := s.folders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading folders: %w", err)
	}

	nodes := make(map[string]*FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &FolderNode{Folder: f}
	}

	tree := &Tree{}
	for _, f := range folders {
		node := nodes[f.ID]
		if f.ParentID == nil {
			tree.Roots = append(tree.Roots, node)
			continue
		}
		parent, ok := nodes[*f.ParentID]
		if !ok || *f.ParentID == f.ID {
			tree.Roots = append(tree.Roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	for _, node := range nodes {
		docs, err := s.documents.ListByFolder(ctx, node.Folder.ID)
		if err != nil {
			return nil, fmt.Errorf("loading documents for folder %s: %w", node.Folder.ID, err)
		}
		node.Documents = docs
	}

	rootDocs, err := s.documents.ListRootDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading root documents: %w", err)
	}
	tree.RootDocuments = rootDocs

	sortTree(tree.Roots)
	return tree, nil
}

func sortTree(nodes []*FolderNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return strings.ToLower(nodes[i].Folder.Name) < strings.ToLower(nodes[j].Folder.Name)
	})
	for _, n := range nodes {
		sortTree(n.Children)
	}
}
