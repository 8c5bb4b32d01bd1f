// Package storage maps documents to their canonical location in the file tree:
// {root}/matters/{matterID}/{documentID}R{revisionNumber}.{extension}
package storage

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"docket/internal/domain"
)

const mattersDir = "matters"

// Placement is the decoded form of a resolved document path.
type Placement struct {
	MatterID       uuid.UUID
	DocumentID     uuid.UUID
	RevisionNumber int
	Extension      string
}

// Resolver builds and parses document paths under a fixed root. It does no I/O.
type Resolver struct {
	root string
}

// NewResolver creates a Resolver rooted at root. An empty root yields paths
// relative to "matters/", which is how S3 keys without a prefix are laid out.
func NewResolver(root string) *Resolver {
	root = strings.TrimSpace(root)
	if root != "" {
		root = path.Clean(root)
	}
	if root == "." {
		root = ""
	}
	return &Resolver{root: root}
}

// Root returns the configured root.
func (r *Resolver) Root() string { return r.root }

// MatterDir returns the directory holding a matter's document files.
func (r *Resolver) MatterDir(matterID uuid.UUID) string {
	return path.Join(r.root, mattersDir, matterID.String())
}

// Resolve returns the canonical path of one revision file.
func (r *Resolver) Resolve(matterID, documentID uuid.UUID, revisionNumber int, extension string) (string, error) {
	if revisionNumber < 0 {
		return "", fmt.Errorf("%w: revision number %d is negative", domain.ErrInvalidPath, revisionNumber)
	}
	ext, err := NormalizeExtension(extension)
	if err != nil {
		return "", err
	}
	name := documentID.String() + "R" + strconv.Itoa(revisionNumber) + "." + ext
	return path.Join(r.MatterDir(matterID), name), nil
}

// Parse is the inverse of Resolve.
func (r *Resolver) Parse(p string) (Placement, error) {
	rel := p
	if r.root != "" {
		prefix := r.root + "/"
		if r.root == "/" {
			prefix = "/"
		}
		if !strings.HasPrefix(p, prefix) {
			return Placement{}, fmt.Errorf("%w: %q is outside root %q", domain.ErrInvalidPath, p, r.root)
		}
		rel = strings.TrimPrefix(p, prefix)
	}

	parts := strings.Split(rel, "/")
	if len(parts) != 3 || parts[0] != mattersDir {
		return Placement{}, fmt.Errorf("%w: %q", domain.ErrInvalidPath, p)
	}

	matterID, err := uuid.Parse(parts[1])
	if err != nil {
		return Placement{}, fmt.Errorf("%w: bad matter id in %q", domain.ErrInvalidPath, p)
	}

	name := parts[2]
	// a canonical uuid string is 36 characters and never contains 'R'
	if len(name) < 36+len("R0.x") || name[36] != 'R' {
		return Placement{}, fmt.Errorf("%w: bad file name %q", domain.ErrInvalidPath, name)
	}
	documentID, err := uuid.Parse(name[:36])
	if err != nil {
		return Placement{}, fmt.Errorf("%w: bad document id in %q", domain.ErrInvalidPath, name)
	}

	numberAndExt := name[37:]
	dot := strings.IndexByte(numberAndExt, '.')
	if dot <= 0 {
		return Placement{}, fmt.Errorf("%w: missing extension in %q", domain.ErrInvalidPath, name)
	}
	digits := numberAndExt[:dot]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return Placement{}, fmt.Errorf("%w: bad revision number in %q", domain.ErrInvalidPath, name)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Placement{}, fmt.Errorf("%w: bad revision number in %q", domain.ErrInvalidPath, name)
	}

	return Placement{
		MatterID:       matterID,
		DocumentID:     documentID,
		RevisionNumber: n,
		Extension:      numberAndExt[dot+1:],
	}, nil
}

// NormalizeExtension strips surrounding whitespace and any leading dots.
// Case is preserved. Empty results and path separators are rejected.
func NormalizeExtension(ext string) (string, error) {
	ext = strings.TrimLeft(strings.TrimSpace(ext), ".")
	if ext == "" {
		return "", domain.NewValidationError("extension", "must not be empty")
	}
	if strings.ContainsAny(ext, `/\`) || strings.Contains(ext, "..") {
		return "", domain.NewValidationError("extension", "must not contain path separators")
	}
	return ext, nil
}
