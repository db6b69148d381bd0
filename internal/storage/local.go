package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalSignatureStore keeps signature blobs on the local filesystem, one file
// per uuid key.
type LocalSignatureStore struct {
	dir string
}

func NewLocalSignatureStore(dir string) (*LocalSignatureStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create signature directory: %w", err)
	}
	return &LocalSignatureStore{dir: dir}, nil
}

func (s *LocalSignatureStore) Save(ctx context.Context, data io.Reader) (string, error) {
	ref := uuid.NewString()
	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", fmt.Errorf("failed to create signature file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write signature file: %w", err)
	}
	return ref, nil
}

func (s *LocalSignatureStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, ref))
	if err != nil {
		return nil, fmt.Errorf("failed to open signature %s: %w", ref, err)
	}
	return f, nil
}

func (s *LocalSignatureStore) Delete(ctx context.Context, ref string) error {
	if err := validateRef(ref); err != nil {
		return err
	}
	return os.Remove(filepath.Join(s.dir, ref))
}

// validateRef keeps path segments out of refs; keys are always uuids.
func validateRef(ref string) error {
	if _, err := uuid.Parse(ref); err != nil {
		return fmt.Errorf("invalid signature reference %q", ref)
	}
	return nil
}
