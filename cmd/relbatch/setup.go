package main

import (
	"fmt"
	"os"

	"github.com/revelaction/relbatch/storage"
	"github.com/revelaction/relbatch/storage/filesystem"
	"github.com/revelaction/relbatch/storage/sqlite/zombiezen"
)

// NewPartitionRepository returns a filesystem store for a directory and a
// SQLite store for anything else.
func NewPartitionRepository(p *Pool, path string) (storage.PartitionRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewPartitionStore(path), nil
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewPartitionStore(pool), nil
}
