package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/relbatch/file"
	sent "github.com/revelaction/relbatch/sentence"
	"github.com/revelaction/relbatch/storage"
)

// PartitionStore reads and writes partitions as <root>/<name>.json files.
type PartitionStore struct {
	root string
}

var _ storage.PartitionRepository = (*PartitionStore)(nil)

func NewPartitionStore(root string) *PartitionStore {
	return &PartitionStore{root: root}
}

func (ps *PartitionStore) Names() ([]string, error) {
	files, err := os.ReadDir(ps.root)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}

		names = append(names, strings.TrimSuffix(f.Name(), filepath.Ext(f.Name())))
	}

	sort.Strings(names)
	return names, nil
}

func (ps *PartitionStore) Read(name string) (sent.Partition, error) {
	p, err := file.ReadPartition(filepath.Join(ps.root, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("partition %s: %w", name, err)
	}

	return p, nil
}

func (ps *PartitionStore) Write(name string, p sent.Partition) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ps.root, name+".json"), data, 0644)
}
