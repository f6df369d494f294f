package storage

import (
	sent "github.com/revelaction/relbatch/sentence"
)

// PartitionReader defines read operations for partition storage
type PartitionReader interface {
	// Names returns the names of all stored partitions, sorted alphabetically.
	Names() ([]string, error)

	// Read returns the validated records of a partition, in file order.
	Read(name string) (sent.Partition, error)
}

// PartitionWriter defines write operations for partition storage
type PartitionWriter interface {
	// Write persists a partition, replacing any partition with the same name.
	Write(name string, p sent.Partition) error
}

// PartitionRepository combines read and write operations
type PartitionRepository interface {
	PartitionReader
	PartitionWriter
}
