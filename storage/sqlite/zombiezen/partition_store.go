package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	sent "github.com/revelaction/relbatch/sentence"
	"github.com/revelaction/relbatch/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// PartitionStore keeps every record of a partition as a JSON row, ordered by
// its index in the source file.
type PartitionStore struct {
	pool *sqlitex.Pool
}

var _ storage.PartitionRepository = (*PartitionStore)(nil)

func NewPartitionStore(pool *sqlitex.Pool) *PartitionStore {
	return &PartitionStore{pool: pool}
}

func (h *PartitionStore) Names() ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var names []string
	err = sqlitex.Execute(conn, "SELECT name FROM partitions ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (h *PartitionStore) Read(name string) (sent.Partition, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	found := false
	err = sqlitex.Execute(conn, "SELECT 1 FROM partitions WHERE name = ?", &sqlitex.ExecOptions{
		Args: []interface{}{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("partition not found: %s", name)
	}

	p := sent.Partition{}
	err = sqlitex.Execute(conn, `
		SELECT r.idx, r.data FROM records r
		JOIN partitions p ON p.id = r.partition_id
		WHERE p.name = ?
		ORDER BY r.idx`, &sqlitex.ExecOptions{
		Args: []interface{}{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var r sent.Record
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &r); err != nil {
				return fmt.Errorf("record %d: %w", stmt.ColumnInt(0), err)
			}
			p = append(p, r)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("partition %s: %w", name, err)
	}

	// Rows are validated on write, but the database may have been edited by
	// hand since.
	for i, r := range p {
		if err := r.Validate(); err != nil {
			if se, ok := err.(*sent.SchemaError); ok {
				se.Index = i
			}
			return nil, fmt.Errorf("partition %s: %w", name, err)
		}
	}

	return p, nil
}

func (h *PartitionStore) Write(name string, p sent.Partition) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "DELETE FROM records WHERE partition_id IN (SELECT id FROM partitions WHERE name = ?)", &sqlitex.ExecOptions{
		Args: []interface{}{name},
	})
	if err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}

	err = sqlitex.Execute(conn, "DELETE FROM partitions WHERE name = ?", &sqlitex.ExecOptions{
		Args: []interface{}{name},
	})
	if err != nil {
		return fmt.Errorf("failed to delete partition: %w", err)
	}

	err = sqlitex.Execute(conn, "INSERT INTO partitions (name) VALUES (?)", &sqlitex.ExecOptions{
		Args: []interface{}{name},
	})
	if err != nil {
		return fmt.Errorf("failed to insert partition: %w", err)
	}
	partitionID := conn.LastInsertRowID()

	for i, r := range p {
		if err = r.Validate(); err != nil {
			if se, ok := err.(*sent.SchemaError); ok {
				se.Index = i
			}
			return err
		}

		data, marshalErr := json.Marshal(r)
		if marshalErr != nil {
			err = marshalErr
			return err
		}

		err = sqlitex.Execute(conn, "INSERT INTO records (partition_id, idx, relation, data) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{partitionID, i, r.Relation, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	return nil
}
