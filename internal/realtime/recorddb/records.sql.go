package recorddb

import (
	"context"
)

const insertRecord = `-- name: InsertRecord :exec
INSERT INTO records (path, id, data, updated_at)
VALUES (?, ?, ?, ?)
`

type InsertRecordParams struct {
	Path      string
	ID        string
	Data      string
	UpdatedAt int64
}

func (q *Queries) InsertRecord(ctx context.Context, arg InsertRecordParams) error {
	_, err := q.db.ExecContext(ctx, insertRecord,
		arg.Path,
		arg.ID,
		arg.Data,
		arg.UpdatedAt,
	)
	return err
}

const listRecordsByPath = `-- name: ListRecordsByPath :many
SELECT seq, path, id, data, updated_at FROM records
WHERE path = ?
ORDER BY seq
`

func (q *Queries) ListRecordsByPath(ctx context.Context, path string) ([]Record, error) {
	rows, err := q.db.QueryContext(ctx, listRecordsByPath, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Record
	for rows.Next() {
		var i Record
		if err := rows.Scan(
			&i.Seq,
			&i.Path,
			&i.ID,
			&i.Data,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateRecord = `-- name: UpdateRecord :execrows
UPDATE records SET data = ?, updated_at = ?
WHERE path = ? AND id = ?
`

type UpdateRecordParams struct {
	Data      string
	UpdatedAt int64
	Path      string
	ID        string
}

func (q *Queries) UpdateRecord(ctx context.Context, arg UpdateRecordParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateRecord,
		arg.Data,
		arg.UpdatedAt,
		arg.Path,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteRecord = `-- name: DeleteRecord :execrows
DELETE FROM records
WHERE path = ? AND id = ?
`

type DeleteRecordParams struct {
	Path string
	ID   string
}

func (q *Queries) DeleteRecord(ctx context.Context, arg DeleteRecordParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteRecord, arg.Path, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
