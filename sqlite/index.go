package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/memory"
)

// Compile-time interface verification.
var _ docdex.VectorIndex = (*Index)(nil)

// Index implements docdex.VectorIndex using SQLite. Cosine scoring happens
// in Go with the same function as the in-memory reference index, and the
// autoincrement seq column reproduces its insertion-order tie-breaking.
type Index struct {
	db *DB
}

// NewIndex creates a new Index over an opened DB.
func NewIndex(db *DB) *Index {
	return &Index{db: db}
}

func (idx *Index) ready() error {
	if idx.db == nil || idx.db.db == nil {
		return docdex.Errorf(docdex.ENOTINITIALIZED, "vector index database is not open")
	}
	return nil
}

// dimension returns the stored embedding dimension, 0 when unset.
func (idx *Index) dimension(ctx context.Context) (int, error) {
	var dim int
	err := idx.db.QueryRowContext(ctx, "SELECT dimension FROM index_meta WHERE id = 1").Scan(&dim)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return dim, nil
}

// AddChunks stores one document per chunk.
func (idx *Index) AddChunks(ctx context.Context, jobID string, chunks []*docdex.Chunk, vectors [][]float32) error {
	if err := idx.ready(); err != nil {
		return err
	}
	if len(chunks) != len(vectors) {
		return docdex.Errorf(docdex.EDIMENSION, "chunks (%d) and vectors (%d) must have equal length", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	dim, err := idx.dimension(ctx)
	if err != nil {
		return err
	}
	if dim == 0 {
		dim = len(vectors[0])
		if _, err := idx.db.ExecContext(ctx,
			"INSERT INTO index_meta (id, dimension) VALUES (1, ?)", dim); err != nil {
			return err
		}
	}
	for i, v := range vectors {
		if len(v) != dim {
			return docdex.Errorf(docdex.EDIMENSION, "vector %d has dimension %d, index expects %d", i, len(v), dim)
		}
	}

	for i, c := range chunks {
		stored := *c
		if stored.JobID == "" {
			stored.JobID = jobID
		}
		if err := stored.Validate(); err != nil {
			return err
		}
		headingPath, err := json.Marshal(stored.HeadingPath)
		if err != nil {
			return err
		}
		createdAt := stored.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err = idx.db.ExecContext(ctx, `
			INSERT INTO chunks (id, job_id, source_url, position, heading_path, text, word_count, char_count, created_at, vector)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, stored.ID, stored.JobID, stored.SourceURL, stored.Position, string(headingPath), stored.Text,
			stored.WordCount, stored.CharCount, createdAt.Format(time.RFC3339), serializeVector(vectors[i]))
		if err != nil {
			return err
		}
	}
	return nil
}

// Search returns the top limit matches by descending cosine similarity.
func (idx *Index) Search(ctx context.Context, query []float32, limit int, jobIDs ...string) ([]docdex.SearchMatch, error) {
	if err := idx.ready(); err != nil {
		return nil, err
	}
	dim, err := idx.dimension(ctx)
	if err != nil {
		return nil, err
	}
	if dim == 0 {
		return nil, docdex.Errorf(docdex.ENOTINITIALIZED, "vector index is empty; add chunks before searching")
	}
	if len(query) != dim {
		return nil, docdex.Errorf(docdex.EDIMENSION, "query has dimension %d, index expects %d", len(query), dim)
	}
	if limit <= 0 {
		return []docdex.SearchMatch{}, nil
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, job_id, source_url, position, heading_path, text, word_count, char_count, created_at, vector FROM chunks`)
	var args []any
	if len(jobIDs) > 0 {
		sb.WriteString(" WHERE job_id IN (?" + strings.Repeat(", ?", len(jobIDs)-1) + ")")
		for _, id := range jobIDs {
			args = append(args, id)
		}
	}
	sb.WriteString(" ORDER BY seq ASC")

	rows, err := idx.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type scored struct {
		chunk *docdex.Chunk
		score float32
	}
	var candidates []scored
	for rows.Next() {
		var c docdex.Chunk
		var headingPath, createdAt string
		var blob []byte
		if err := rows.Scan(&c.ID, &c.JobID, &c.SourceURL, &c.Position, &headingPath,
			&c.Text, &c.WordCount, &c.CharCount, &createdAt, &blob); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(headingPath), &c.HeadingPath); err != nil {
			return nil, fmt.Errorf("failed to parse heading path: %w", err)
		}
		if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		candidates = append(candidates, scored{
			chunk: &c,
			score: memory.CosineSimilarity(query, deserializeVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}
	matches := make([]docdex.SearchMatch, 0, limit)
	for _, c := range candidates[:limit] {
		matches = append(matches, docdex.SearchMatch{Chunk: c.chunk, Score: c.score})
	}
	return matches, nil
}

// ClearJob removes all documents for a job. Idempotent.
func (idx *Index) ClearJob(ctx context.Context, jobID string) error {
	if err := idx.ready(); err != nil {
		return err
	}
	_, err := idx.db.ExecContext(ctx, "DELETE FROM chunks WHERE job_id = ?", jobID)
	return err
}

// Info returns document counts and the index dimension.
func (idx *Index) Info(ctx context.Context) (*docdex.IndexInfo, error) {
	if err := idx.ready(); err != nil {
		return nil, err
	}
	dim, err := idx.dimension(ctx)
	if err != nil {
		return nil, err
	}

	info := &docdex.IndexInfo{Dimension: dim, Jobs: make(map[string]int)}
	rows, err := idx.db.QueryContext(ctx, "SELECT job_id, COUNT(*) FROM chunks GROUP BY job_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var job string
		var count int
		if err := rows.Scan(&job, &count); err != nil {
			return nil, err
		}
		info.Jobs[job] = count
		info.Documents += count
	}
	return info, rows.Err()
}

// serializeVector encodes a float32 vector as little-endian bytes.
func serializeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func deserializeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
