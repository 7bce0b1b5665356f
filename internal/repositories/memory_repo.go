package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"vadimgribanov.com/memory-mcp/internal/apperrors"
	"vadimgribanov.com/memory-mcp/internal/database"
	"vadimgribanov.com/memory-mcp/internal/models"
)

// timeLayout keeps nanosecond resolution so updated_at moves on
// back-to-back updates.
const timeLayout = time.RFC3339Nano

type MemoryRepo struct {
	db *database.DB
}

func NewMemoryRepo(db *database.DB) *MemoryRepo {
	return &MemoryRepo{db: db}
}

func (repo *MemoryRepo) Create(title, content string) (*models.Memory, error) {
	now := time.Now().UTC()

	tx, err := repo.db.Begin()
	if err != nil {
		return nil, apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO memories (title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := tx.Exec(query, title, content, now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.DuplicateTitle(title)
		}
		return nil, apperrors.Storage("failed to insert memory", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, apperrors.Storage("failed to read inserted id", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Storage("failed to commit memory", err)
	}

	return &models.Memory{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (repo *MemoryRepo) GetByID(id int64) (*models.Memory, error) {
	query := `
		SELECT id, title, content, created_at, updated_at
		FROM memories
		WHERE id = ?
	`
	return repo.getOne(query, id)
}

func (repo *MemoryRepo) GetByTitle(title string) (*models.Memory, error) {
	query := `
		SELECT id, title, content, created_at, updated_at
		FROM memories
		WHERE title = ?
	`
	return repo.getOne(query, title)
}

// ListAll returns memories ordered by id ascending. A limit <= 0 means no
// limit; a negative offset is treated as 0.
func (repo *MemoryRepo) ListAll(limit, offset int) ([]models.Memory, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		// SQLite requires LIMIT when OFFSET is used; -1 means unlimited.
		limit = -1
	}

	query := `
		SELECT id, title, content, created_at, updated_at
		FROM memories
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := repo.db.Query(query, limit, offset)
	if err != nil {
		return nil, apperrors.Storage("failed to query memories", err)
	}
	defer rows.Close()

	memories := make([]models.Memory, 0)
	for rows.Next() {
		memory, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		memories = append(memories, *memory)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("failed to iterate memories", err)
	}

	return memories, nil
}

// Update applies a partial update; nil fields are left unchanged. The whole
// operation runs in one transaction so the title uniqueness check and the
// write cannot interleave with another writer.
func (repo *MemoryRepo) Update(id int64, title, content *string) (*models.Memory, error) {
	if title == nil && content == nil {
		return nil, apperrors.Validation("provide at least one field to update (title or content)")
	}

	tx, err := repo.db.Begin()
	if err != nil {
		return nil, apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	existing, err := repo.getOneTx(tx, id)
	if err != nil {
		return nil, err
	}

	updateItems := []string{}
	params := []any{}

	if title != nil {
		updateItems = append(updateItems, "title = ?")
		params = append(params, *title)
	}
	if content != nil {
		updateItems = append(updateItems, "content = ?")
		params = append(params, *content)
	}

	now := time.Now().UTC()
	updateItems = append(updateItems, "updated_at = ?")
	params = append(params, now.Format(timeLayout))
	params = append(params, id)

	query := fmt.Sprintf("UPDATE memories SET %s WHERE id = ?", strings.Join(updateItems, ", "))
	if _, err := tx.Exec(query, params...); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.DuplicateTitle(*title)
		}
		return nil, apperrors.Storage("failed to update memory", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Storage("failed to commit update", err)
	}

	updated := *existing
	if title != nil {
		updated.Title = *title
	}
	if content != nil {
		updated.Content = *content
	}
	updated.UpdatedAt = now

	return &updated, nil
}

// Delete removes a memory permanently. Deleting an id that does not exist
// fails with a not-found error, including repeat deletes of the same id.
func (repo *MemoryRepo) Delete(id int64) error {
	tx, err := repo.db.Begin()
	if err != nil {
		return apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return apperrors.Storage("failed to delete memory", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NotFound("memory with ID %d not found", id)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("failed to commit delete", err)
	}
	return nil
}

func (repo *MemoryRepo) getOne(query string, arg any) (*models.Memory, error) {
	row := repo.db.QueryRow(query, arg)
	memory, err := scanMemory(row)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, notFoundFor(arg)
		}
		return nil, err
	}
	return memory, nil
}

func (repo *MemoryRepo) getOneTx(tx *sql.Tx, id int64) (*models.Memory, error) {
	row := tx.QueryRow(`
		SELECT id, title, content, created_at, updated_at
		FROM memories
		WHERE id = ?
	`, id)
	memory, err := scanMemory(row)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, notFoundFor(id)
		}
		return nil, err
	}
	return memory, nil
}

func notFoundFor(arg any) error {
	switch v := arg.(type) {
	case string:
		return apperrors.NotFound("memory with title %q not found", v)
	default:
		return apperrors.NotFound("memory with ID %v not found", v)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemory(row rowScanner) (*models.Memory, error) {
	var memory models.Memory
	var createdAt, updatedAt string

	err := row.Scan(&memory.ID, &memory.Title, &memory.Content, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("memory not found")
		}
		return nil, apperrors.Storage("failed to scan memory", err)
	}

	if memory.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, apperrors.Storage("failed to parse created_at", err)
	}
	if memory.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, apperrors.Storage("failed to parse updated_at", err)
	}

	return &memory, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlitelib.SQLITE_CONSTRAINT_UNIQUE || code == sqlitelib.SQLITE_CONSTRAINT
	}
	return false
}
