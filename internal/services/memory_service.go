package services

import (
	"strings"

	"vadimgribanov.com/memory-mcp/internal/apperrors"
	"vadimgribanov.com/memory-mcp/internal/models"
)

type MemoryRepo interface {
	Create(title, content string) (*models.Memory, error)
	GetByID(id int64) (*models.Memory, error)
	GetByTitle(title string) (*models.Memory, error)
	ListAll(limit, offset int) ([]models.Memory, error)
	Update(id int64, title, content *string) (*models.Memory, error)
	Delete(id int64) error
}

type MemoryService struct {
	memoryRepo MemoryRepo
}

func NewMemoryService(memoryRepo MemoryRepo) *MemoryService {
	return &MemoryService{memoryRepo: memoryRepo}
}

// Remember validates and stores a new memory. Validation runs here even
// though the transport schema already checks required fields.
func (s *MemoryService) Remember(title, content string) (*models.Memory, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.Validation("title must be a non-empty string")
	}
	return s.memoryRepo.Create(title, content)
}

// Resolve unifies lookup by id and by title. Exactly one of id/title must
// be supplied; title matching is exact.
func (s *MemoryService) Resolve(id *int64, title *string) (*models.Memory, error) {
	switch {
	case id != nil && title != nil:
		return nil, apperrors.InvalidArguments("provide either memory_id or title, not both")
	case id != nil:
		return s.memoryRepo.GetByID(*id)
	case title != nil:
		return s.memoryRepo.GetByTitle(*title)
	default:
		return nil, apperrors.InvalidArguments("provide either a memory_id or title")
	}
}

func (s *MemoryService) ListMemories(limit, offset int) ([]models.Memory, error) {
	return s.memoryRepo.ListAll(limit, offset)
}

// UpdateMemory applies a partial update. A supplied title is trimmed and
// must be non-empty; at least one of title/content must be present.
func (s *MemoryService) UpdateMemory(id int64, title, content *string) (*models.Memory, error) {
	if title == nil && content == nil {
		return nil, apperrors.Validation("provide at least one field to update (title or content)")
	}
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, apperrors.Validation("title must be a non-empty string")
		}
		title = &trimmed
	}
	return s.memoryRepo.Update(id, title, content)
}

func (s *MemoryService) DeleteMemory(id int64) error {
	return s.memoryRepo.Delete(id)
}
