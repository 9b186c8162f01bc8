package services

import (
	"context"

	"github.com/senyabanana/trek-market/internal/models"
	"github.com/senyabanana/trek-market/internal/repository"
)

// AssignmentService отдаёт походы пользователя. Создание походов
// остаётся за AcceptanceService.
type AssignmentService struct {
	repo repository.AssignmentRepository
}

// NewAssignmentService создает новый экземпляр AssignmentService.
func NewAssignmentService(repo repository.AssignmentRepository) *AssignmentService {
	return &AssignmentService{repo: repo}
}

// ListMyAssignments возвращает походы вызывающего с обеих сторон сделки:
// как владельца заявок и как гида.
func (s *AssignmentService) ListMyAssignments(ctx context.Context, callerID int64, limit, offset int) ([]models.Assignment, error) {
	return s.repo.ListAssignmentsForUser(ctx, callerID, limit, offset)
}
