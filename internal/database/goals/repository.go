// Package goals provides database operations for imported goals and their tasks.
//
// This package implements the GoalStore interfaces defined in
// internal/services/interfaces.go.
//
//	var _ services.GoalStore = (*Repository)(nil)
package goals

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/goalboard/goalboard/internal/entities"
)

// Repository handles all goal and task database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new goals repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AppendGoal persists a goal with its full task tree in one transaction.
// This is the commit boundary of the import flow; staged imports reach the
// database only through here.
func (r *Repository) AppendGoal(goal *entities.Goal) error {
	if goal.Title == "" {
		return fmt.Errorf("goal title is required")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(goal).Error
	})
}

// GetGoalByID retrieves a goal with its complete task tree.
func (r *Repository) GetGoalByID(id uint) (*entities.Goal, error) {
	var goal entities.Goal
	err := r.db.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Tasks.Checklists", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Tasks.Checklists.Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Tasks.Links").Preload("Tasks.Comments").First(&goal, id).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// GetAllGoals retrieves all goals with their tasks.
func (r *Repository) GetAllGoals() ([]entities.Goal, error) {
	var goals []entities.Goal
	err := r.db.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Tasks.Checklists", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Tasks.Checklists.Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("created_at DESC").Find(&goals).Error
	return goals, err
}

// GetEnrichedShowTasks returns tasks that carry cached show metadata and are
// therefore candidates for a background new-content re-check.
func (r *Repository) GetEnrichedShowTasks() ([]entities.Task, error) {
	var tasks []entities.Task
	err := r.db.Preload("Checklists", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Checklists.Items").
		Where("enrichment IS NOT NULL AND content_kind IN ?",
			[]entities.ContentKind{entities.ContentKindTVSeries, entities.ContentKindAnime}).
		Find(&tasks).Error
	return tasks, err
}

// GetTaskByID retrieves one task with its checklists.
func (r *Repository) GetTaskByID(id uint) (*entities.Task, error) {
	var task entities.Task
	err := r.db.Preload("Checklists", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Checklists.Items").First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskEnrichment replaces a task's cached metadata and the derived
// new-content fields.
func (r *Repository) UpdateTaskEnrichment(task *entities.Task) error {
	return r.db.Model(&entities.Task{}).Where("id = ?", task.ID).Updates(map[string]any{
		"enrichment":      task.Enrichment,
		"has_new_content": task.HasNewContent,
		"show_status":     task.ShowStatus,
		"upcoming_title":  task.UpcomingTitle,
		"upcoming_date":   task.UpcomingDate,
	}).Error
}

// DeleteGoal performs a soft delete of a goal and its tasks.
func (r *Repository) DeleteGoal(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		tx.Model(&entities.Task{}).Where("goal_id = ?", id).Pluck("id", &taskIDs)
		if len(taskIDs) > 0 {
			var checklistIDs []uint
			tx.Model(&entities.Checklist{}).Where("task_id IN ?", taskIDs).Pluck("id", &checklistIDs)
			if len(checklistIDs) > 0 {
				if err := tx.Where("checklist_id IN ?", checklistIDs).Delete(&entities.ChecklistItem{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&entities.Checklist{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&entities.ExtractedLink{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&entities.TaskComment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("goal_id = ?", id).Delete(&entities.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Goal{}, id).Error
	})
}

// GetStats returns total goal and task counts.
func (r *Repository) GetStats() (totalGoals int64, totalTasks int64, err error) {
	err = r.db.Model(&entities.Goal{}).Count(&totalGoals).Error
	if err != nil {
		return
	}
	err = r.db.Model(&entities.Task{}).Count(&totalTasks).Error
	return
}
