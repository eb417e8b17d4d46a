package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tracker/models"
	courseModels "tracker/models/course"
	"tracker/progression"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourseStore serves the progression engine from the relational schema
type CourseStore struct {
	db *gorm.DB

	// Now decides enrollment expiry. Defaults to time.Now.
	Now func() time.Time
}

var _ progression.Store = (*CourseStore)(nil)

func NewCourseStore(db *gorm.DB) *CourseStore {
	return &CourseStore{db: db, Now: time.Now}
}

// CourseTree loads a course with its modules, days and content in one pass
func (s *CourseStore) CourseTree(ctx context.Context, courseID uint) (*progression.Course, error) {
	db := s.db.WithContext(ctx)

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &progression.NotFoundError{Kind: "course", ID: courseID}
		}
		return nil, fmt.Errorf("load course %d: %w", courseID, err)
	}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("sort_order asc, id asc").Find(&modules).Error; err != nil {
		return nil, fmt.Errorf("load modules of course %d: %w", courseID, err)
	}

	out := &progression.Course{ID: course.ID, Title: course.Title, Slug: course.Slug}
	if len(modules) == 0 {
		return out, nil
	}

	moduleIDs := make([]uint, len(modules))
	moduleIdx := make(map[uint]int, len(modules))
	for i, m := range modules {
		moduleIDs[i] = m.ID
		moduleIdx[m.ID] = i
		out.Modules = append(out.Modules, progression.Module{
			ID:       m.ID,
			CourseID: m.CourseID,
			Title:    m.Title,
			Order:    m.Order,
			PlanIDs:  []uint(m.PlanIDs),
		})
	}

	var days []courseModels.Day
	if err := db.Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).Order("sort_order asc, id asc").Find(&days).Error; err != nil {
		return nil, fmt.Errorf("load days of course %d: %w", courseID, err)
	}
	type slot struct{ module, day int }
	dayIdx := make(map[uint]slot, len(days))
	for _, d := range days {
		mi := moduleIdx[d.ModuleID]
		out.Modules[mi].Days = append(out.Modules[mi].Days, progression.Day{
			ID:       d.ID,
			ModuleID: d.ModuleID,
			Title:    d.Title,
			Order:    d.Order,
		})
		dayIdx[d.ID] = slot{module: mi, day: len(out.Modules[mi].Days) - 1}
	}

	var contents []courseModels.CourseContent
	if err := db.Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).Order("sort_order asc, id asc").Find(&contents).Error; err != nil {
		return nil, fmt.Errorf("load content of course %d: %w", courseID, err)
	}
	for _, c := range contents {
		item := toContent(c)
		if c.DayID == nil {
			mi := moduleIdx[c.ModuleID]
			out.Modules[mi].Contents = append(out.Modules[mi].Contents, item)
			continue
		}
		// Content of a deleted day is hidden with it
		p, ok := dayIdx[*c.DayID]
		if !ok {
			continue
		}
		day := &out.Modules[p.module].Days[p.day]
		day.Contents = append(day.Contents, item)
	}
	return out, nil
}

func toContent(c courseModels.CourseContent) progression.Content {
	return progression.Content{
		ID:       c.ID,
		ModuleID: c.ModuleID,
		DayID:    c.DayID,
		Title:    c.Title,
		Order:    c.Order,
		Type:     progression.ContentType(c.ContentType),
		Data:     c.Data,
	}
}

func (s *CourseStore) CourseIDForContent(ctx context.Context, contentID uint) (uint, error) {
	var content courseModels.CourseContent
	err := s.db.WithContext(ctx).Select("id", "course_id").Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &progression.NotFoundError{Kind: "content", ID: contentID}
		}
		return 0, fmt.Errorf("load content %d: %w", contentID, err)
	}
	return content.CourseID, nil
}

func (s *CourseStore) CourseIDForModule(ctx context.Context, moduleID uint) (uint, error) {
	var module courseModels.Module
	err := s.db.WithContext(ctx).Select("id", "course_id").Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &progression.NotFoundError{Kind: "module", ID: moduleID}
		}
		return 0, fmt.Errorf("load module %d: %w", moduleID, err)
	}
	return module.CourseID, nil
}

func (s *CourseStore) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ? AND is_deleted = ?", userID, false).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check user %d: %w", userID, err)
	}
	return count > 0, nil
}

// Enrollment returns the user's best enrollment for the course, with its plan
// resolved against the plans table
func (s *CourseStore) Enrollment(ctx context.Context, userID, courseID uint) (*progression.Enrollment, error) {
	db := s.db.WithContext(ctx)

	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Order("is_active desc, id desc").
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load enrollment of user %d in course %d: %w", userID, courseID, err)
	}

	out := &progression.Enrollment{
		UserID:   enrollment.UserID,
		CourseID: enrollment.CourseID,
		IsActive: enrollment.ActiveAt(s.Now()),
	}
	if enrollment.PlanID == nil {
		return out, nil
	}

	var plan courseModels.Plan
	err = db.Where("id = ? AND course_id = ? AND is_deleted = ?", *enrollment.PlanID, courseID, false).First(&plan).Error
	switch {
	case err == nil:
		planID := plan.ID
		out.PlanID = &planID
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Unresolvable plan: the enrollment satisfies no plan restriction
	default:
		return nil, fmt.Errorf("load plan %d: %w", *enrollment.PlanID, err)
	}
	return out, nil
}

func (s *CourseStore) CompletedContentIDs(ctx context.Context, userID, courseID uint) (progression.CompletedSet, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&courseModels.ProgressRecord{}).
		Where("user_id = ? AND course_id = ? AND is_completed = ?", userID, courseID, true).
		Pluck("content_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load completed content of user %d: %w", userID, err)
	}
	return progression.NewCompletedSet(ids...), nil
}

func (s *CourseStore) Progress(ctx context.Context, userID, contentID uint) (*progression.ProgressRecord, error) {
	var row courseModels.ProgressRecord
	err := s.db.WithContext(ctx).Where("user_id = ? AND content_id = ?", userID, contentID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load progress of user %d on content %d: %w", userID, contentID, err)
	}
	rec := toProgress(row)
	return &rec, nil
}

// UpdateProgress applies fn to the (user, content) row under a row lock. The
// row is inserted first if missing so concurrent first submissions collide on
// the unique index instead of creating duplicates.
func (s *CourseStore) UpdateProgress(ctx context.Context, key progression.ProgressKey, fn func(rec *progression.ProgressRecord) (bool, error)) (progression.ProgressRecord, error) {
	var out progression.ProgressRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := courseModels.ProgressRecord{UserID: key.UserID, ContentID: key.ContentID, CourseID: key.CourseID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return fmt.Errorf("create progress row: %w", err)
		}

		var row courseModels.ProgressRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND content_id = ?", key.UserID, key.ContentID).
			First(&row).Error; err != nil {
			return fmt.Errorf("lock progress row: %w", err)
		}

		rec := toProgress(row)
		changed, err := fn(&rec)
		if err != nil {
			return err
		}
		if changed {
			row.IsCompleted = rec.IsCompleted
			row.Attempts = rec.Attempts
			row.Score = rec.Score
			row.CompletedAt = rec.CompletedAt
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("save progress row: %w", err)
			}
		}
		out = rec
		return nil
	})
	if err != nil {
		return progression.ProgressRecord{}, err
	}
	return out, nil
}

func toProgress(row courseModels.ProgressRecord) progression.ProgressRecord {
	return progression.ProgressRecord{
		UserID:      row.UserID,
		ContentID:   row.ContentID,
		IsCompleted: row.IsCompleted,
		Attempts:    row.Attempts,
		Score:       row.Score,
		CompletedAt: row.CompletedAt,
	}
}
