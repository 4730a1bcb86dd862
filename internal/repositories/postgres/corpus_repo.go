package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/mora/internal/models"
	"github.com/yoockh/mora/internal/utils"
	"gorm.io/gorm"
)

// CorpusRepository reads the catalog tables written by the offline training job.
type CorpusRepository interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListVectors(ctx context.Context) ([]models.CourseVector, error)
	LatestModel(ctx context.Context) (*models.TFIDFModel, error)
}

type corpusRepo struct {
	db *gorm.DB
}

func NewCorpusRepo(db *gorm.DB) CorpusRepository {
	return &corpusRepo{db: db}
}

func (r *corpusRepo) ListCourses(ctx context.Context) ([]models.Course, error) {
	var rows []models.Course
	err := r.db.WithContext(ctx).
		Order("row_position ASC").
		Find(&rows).Error
	return rows, err
}

func (r *corpusRepo) ListVectors(ctx context.Context) ([]models.CourseVector, error) {
	var rows []models.CourseVector
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *corpusRepo) LatestModel(ctx context.Context) (*models.TFIDFModel, error) {
	var m models.TFIDFModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
