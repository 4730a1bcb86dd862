package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Course is one row of the course catalog. TutorialList keeps the serialized
// form the catalog was exported with; it is parsed when a recommendation is built.
type Course struct {
	CourseID     int    `gorm:"column:course_id;primaryKey;autoIncrement:false" json:"course_id"`
	CourseName   string `gorm:"column:course_name;type:text" json:"course_name"`
	LevelName    string `gorm:"column:level_name;type:text" json:"level_name"`
	TutorialList string `gorm:"column:tutorial_list;type:text" json:"tutorial_list"`

	// position in the vector matrix
	RowPosition int `gorm:"column:row_position;index" json:"-"`
}

func (Course) TableName() string { return "courses" }

type CourseVector struct {
	CourseID  int             `gorm:"column:course_id;primaryKey;autoIncrement:false" json:"course_id"`
	Embedding pgvector.Vector `gorm:"column:embedding;type:vector" json:"embedding"`
}

func (CourseVector) TableName() string { return "course_vectors" }

// TFIDFModel is a fitted vectorizer exported by the offline training job.
type TFIDFModel struct {
	ID        int64           `gorm:"column:id;primaryKey" json:"id"`
	Version   string          `gorm:"column:version;type:text" json:"version"`
	Terms     pq.StringArray  `gorm:"column:terms;type:text[]" json:"terms"`
	IDF       pq.Float64Array `gorm:"column:idf;type:float8[]" json:"idf"`
	Params    datatypes.JSON  `gorm:"column:params;type:jsonb" json:"params"` // ngram_range, sublinear_tf, stop_words
	CreatedAt time.Time       `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (TFIDFModel) TableName() string { return "tfidf_models" }
