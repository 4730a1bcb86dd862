package mongo

import (
	"context"

	"github.com/yoockh/mora/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type KeywordRepository interface {
	ListAll(ctx context.Context) ([]models.SkillKeyword, error)
}

type keywordRepo struct {
	col *mongo.Collection
}

func NewKeywordRepo(db *mongo.Database) KeywordRepository {
	return &keywordRepo{col: db.Collection("skill_keywords")}
}

func (r *keywordRepo) ListAll(ctx context.Context) ([]models.SkillKeyword, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"keyword": bson.M{"$ne": ""}},
		options.Find().SetSort(bson.D{{Key: "keyword", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SkillKeyword
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
