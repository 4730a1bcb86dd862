package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type SkillKeyword struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Keyword  string             `bson:"keyword" json:"keyword"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
}
