package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `bson:"created_at"  db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `bson:"modified_at" db:"modified_at" json:"modified_at"`
	CreatedBy  string    `bson:"created_by"  db:"created_by"  json:"created_by"`
	ModifiedBy string    `bson:"modified_by" db:"modified_by" json:"modified_by"`
}

func NewMetadata(user string, now time.Time) Metadata {
	return Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user,
		ModifiedBy: user,
	}
}
