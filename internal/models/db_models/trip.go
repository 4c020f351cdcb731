package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripPreferences struct {
	LikedCategories    []string `json:"likedCategories" bson:"likedCategories"`
	DislikedCategories []string `json:"dislikedCategories" bson:"dislikedCategories"`
	PreferredDurations []string `json:"preferredDurations" bson:"preferredDurations"`
	PreferredTimes     []string `json:"preferredTimes" bson:"preferredTimes"`
	TotalLiked         int      `json:"totalLiked" bson:"totalLiked"`
	TotalDisliked      int      `json:"totalDisliked" bson:"totalDisliked"`
}

type Trip struct {
	ID                 string           `json:"id" gorm:"type:text;primaryKey" bson:"_id"`
	User               string           `json:"user,omitempty" gorm:"column:owner_id;type:text;index" bson:"user"`
	Destination        string           `json:"destination" bson:"destination"`
	StartDate          string           `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate            string           `json:"endDate,omitempty" bson:"endDate,omitempty"`
	CreatedAt          time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt,omitempty" bson:"updatedAt"`
	LikedActivities    []Activity       `json:"likedActivities" gorm:"type:jsonb;serializer:json" bson:"likedActivities"`
	DislikedActivities []Activity       `json:"dislikedActivities" gorm:"type:jsonb;serializer:json" bson:"dislikedActivities"`
	Preferences        *TripPreferences `json:"preferences,omitempty" gorm:"type:jsonb;serializer:json" bson:"preferences,omitempty"`
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
