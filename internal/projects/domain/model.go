package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
)

// Project is a portfolio entry as stored and served to the frontend.
type Project struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title            string             `bson:"title" json:"title"`
	Category         string             `bson:"category" json:"category"`
	Status           string             `bson:"status" json:"status"`
	Description      string             `bson:"description" json:"description"`
	BannerImage      string             `bson:"bannerImage" json:"bannerImage"`
	AdditionalImages []string           `bson:"additionalImages" json:"additionalImages"`
}

// ProjectPatch holds the fields of an update request. Nil fields are left
// untouched.
type ProjectPatch struct {
	Title            *string   `json:"title"`
	Category         *string   `json:"category"`
	Status           *string   `json:"status"`
	Description      *string   `json:"description"`
	BannerImage      *string   `json:"bannerImage"`
	AdditionalImages *[]string `json:"additionalImages"`
}

// Fields returns the stored field names and values set in the patch.
func (p ProjectPatch) Fields() map[string]interface{} {
	out := map[string]interface{}{}
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.Category != nil {
		out["category"] = *p.Category
	}
	if p.Status != nil {
		out["status"] = *p.Status
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.BannerImage != nil {
		out["bannerImage"] = *p.BannerImage
	}
	if p.AdditionalImages != nil {
		out["additionalImages"] = *p.AdditionalImages
	}
	return out
}
