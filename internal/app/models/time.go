package models

import "time"

type TimeModel struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (m *TimeModel) SetCreatedAtUpdatedAt() {
	currentTime := time.Now().UTC()
	m.CreatedAt = currentTime
	m.UpdatedAt = currentTime
}
