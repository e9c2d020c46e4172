package model

import "time"

type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusComplete   TaskStatus = "Complete"
)

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

type User struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

type Building struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// Task references its assignee and building by id only. Display-side name
// joins happen against the User/Building reference sets.
type Task struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Title      string     `gorm:"not null" json:"title"`
	UserID     string     `gorm:"not null;size:36;index" json:"user_id"`
	BuildingID string     `gorm:"not null;size:36;index" json:"building_id"`
	Status     TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
