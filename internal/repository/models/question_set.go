package models

import "time"

// QuestionSet is the stored row. Payload holds the example and the questions as JSON.
type QuestionSet struct {
	ID          string    `db:"id"`
	Instruction string    `db:"instruction"`
	Payload     string    `db:"payload"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
