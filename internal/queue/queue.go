package queue

import (
	"github.com/maheshrc27/contentflow/internal/service"
)

type Queue struct {
	gs service.GenerationService
}

func NewQueue(gs service.GenerationService) *Queue {
	return &Queue{gs: gs}
}

const TaskTypeGenerateContent = "generate:content"

type GenerateContentPayload struct {
	ItemID int64 `json:"item_id"`
}
