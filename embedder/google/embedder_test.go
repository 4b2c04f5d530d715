package google

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestTaskType(t *testing.T) {
	assert.Equal(t, genai.TaskTypeRetrievalQuery, taskType(true))
	assert.Equal(t, genai.TaskTypeRetrievalDocument, taskType(false))
}
