package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorLog(t *testing.T) {
	var log ErrorLog
	assert.True(t, log.Empty())
	assert.Equal(t, "", log.String())

	log.Append("Task not found!")
	log.Appendf("In %s: %v", "TaskRepository.GetTaskByTaskID(3)", "disk I/O error")

	assert.Equal(t, 2, log.Len())
	assert.Equal(t, "Task not found!\nIn TaskRepository.GetTaskByTaskID(3): disk I/O error", log.String())

	messages := log.Messages()
	messages[0] = "changed"
	assert.Equal(t, "Task not found!", log.Messages()[0])

	log.Clear()
	assert.True(t, log.Empty())
	assert.Empty(t, log.Messages())
}
