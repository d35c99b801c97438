package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkViewed_PendingTransitions(t *testing.T) {
	a := &Application{Status: ApplicationPending}
	assert.True(t, a.MarkViewed())
	assert.Equal(t, ApplicationViewed, a.Status)
}

func TestMarkViewed_IdempotentForNonPending(t *testing.T) {
	for _, status := range []string{ApplicationViewed, ApplicationInterview, ApplicationAccepted, ApplicationRejected} {
		a := &Application{Status: status}
		assert.False(t, a.MarkViewed(), "status %q should not transition", status)
		assert.Equal(t, status, a.Status)
	}
}

func TestValidApplicationStatus(t *testing.T) {
	for _, status := range []string{ApplicationPending, ApplicationViewed, ApplicationInterview, ApplicationAccepted, ApplicationRejected} {
		assert.True(t, ValidApplicationStatus(status), status)
	}
	assert.False(t, ValidApplicationStatus("withdrawn"))
	assert.False(t, ValidApplicationStatus(""))
}

func TestValidJobStatus(t *testing.T) {
	for _, status := range []string{JobStatusActive, JobStatusClosed, JobStatusDraft, JobStatusExpired} {
		assert.True(t, ValidJobStatus(status), status)
	}
	assert.False(t, ValidJobStatus("archived"))
}

func TestConversationKey_Symmetric(t *testing.T) {
	assert.Equal(t, "a#b", ConversationKey("a", "b"))
	assert.Equal(t, "a#b", ConversationKey("b", "a"))
	assert.Equal(t, ConversationKey("u1", "u2"), ConversationKey("u2", "u1"))
}
