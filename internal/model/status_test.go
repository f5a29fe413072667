package model

import "testing"

func TestTaskStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusUploading, true},
		{TaskStatusCompleted, false},
		{TaskStatusCancelled, false},
		{TaskStatusError, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusUploading, false},
		{TaskStatusCompleted, true},
		{TaskStatusCancelled, true},
		{TaskStatusError, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_String(t *testing.T) {
	status := TaskStatusCancelled
	expected := "cancelled"
	result := status.String()

	if result != expected {
		t.Errorf("TaskStatus.String() = %s, expected %s", result, expected)
	}
}

func TestVideoStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   VideoStatus
		expected bool
	}{
		{VideoStatusPending, false},
		{VideoStatusProcessing, false},
		{VideoStatusUploading, false},
		{VideoStatusSubmitting, false},
		{VideoStatusCompleted, true},
		{VideoStatusError, true},
		{VideoStatusCancelled, true},
	}

	for _, test := range tests {
		if got := test.status.IsFinished(); got != test.expected {
			t.Errorf("VideoStatus(%s).IsFinished() = %v, expected %v", test.status, got, test.expected)
		}
	}
}
