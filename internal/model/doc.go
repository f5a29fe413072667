package model

// Package model defines domain data structures used across the app: upload
// tasks, selected video files, batches and their status enums. Structures are
// designed for direct binding in the UI and explicit state transitions.
