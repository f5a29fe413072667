package platform

// Package platform contains OS/platform integration: per-user application data
// locations, filesystem helpers, and OS open/reveal.
