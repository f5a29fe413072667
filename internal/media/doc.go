package media

// Package media turns local files into upload candidates: it detects videos,
// derives display titles from file names and extracts a JPEG cover frame with ffmpeg.
