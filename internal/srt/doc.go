// Package srt converts transcript entries into SubRip subtitle documents.
package srt
