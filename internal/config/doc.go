// Package config loads service settings from an optional YAML file, a .env
// file and the process environment. The Gemini API key only ever comes from
// the environment.
package config
