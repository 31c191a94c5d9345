// Package config loads the server, database and language-model settings from
// an optional .env file, an optional config.yaml and TASKTAG_* environment
// variables, and validates them before anything is started.
package config
