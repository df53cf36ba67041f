package types

import "time"

// AgentConfig holds settings for the answer assembler.
type AgentConfig struct {
	// AnswerTemplate is the fmt template for the answer text. It must contain
	// exactly one %s verb, which receives the query.
	AnswerTemplate string `json:"answer_template" yaml:"answer_template"`

	// Record controls whether assembled responses are written to the audit log.
	Record bool `json:"record" yaml:"record"`
}

// AuditConfig holds settings for the audit log.
type AuditConfig struct {
	// Dir is the directory holding audit.db and export files (default "audit").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listed records (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the HTTP service.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout bounds the time spent reading a request.
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout bounds the time spent writing a response.
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// MaxBodyBytes caps request body size (default 1 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Development switches to the human-readable console encoder.
	Development bool `json:"development" yaml:"development"`
}

// Config groups all settings loaded from juridico-rag.yaml.
type Config struct {
	Agent  AgentConfig  `json:"agent" yaml:"agent"`
	Audit  AuditConfig  `json:"audit" yaml:"audit"`
	Server ServerConfig `json:"server" yaml:"server"`
	Log    LogConfig    `json:"log" yaml:"log"`
}
