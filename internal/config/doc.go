// Package config loads aisw's own settings. It is distinct from the engine
// configurations that aisw edits.
//
// The file is config.yaml, searched in the current directory and then in
// <xdg config>/aisw/. Every key can also be set through an AISW_ prefixed
// environment variable.
//
//	version: 1
//	default_engines:
//	  - claude
//	  - codex
//	engines:
//	  codex:
//	    config_dir: /srv/codex
//	backup:
//	  enabled: true
//	  retention: 5
//
// [Load] validates what it reads; [Validate] can be called directly on a
// hand-built [Config].
package config
