package codex

import (
	"context"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aisw/internal/credential"
	"github.com/thoreinstein/aisw/internal/fragment"
	"github.com/thoreinstein/aisw/internal/paths"
	"github.com/thoreinstein/aisw/pkg/fileutil"
)

// Live is the provider currently configured for Codex.
type Live struct {
	// Credential is the decoded auth.json.
	Credential credential.Payload

	// Fragment is config.toml without the sections that survive a switch.
	Fragment string

	APIKey  string
	BaseURL string
	Model   string
}

// ProviderManager switches the Codex provider.
type ProviderManager struct {
	paths  *Paths
	backup Snapshotter
	logger *slog.Logger
}

// NewProviderManager creates a new ProviderManager instance.
func NewProviderManager(p *Paths, opts ...ManagerOption) *ProviderManager {
	o := applyOptions(opts)
	return &ProviderManager{paths: p, backup: o.backup, logger: o.logger}
}

// Current reads the live credential and provider fragment. Missing files
// read as empty.
func (m *ProviderManager) Current(ctx context.Context) (*Live, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := readText(m.paths.ConfigPath())
	if err != nil {
		return nil, err
	}
	authData, err := fileutil.ReadFileIfExists(m.paths.AuthPath())
	if err != nil {
		return nil, errors.Wrap(err, "reading auth.json")
	}
	payload := credential.Payload{}
	if len(authData) > 0 {
		if payload, err = credential.Parse(authData); err != nil {
			return nil, errors.Wrap(err, "parsing auth.json")
		}
	}

	frag := stripped(text, serversTable, projectsTable)
	return &Live{
		Credential: payload,
		Fragment:   frag,
		APIKey:     credential.ExtractAPIKey(payload),
		BaseURL:    fragment.ExtractBaseURL(frag),
		Model:      fragment.ExtractModel(frag),
	}, nil
}

// Apply replaces the live credential and provider fragment. MCP server
// tables and per-project trust settings already in config.toml are kept,
// as are auth.json members the payload does not name. An empty payload
// leaves auth.json untouched.
// Both files are written atomically; when the config write fails the
// previous auth.json is put back.
func (m *ProviderManager) Apply(ctx context.Context, payload credential.Payload, frag string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fragment.Validate(frag); err != nil {
		return errors.Wrap(err, "invalid provider config")
	}

	configPath, authPath := m.paths.ConfigPath(), m.paths.AuthPath()
	text, err := readText(configPath)
	if err != nil {
		return err
	}
	next := fragment.Join(frag, carried(text, serversTable, projectsTable))

	prevAuth, err := fileutil.ReadFileIfExists(authPath)
	if err != nil {
		return errors.Wrap(err, "reading auth.json")
	}
	// An empty payload carries no credential, so a login already stored
	// in auth.json stays in place.
	writeAuth := len(payload) > 0
	var authData []byte
	if writeAuth {
		if authData, err = credential.Overlay(prevAuth, payload); err != nil {
			return errors.Wrap(err, "encoding auth.json")
		}
	}

	if err := m.snapshot(); err != nil {
		return err
	}
	if writeAuth {
		if err := fileutil.WriteFile(authPath, authData, authPerm); err != nil {
			return errors.Wrap(err, "writing auth.json")
		}
	}
	if err := writeConfig(configPath, next); err != nil {
		if writeAuth {
			m.restoreAuth(authPath, prevAuth)
		}
		return err
	}

	m.logger.Info("applied codex provider", "base_url", fragment.ExtractBaseURL(frag), "model", fragment.ExtractModel(frag))
	return nil
}

// SetModel rewrites the top-level model of the live config.
func (m *ProviderManager) SetModel(ctx context.Context, model string) error {
	return m.patch(ctx, "model", model, fragment.ExtractModel, fragment.SetModel)
}

// SetBaseURL rewrites the first base_url of the live config.
func (m *ProviderManager) SetBaseURL(ctx context.Context, baseURL string) error {
	return m.patch(ctx, "base_url", baseURL, fragment.ExtractBaseURL, fragment.SetBaseURL)
}

// patch applies set to the provider part of config.toml only, so keys
// inside server tables are never touched. Setting the current value is a
// no-op; a config without the key is an error.
func (m *ProviderManager) patch(ctx context.Context, key, value string, get func(string) string, set func(string, string) string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := m.paths.ConfigPath()
	text, err := readText(path)
	if err != nil {
		return err
	}
	frag := stripped(text, serversTable, projectsTable)
	updated := set(frag, value)
	if updated == frag {
		if get(frag) == value {
			return nil
		}
		return errors.Newf("no %s setting found in %s", key, path)
	}
	if err := m.snapshot(); err != nil {
		return err
	}
	if err := writeConfig(path, fragment.Join(updated, carried(text, serversTable, projectsTable))); err != nil {
		return err
	}
	m.logger.Info("updated codex config", "key", key, "value", value, "path", path)
	return nil
}

func (m *ProviderManager) snapshot() error {
	if m.backup == nil {
		return nil
	}
	if err := m.backup.Snapshot(paths.EngineCodex, m.paths.ConfigPath(), m.paths.AuthPath()); err != nil {
		return errors.Wrap(err, "backing up codex config")
	}
	return nil
}

func (m *ProviderManager) restoreAuth(path string, prev []byte) {
	var err error
	if prev == nil {
		err = os.Remove(path)
	} else {
		err = fileutil.WriteFile(path, prev, authPerm)
	}
	if err != nil && !os.IsNotExist(err) {
		m.logger.Error("could not restore auth.json", "path", path, "error", err)
	}
}
