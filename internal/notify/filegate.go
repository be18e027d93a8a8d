package notify

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileGate is a client-local notification ledger stored as TOML. The watch
// command uses it so a laptop that already showed an alert does not show it
// again after a restart, without consulting the server ledger.
type FileGate struct {
	path string
	cfg  fileGateConfig
}

type fileGateConfig struct {
	Enabled    bool            `toml:"enabled"`
	Permission string          `toml:"permission"`
	Notified   map[string]bool `toml:"notified"`
}

// DefaultFileGatePath returns the per-user gate file location.
func DefaultFileGatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "postqueue")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "notify.toml"), nil
}

// LoadFileGate reads the gate file at path, creating default state if the
// file does not exist yet.
func LoadFileGate(path string) (*FileGate, error) {
	g := &FileGate{path: path}
	if _, err := toml.DecodeFile(path, &g.cfg); err != nil {
		if os.IsNotExist(err) {
			g.cfg = fileGateConfig{
				Enabled:    true,
				Permission: string(PermissionDefault),
				Notified:   map[string]bool{},
			}
			return g, nil
		}
		return nil, err
	}
	if g.cfg.Notified == nil {
		g.cfg.Notified = map[string]bool{}
	}
	if g.cfg.Permission == "" {
		g.cfg.Permission = string(PermissionDefault)
	}
	return g, nil
}

func (g *FileGate) save() error {
	f, err := os.OpenFile(g.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(g.cfg)
}

func (g *FileGate) Enabled() bool {
	return g.cfg.Enabled
}

func (g *FileGate) SetEnabled(enabled bool) error {
	g.cfg.Enabled = enabled
	return g.save()
}

func (g *FileGate) Permission() Permission {
	return Permission(g.cfg.Permission)
}

// GrantPermission records the user's answer to the permission prompt.
// Denied is final: once denied, later grants require editing the file.
func (g *FileGate) GrantPermission(p Permission) error {
	if g.Permission() == PermissionDenied {
		return g.save()
	}
	g.cfg.Permission = string(p)
	return g.save()
}

// ShouldNotify reports whether the post may alert on this client.
func (g *FileGate) ShouldNotify(postID string) bool {
	return g.cfg.Enabled && g.Permission() == PermissionGranted && !g.cfg.Notified[postID]
}

func (g *FileGate) Mark(postID string) error {
	g.cfg.Notified[postID] = true
	return g.save()
}

func (g *FileGate) Clear(postID string) error {
	delete(g.cfg.Notified, postID)
	return g.save()
}
