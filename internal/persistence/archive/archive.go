// Package archive keeps a seed-keyed copy of world snapshots so a
// regenerated or overwritten snapshot never loses the prior artifact.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"tileworld.ai/internal/persistence/snapshot"
)

type Meta struct {
	Seed      int64  `json:"seed"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Digest    string `json:"digest"`
	Snapshot  string `json:"snapshot"`
	CreatedAt string `json:"created_at"`
}

// ArchiveSnapshot copies snapshotPath into `dataDir/archives/seed_<seed>/`
// alongside a meta.json describing it. Re-archiving the same seed replaces
// the prior copy.
func ArchiveSnapshot(dataDir, snapshotPath string, h snapshot.Header) (archivedPath string, err error) {
	archiveDir := filepath.Join(dataDir, "archives", fmt.Sprintf("seed_%d", h.Seed))
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(archiveDir, filepath.Base(snapshotPath))
	if err := copyFile(snapshotPath, dst); err != nil {
		return "", err
	}

	meta := Meta{
		Seed:      h.Seed,
		Width:     h.Width,
		Height:    h.Height,
		Digest:    h.Digest,
		Snapshot:  filepath.Base(dst),
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if b, err := json.MarshalIndent(meta, "", "  "); err == nil {
		_ = os.WriteFile(filepath.Join(archiveDir, "meta.json"), b, 0o644)
	}

	return dst, nil
}

// ReadMeta loads the meta.json for an archived seed, if present.
func ReadMeta(dataDir string, seed int64) (Meta, error) {
	var m Meta
	raw, err := os.ReadFile(filepath.Join(dataDir, "archives", fmt.Sprintf("seed_%d", seed), "meta.json"))
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, err
	}
	return m, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
