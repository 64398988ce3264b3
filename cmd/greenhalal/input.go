package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"greenhalal/backend/internal/enrich"
	"greenhalal/backend/internal/scoring"
	"greenhalal/backend/internal/store"
)

// readRecord decodes a record from path, or stdin for "-". YAML is picked by extension.
func readRecord(path string, stdin io.Reader) (scoring.Record, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return scoring.Record{}, eris.Wrapf(err, "read record %s", path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return scoring.Record{}, eris.Errorf("record %s is empty", path)
	}

	var rec scoring.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &rec)
	default:
		err = json.Unmarshal(data, &rec)
	}
	if err != nil {
		return scoring.Record{}, eris.Wrapf(err, "decode record %s", path)
	}
	if err := rec.Validate(); err != nil {
		return scoring.Record{}, eris.Wrap(err, "invalid record")
	}
	return rec, nil
}

// openStore opens the configured reference store and bootstraps the enrichment table.
func openStore() (*store.Database, *enrich.Table, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return nil, nil, eris.Wrap(err, "create data directory")
	}
	db, err := store.Open(cfg.Store.Path, cfg.Store.Silent)
	if err != nil {
		return nil, nil, err
	}
	table, err := db.Bootstrap(cfg.Reference.Path)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, table, nil
}
