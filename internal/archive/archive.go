// Package archive converts module records to and from portable zip
// archives. Each archive entry is one JSON document named {id}.json; an
// entry holding a JSON array is read as several records.
package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/klauspost/compress/zip"
)

type Codec interface {
	Decode(archives [][]byte) ([]models.PersistedModule, error)
	Encode(mods []*models.PersistedModule) ([]byte, error)
}

type ZipCodec struct{}

func NewZipCodec() *ZipCodec {
	return &ZipCodec{}
}

// Decode reads every .json entry of every archive, in the order the entries
// were written. The order is kept because it is the display order.
func (ZipCodec) Decode(archives [][]byte) ([]models.PersistedModule, error) {
	out := []models.PersistedModule{}
	for i, data := range archives {
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("archive %d: %w", i, err)
		}

		files := make([]*zip.File, 0, len(zr.File))
		for _, f := range zr.File {
			if f.FileInfo().IsDir() || !strings.EqualFold(path.Ext(f.Name), ".json") {
				continue
			}
			files = append(files, f)
		}

		for _, f := range files {
			mods, err := readEntry(f)
			if err != nil {
				return nil, fmt.Errorf("archive %d, entry %s: %w", i, f.Name, err)
			}
			out = append(out, mods...)
		}
	}
	return out, nil
}

func readEntry(f *zip.File) ([]models.PersistedModule, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var mods []models.PersistedModule
		if err := json.Unmarshal(data, &mods); err != nil {
			return nil, err
		}
		return mods, nil
	}

	var mod models.PersistedModule
	if err := json.Unmarshal(data, &mod); err != nil {
		return nil, err
	}
	return []models.PersistedModule{mod}, nil
}

// Encode writes one {id}.json entry per record. Nil records are skipped.
func (ZipCodec) Encode(mods []*models.PersistedModule) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, mod := range mods {
		if mod == nil {
			continue
		}
		w, err := zw.Create(mod.ID + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", mod.ID, err)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(mod); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", mod.ID, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
