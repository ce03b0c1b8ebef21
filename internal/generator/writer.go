package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanshika/herograph/backend/internal/dataset"
)

// Output file names, matching the defaults the server reads.
const (
	RelationsFile  = "relation_message.csv"
	CharactersFile = "message.csv"
)

// WriteDataset serializes the dataset into the relation and character CSV
// files under the provided directory.
func WriteDataset(ds Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeFile(filepath.Join(dir, RelationsFile), func(f *os.File) error {
		return dataset.WriteRelations(f, ds.Relations)
	}); err != nil {
		return err
	}

	return writeFile(filepath.Join(dir, CharactersFile), func(f *os.File) error {
		return dataset.WriteCharacters(f, ds.Characters)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return nil
}
