package strip

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

type commentStripper struct {
	codec  *codec
	logger *log.Logger
	result *Result
}

func (cs *commentStripper) process(path string) error {
	cs.logger.Printf("Processing %s\n", path)
	cs.result.Files++

	raw, err := readSource(path)
	if err != nil {
		return &FileError{Path: path, Stage: StageRead, Err: err}
	}
	text, err := cs.codec.decode(raw)
	if err != nil {
		return &FileError{Path: path, Stage: StageRead, Err: err}
	}

	out, stats := StripText(text)

	encoded, err := cs.codec.encode(out)
	if err != nil {
		return &FileError{Path: path, Stage: StageWrite, Err: err}
	}
	if bytes.Equal(encoded, raw) {
		cs.result.Lines.add(stats)
		return nil
	}
	if err := replaceFile(path, encoded); err != nil {
		return &FileError{Path: path, Stage: StageWrite, Err: err}
	}
	cs.result.Lines.add(stats)
	cs.result.Changed++
	return nil
}

func readSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// replaceFile writes data next to path and renames it over path, so a failed
// write never leaves a half-written source file behind. The original
// permission bits are kept.
func replaceFile(path string, data []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file : %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("error writing %s : %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("error syncing %s : %w", tmpName, err)
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("error setting mode on %s : %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing %s : %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("error replacing %s : %w", path, err)
	}
	return nil
}
