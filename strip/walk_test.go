package strip

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (relative path -> content) under a new temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

type recordingProcessor struct {
	paths []string
	fail  map[string]bool
}

func (rp *recordingProcessor) process(path string) error {
	rp.paths = append(rp.paths, path)
	if rp.fail[filepath.Base(path)] {
		return &FileError{Path: path, Stage: StageRead, Err: errors.New("boom")}
	}
	return nil
}

func testWalker(t *testing.T, cfg Config) *walker {
	t.Helper()
	cfg.Logger = log.New(&bytes.Buffer{}, "", 0)
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	w, err := newWalker(cfg)
	require.NoError(t, err)
	return w
}

func TestWalkSourceFindsNestedFiles(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.dart":              "",
		"sub/b.dart":          "",
		"sub/deep/er/c.dart":  "",
		"sub/readme.md":       "",
		"sub/d.dart.bak":      "",
		".git/hooks/x.dart":   "",
		"build/gen/gen.dart":  "",
		"lib/model.g.dart":    "",
		"lib/widget/top.dart": "",
	})

	rp := &recordingProcessor{}
	w := testWalker(t, Config{Root: root, Exclude: []string{"build", "**.g.dart"}})
	require.NoError(t, w.walkSource(rp))

	var rel []string
	for _, p := range rp.paths {
		rel = append(rel, filepath.ToSlash(w.relative(p)))
	}
	assert.ElementsMatch([]string{"a.dart", "sub/b.dart", "sub/deep/er/c.dart", "lib/widget/top.dart", ".git/hooks/x.dart"}, rel)
	assert.Empty(w.failures)
}

func TestWalkSourceExcludeGitDirectory(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.dart":            "",
		".git/hooks/x.dart": "",
		"sub/.git/y.dart":   "",
	})

	rp := &recordingProcessor{}
	w := testWalker(t, Config{Root: root, Exclude: []string{".git", "**/.git"}})
	require.NoError(t, w.walkSource(rp))

	assert.Equal([]string{filepath.Join(root, "a.dart")}, rp.paths)
}

func TestWalkSourceCustomSuffix(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.go":     "",
		"b.dart":   "",
		"c/d.go":   "",
		"c/d.go.x": "",
	})

	rp := &recordingProcessor{}
	w := testWalker(t, Config{Root: root, Suffix: ".go"})
	require.NoError(t, w.walkSource(rp))

	assert.Len(rp.paths, 2)
}

func TestWalkSourceSkipsSymlinks(t *testing.T) {
	root := writeTree(t, map[string]string{"a.dart": ""})
	if err := os.Symlink(filepath.Join(root, "a.dart"), filepath.Join(root, "link.dart")); err != nil {
		t.Skipf("symlinks not available: %v", err)
	}

	rp := &recordingProcessor{}
	w := testWalker(t, Config{Root: root})
	require.NoError(t, w.walkSource(rp))

	assert.Equal(t, []string{filepath.Join(root, "a.dart")}, rp.paths)
}

func TestWalkSourceSymlinkedRoot(t *testing.T) {
	assert := assert.New(t)

	target := writeTree(t, map[string]string{"a.dart": "", "sub/b.dart": "", "skip/c.dart": ""})
	link := filepath.Join(t.TempDir(), "lib")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not available: %v", err)
	}

	rp := &recordingProcessor{fail: map[string]bool{"b.dart": true}}
	w := testWalker(t, Config{Root: link, Exclude: []string{"skip"}})
	require.NoError(t, w.walkSource(rp))

	assert.Equal([]string{filepath.Join(link, "a.dart"), filepath.Join(link, "sub", "b.dart")}, rp.paths)
	require.Len(t, w.failures, 1)
	assert.Equal(filepath.Join(link, "sub", "b.dart"), w.failures[0].Path)
}

func TestWalkSourceContinue(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{"a.dart": "", "b.dart": "", "c.dart": ""})

	rp := &recordingProcessor{fail: map[string]bool{"a.dart": true, "c.dart": true}}
	w := testWalker(t, Config{Root: root, OnError: Continue})

	assert.NoError(w.walkSource(rp))
	assert.Len(rp.paths, 3)
	require.Len(t, w.failures, 2)
	assert.Equal(filepath.Join(root, "a.dart"), w.failures[0].Path)
	assert.Equal(filepath.Join(root, "c.dart"), w.failures[1].Path)
}

func TestWalkSourceAbort(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{"a.dart": "", "b.dart": "", "c.dart": ""})

	rp := &recordingProcessor{fail: map[string]bool{"a.dart": true}}
	w := testWalker(t, Config{Root: root, OnError: Abort})

	err := w.walkSource(rp)
	assert.ErrorIs(err, ErrReadFailure)
	assert.Len(rp.paths, 1)
	assert.Len(w.failures, 1)
}

func TestWalkSourceUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	assert := assert.New(t)

	root := writeTree(t, map[string]string{"a.dart": "", "locked/b.dart": "", "z.dart": ""})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	rp := &recordingProcessor{}
	w := testWalker(t, Config{Root: root})

	assert.NoError(w.walkSource(rp))
	assert.Len(rp.paths, 2)
	require.Len(t, w.failures, 1)
	assert.Equal(StageWalk, w.failures[0].Stage)
	assert.Equal(locked, w.failures[0].Path)
}

func TestBadExcludePattern(t *testing.T) {
	_, err := newWalker(Config{Root: t.TempDir(), Exclude: []string{"[unterminated"}})
	assert.Error(t, err)
}

func TestCheckRoot(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{"file.dart": ""})

	assert.NoError(checkRoot(root))
	assert.ErrorIs(checkRoot(filepath.Join(root, "missing")), ErrDirectoryNotFound)
	assert.ErrorIs(checkRoot(filepath.Join(root, "file.dart")), ErrDirectoryNotFound)
}

func TestFileErrorIs(t *testing.T) {
	assert := assert.New(t)

	err := error(&FileError{Path: "/x.dart", Stage: StageWrite, Err: os.ErrPermission})

	assert.ErrorIs(err, ErrWriteFailure)
	assert.NotErrorIs(err, ErrReadFailure)
	assert.ErrorIs(err, os.ErrPermission)
	assert.Equal("write /x.dart: permission denied", err.Error())
}

func TestParseErrorPolicy(t *testing.T) {
	assert := assert.New(t)

	p, err := ParseErrorPolicy("abort")
	assert.NoError(err)
	assert.Equal(Abort, p)

	p, err = ParseErrorPolicy("")
	assert.NoError(err)
	assert.Equal(Continue, p)

	_, err = ParseErrorPolicy("retry")
	assert.Error(err)
}
