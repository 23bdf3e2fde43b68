package strip

import (
	"errors"
	"log"
)

const DefaultSuffix = ".dart"

// Config describes one run over a source tree.
type Config struct {
	// Root is the directory to walk. Required.
	Root string
	// Suffix selects files by name. Defaults to DefaultSuffix.
	Suffix string
	// Encoding is a WHATWG encoding label. Defaults to utf-8.
	Encoding string
	// Exclude holds glob patterns matched against root-relative,
	// slash-separated paths. A matching directory is skipped entirely.
	Exclude []string
	OnError ErrorPolicy
	// Logger receives progress and failure lines. Defaults to log.Default().
	Logger *log.Logger
}

func (cfg Config) withDefaults() (Config, error) {
	if cfg.Root == "" {
		return cfg, errors.New("root directory is required")
	}
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "utf-8"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return cfg, nil
}

// Result summarises a StripComments run.
type Result struct {
	Files    int
	Changed  int
	Lines    LineStats
	Failures []*FileError
}

func (r *Result) Err() error {
	return joinFailures(r.Failures)
}

func joinFailures(failures []*FileError) error {
	errs := make([]error, 0, len(failures))
	for _, f := range failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// StripComments removes comments in place from every file under cfg.Root
// whose name ends with cfg.Suffix.
//
// The returned Result is non-nil whenever the walk started, so callers can
// report partial progress. The error is ErrDirectoryNotFound (wrapped) for a
// bad root, the first FileError under Abort, or the join of every FileError
// under Continue.
func StripComments(cfg Config) (*Result, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	c, err := lookupCodec(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	w, err := newWalker(cfg)
	if err != nil {
		return nil, err
	}
	if err := checkRoot(cfg.Root); err != nil {
		return nil, err
	}

	res := &Result{}
	cs := &commentStripper{codec: c, logger: cfg.Logger, result: res}
	err = w.walkSource(cs)
	res.Failures = w.failures
	if err != nil {
		return res, err
	}
	return res, res.Err()
}

// Stats runs the transformer over the same files StripComments would touch
// and reports what it would change. Nothing is written.
func Stats(cfg Config) (*Report, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	c, err := lookupCodec(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	w, err := newWalker(cfg)
	if err != nil {
		return nil, err
	}
	if err := checkRoot(cfg.Root); err != nil {
		return nil, err
	}

	sp := &statsProcessor{codec: c, logger: cfg.Logger, walker: w, report: &Report{}}
	err = w.walkSource(sp)
	sp.report.Failures = w.failures
	if err != nil {
		return sp.report, err
	}
	return sp.report, sp.report.Err()
}
