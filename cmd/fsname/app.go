package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dmitrymomot/fsname/pkg/file"
	"github.com/dmitrymomot/fsname/pkg/fsname"
	"github.com/dmitrymomot/fsname/pkg/logger"
)

// mode selects how each input is interpreted.
type mode int

const (
	modeFile mode = iota
	modeFolder
	modePath
)

func (m mode) String() string {
	switch m {
	case modeFolder:
		return "folder"
	case modePath:
		return "path"
	default:
		return "file"
	}
}

// app wires the command to its streams. A nil environ reads the process
// environment.
type app struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	environ map[string]string
}

func (a *app) run(ctx context.Context, args []string) error {
	cfg, err := loadConfig(a.environ)
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("fsname", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.StringVarP(&cfg.Target, "target", "t", cfg.Target, "target: "+strings.Join(fsname.Targets(), ", "))
	fs.StringVarP(&cfg.Profile, "profile", "p", cfg.Profile, "YAML profile describing a custom target (overrides --target)")
	fs.StringVar(&cfg.Replacement, "replacement", cfg.Replacement, "character substituted for forbidden characters")
	fs.StringVar(&cfg.Pad, "pad", cfg.Pad, "character appended to reserved names")
	fs.StringVarP(&cfg.Store, "store", "s", cfg.Store, "copy the named files into `DIR` or s3://bucket/prefix")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	folder := fs.BoolP("folder", "d", false, "sanitize folder names")
	path := fs.Bool("path", false, "sanitize slash-separated paths")
	fs.Usage = func() {
		fmt.Fprintln(a.stderr, "usage: fsname [flags] [name ...]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	m := modeFile
	switch {
	case *folder && *path:
		return errors.New("--folder and --path are mutually exclusive")
	case *folder:
		m = modeFolder
	case *path:
		m = modePath
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	log := logger.New(
		logger.WithOutput(a.stderr),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
	)

	policy, target, err := resolvePolicy(cfg)
	if err != nil {
		return err
	}
	log = log.With(logger.Target(target))

	if cfg.Store != "" {
		return a.store(ctx, cfg, policy, log, fs.Args(), m)
	}
	return a.sanitize(ctx, policy, log, fs.Args(), m)
}

// resolvePolicy returns the policy named by the configuration and its name.
// A profile wins over the target; its own replacement and pad apply.
func resolvePolicy(cfg Config) (fsname.Policy, string, error) {
	if cfg.Profile == "" {
		p, err := fsname.Lookup(cfg.Target, cfg.policyOptions()...)
		if err != nil {
			return nil, "", err
		}
		return p, strings.ToLower(strings.TrimSpace(cfg.Target)), nil
	}

	f, err := os.Open(cfg.Profile)
	if err != nil {
		return nil, "", fmt.Errorf("open profile: %w", err)
	}
	defer func() { _ = f.Close() }()

	prof, err := fsname.LoadProfile(f)
	if err != nil {
		return nil, "", err
	}
	custom, err := prof.Policy()
	if err != nil {
		return nil, "", err
	}
	return custom, custom.Name(), nil
}

// sanitize prints the sanitized form of every name in args, or of every
// line on stdin when args is empty.
func (a *app) sanitize(ctx context.Context, policy fsname.Policy, log *slog.Logger, args []string, m mode) error {
	emit := func(name string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := sanitizeName(name, policy, m)
		if err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
		if out != name {
			log.Debug("name sanitized", logger.Kind(m.String()), logger.Rename(name, out))
		}
		_, err = fmt.Fprintln(a.stdout, out)
		return err
	}

	if len(args) > 0 {
		for _, name := range args {
			if err := emit(name); err != nil {
				return err
			}
		}
		return nil
	}

	// bufio.Reader instead of Scanner: a name line may be any length.
	br := bufio.NewReader(a.stdin)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if emitErr := emit(line); emitErr != nil {
				return emitErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func sanitizeName(name string, policy fsname.Policy, m mode) (string, error) {
	switch m {
	case modeFolder:
		return fsname.TrySanitizeFolder(name, policy)
	case modePath:
		return fsname.SanitizePath(name, policy)
	default:
		return fsname.SanitizeFilename(name, policy), nil
	}
}

// store copies every source file into the configured storage and prints
// the key each one landed under.
func (a *app) store(ctx context.Context, cfg Config, policy fsname.Policy, log *slog.Logger, sources []string, m mode) error {
	if m == modeFolder {
		return errors.New("--folder cannot be combined with --store")
	}
	if len(sources) == 0 {
		return errors.New("--store needs at least one source file")
	}

	st, prefix, err := openStorage(ctx, cfg, policy, log)
	if err != nil {
		return err
	}

	for _, src := range sources {
		dest := filepath.Base(src)
		if m == modePath {
			dest = filepath.ToSlash(src)
		}
		if prefix != "" {
			dest = prefix + "/" + dest
		}

		stored, err := saveFile(ctx, st, src, dest)
		if err != nil {
			return fmt.Errorf("%s: %w", src, err)
		}
		log.Info("file stored",
			slog.String("source", src),
			slog.String("key", stored.RelativePath),
			slog.String("mime", stored.MIMEType),
			slog.Int64("size", stored.Size),
		)
		if _, err := fmt.Fprintln(a.stdout, stored.RelativePath); err != nil {
			return err
		}
	}
	return nil
}

func saveFile(ctx context.Context, st file.Storage, src, dest string) (*file.File, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return st.Save(ctx, dest, f)
}

// openStorage picks S3 for s3://bucket/prefix locations and the local
// filesystem otherwise. The returned prefix is prepended to every key.
func openStorage(ctx context.Context, cfg Config, policy fsname.Policy, log *slog.Logger) (file.Storage, string, error) {
	rest, ok := strings.CutPrefix(cfg.Store, "s3://")
	if !ok {
		st, err := file.NewLocalStorage(cfg.Store, "",
			file.WithLocalPolicy(policy),
			file.WithLocalLogger(log),
		)
		if err != nil {
			return nil, "", err
		}
		return st, "", nil
	}

	bucket, prefix, _ := strings.Cut(rest, "/")
	st, err := file.NewS3Storage(ctx, file.S3Config{
		Bucket:         bucket,
		Region:         cfg.S3.Region,
		AccessKeyID:    cfg.S3.AccessKeyID,
		SecretKey:      cfg.S3.SecretKey,
		Endpoint:       cfg.S3.Endpoint,
		BaseURL:        cfg.S3.BaseURL,
		ForcePathStyle: cfg.S3.PathStyle,
	},
		file.WithS3Policy(policy),
		file.WithS3Logger(log),
	)
	if err != nil {
		return nil, "", err
	}
	return st, strings.Trim(prefix, "/"), nil
}
