package convert

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"dxc/archive"
	"dxc/config"
	"dxc/content"
	"dxc/state"
)

//go:embed default.css
var defaultStylesheet []byte

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src, dst, err := sourceAndDestination(cmd, log)
	if err != nil {
		return err
	}

	format, err := config.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to xhtml", zap.Error(err))
		format = config.OutputFmtXhtml
	}
	if err := applyOptions(cmd, env, log); err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

func sourceAndDestination(cmd *cli.Command, log *zap.Logger) (src, dst string, err error) {
	if src = cmd.Args().Get(0); len(src) == 0 {
		return "", "", errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return "", "", err
	}
	if dst = cmd.Args().Get(1); len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return "", "", err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	return src, dst, nil
}

// applyOptions puts command line flags on top of loaded configuration.
func applyOptions(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) error {
	if cmd.Bool("inline") {
		env.Cfg.Document.StyleMode = config.StyleModeInline
	}
	if cmd.Bool("fragment") {
		env.Cfg.Document.Fragment = true
	}
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	env.Stylesheet = defaultStylesheet
	if path := env.Cfg.Document.StylesheetPath; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", path, err)
		}
		env.Stylesheet = data
	}

	// zip does not define file name encoding, old archives may need a
	// forced code page
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		enc, err := ianaindex.IANA.Encoding(cp)
		if err != nil || enc == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			return nil
		}
		env.CodePage = enc
		n, _ := ianaindex.IANA.Name(enc)
		log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
	}
	return nil
}

// job keeps what is common for all documents of a single run.
type job struct {
	env    *state.LocalEnv
	dst    string
	format config.OutputFmt
	log    *zap.Logger
}

// process renders everything source points to: single document, directory
// tree, whole archive or path inside archive.
func process(ctx context.Context, src, dst string, format config.OutputFmt, log *zap.Logger) error {
	j := &job{env: state.EnvFromContext(ctx), dst: dst, format: format, log: log}

	// walk up until existing file system object is found, the rest may be
	// path inside archive
	head, tail := src, ""
	for ; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}
		head = strings.TrimSuffix(head, string(filepath.Separator))
		if fi, err := os.Stat(head); err == nil {
			return j.source(ctx, src, head, len(tail) != 0, fi)
		}
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

func (j *job) source(ctx context.Context, src, head string, hasTail bool, fi os.FileInfo) error {
	rest := strings.TrimPrefix(src, head)

	switch {
	case fi.IsDir():
		if hasTail {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, rest)
		}
		if err := j.dir(ctx, head); err != nil {
			return fmt.Errorf("unable to process directory: %w", err)
		}
		return nil
	case !fi.Mode().IsRegular():
		return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, rest)
	}

	document, err := isDocumentFile(head)
	if err != nil {
		return fmt.Errorf("unable to check file type: %w", err)
	}
	if document && !hasTail {
		if err := j.file(ctx, head, filepath.Base(head)); err != nil {
			j.log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
		}
		return nil
	}

	arc, err := isArchiveFile(head)
	if err != nil {
		return fmt.Errorf("unable to check archive type: %w", err)
	}
	if !arc {
		return fmt.Errorf("input was not recognized as document or archive (%s)", head)
	}
	prefix := filepath.ToSlash(strings.TrimPrefix(rest, string(filepath.Separator)))
	if err := j.archive(ctx, head, prefix, ""); err != nil {
		return fmt.Errorf("unable to process archive: %w", err)
	}
	return nil
}

// dir renders documents found in directory tree including documents inside
// archives.
func (j *job) dir(ctx context.Context, dir string) error {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			j.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		document, err := isDocumentFile(path)
		if err != nil {
			j.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if document {
			count++
			if err := j.file(ctx, path, rel); err != nil {
				j.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		arc, err := isArchiveFile(path)
		switch {
		case err != nil:
			j.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
		case !arc:
			j.log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
		default:
			count++
			if err := j.archive(ctx, path, "", filepath.Dir(rel)); err != nil {
				j.log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
		}
		return nil
	})
	if err == nil && count == 0 {
		j.log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return err
}

// archive renders documents stored in archive under prefix. Output paths
// are rooted at outDir relative to destination.
func (j *job) archive(ctx context.Context, path, prefix, outDir string) error {
	count := 0
	err := archive.Walk(ctx, path, prefix, j.env.CodePage, func(e *archive.Entry) error {
		log := j.log.With(zap.String("archive", e.Archive), zap.String("file", e.File.Name))

		document, err := isDocumentInArchive(e.File)
		if err != nil {
			log.Warn("Skipping file in archive", zap.Error(err))
			return nil
		}
		if !document {
			log.Debug("Skipping file, not recognized as document")
			return nil
		}
		count++

		if e.NameErr != nil {
			log.Warn("Unable to convert archive name from specified encoding", zap.String("path", e.Name), zap.Error(e.NameErr))
		}
		r, err := e.Open()
		if err == nil {
			err = j.document(ctx, r, r.Size(), filepath.Join(outDir, e.Name))
		}
		if err != nil {
			log.Error("Unable to process file in archive", zap.Error(err))
		}
		return nil
	})
	if err == nil && count == 0 {
		j.log.Debug("Nothing to process", zap.String("archive", path))
	}
	return err
}

func (j *job) file(ctx context.Context, path, src string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	return j.document(ctx, f, fi.Size(), src)
}

// document renders single document. src is the source path relative to
// what was requested: base name for a single file, relative path inside
// directory or archive otherwise. Output goes under job destination.
func (j *job) document(ctx context.Context, r io.ReaderAt, size int64, src string) (rerr error) {
	var docID, outputName string

	j.log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		// one broken document should not stop the batch
		if r := recover(); r != nil {
			j.log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			j.log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("doc_id", docID))
		}
	}(time.Now())

	c, err := content.Prepare(ctx, r, size, src, j.format, j.log)
	if err != nil {
		return fmt.Errorf("unable to parse document (%s): %w", src, err)
	}
	docID = c.DocID

	outputName = buildOutputPath(c, src, j.dst, j.env)
	if err := j.prepareOutput(outputName); err != nil {
		return err
	}
	if err := generate(ctx, c, outputName, j.log); err != nil {
		return fmt.Errorf("unable to generate output: %w", err)
	}
	j.env.Rpt.Store(fmt.Sprintf("result-%s%s", docID, filepath.Ext(outputName)), outputName)
	return nil
}

// prepareOutput makes sure output file could be created.
func (j *job) prepareOutput(name string) error {
	_, err := os.Stat(name)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
		return nil
	case err != nil:
		return err
	case !j.env.Overwrite:
		return fmt.Errorf("output file already exists: %s", name)
	}
	j.log.Warn("Overwriting existing file", zap.String("file", name))
	return os.Remove(name)
}
