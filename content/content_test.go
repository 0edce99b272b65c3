package content

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"dxc/config"
	"dxc/docx"
	"dxc/docx/docxtest"
	"dxc/state"
)

func setup(t *testing.T, mode config.ImagesMode) context.Context {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Document.Images.Mode = mode
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t)
	return ctx
}

func prepare(t *testing.T, ctx context.Context, data []byte) (*Content, error) {
	t.Helper()
	return Prepare(ctx, bytes.NewReader(data), int64(len(data)), "dir/doc.docx", config.OutputFmtXhtml, zaptest.NewLogger(t))
}

func TestPrepare(t *testing.T) {
	data := docxtest.New(`<w:p><w:r><w:t>hello</w:t></w:r></w:p>`).
		WithMedia("rIdImg", "image1.png", docxtest.PNG).
		WithMedia("rIdImg2", "image10.png", docxtest.PNG).
		WithMedia("rIdImg3", "image2.png", docxtest.PNG).
		Bytes(t)

	c, err := prepare(t, setup(t, config.ImagesModeExtract), data)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	id, err := uuid.Parse(c.DocID)
	if err != nil || id.Version() != 7 {
		t.Errorf("document id %q is not UUID v7: %v", c.DocID, err)
	}
	if c.Media.Len() != 3 {
		t.Fatalf("expected 3 media items, got %d", c.Media.Len())
	}
	if c.WorkDir() != "" {
		t.Errorf("work directory must only be created for debug report")
	}

	dump := c.String()
	for _, want := range []string{`source["dir/doc.docx"]`, "Media index: 3", `Media["word/media/image1.png"]`} {
		if !strings.Contains(dump, want) {
			t.Errorf("expected %q in dump:\n%s", want, dump)
		}
	}
	first, second := strings.Index(dump, "image2.png"), strings.Index(dump, "image10.png")
	if first < 0 || second < 0 || first > second {
		t.Errorf("media must be listed in natural order:\n%s", dump)
	}
}

func TestPrepare_SkipImages(t *testing.T) {
	data := docxtest.New(`<w:p/>`).WithMedia("rIdImg", "image1.png", docxtest.PNG).Bytes(t)
	c, err := prepare(t, setup(t, config.ImagesModeSkip), data)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if c.Media != nil {
		t.Errorf("media must not be collected in skip mode")
	}
}

func TestPrepare_Errors(t *testing.T) {
	ctx := setup(t, config.ImagesModeExtract)
	if _, err := prepare(t, ctx, []byte("not a zip")); !errors.Is(err, docx.ErrNotDocument) {
		t.Errorf("expected ErrNotDocument, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := prepare(t, cancelled, docxtest.New(`<w:p/>`).Bytes(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestContent_StringNil(t *testing.T) {
	var c *Content
	if c.String() != "<nil Content>" {
		t.Errorf("unexpected nil dump %q", c.String())
	}
}
