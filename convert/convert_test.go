package convert

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"dxc/config"
	"dxc/content"
	"dxc/docx"
	"dxc/state"
)

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	env.Stylesheet = defaultStylesheet
	return ctx, env
}

func testContent(format config.OutputFmt) *content.Content {
	return &content.Content{
		SrcName:      "docs/report.docx",
		DocID:        "0192c1d4-0000-7000-8000-000000000000",
		OutputFormat: format,
		Doc: &docx.Document{
			Lang: "en-US",
			Meta: docx.Meta{Title: "Quarterly Report", Subject: "Finance", Creator: "Jane Roe"},
		},
	}
}
