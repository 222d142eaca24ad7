package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/toldyou-button/internal/audit"
	"github.com/ziadkadry99/toldyou-button/internal/button"
	"github.com/ziadkadry99/toldyou-button/internal/configs"
	"github.com/ziadkadry99/toldyou-button/internal/db"
	"github.com/ziadkadry99/toldyou-button/internal/i18n"
	"github.com/ziadkadry99/toldyou-button/internal/progress"
	"github.com/ziadkadry99/toldyou-button/internal/widget"
)

func TestExportAll(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	store := configs.NewStore(database)
	svc := configs.NewService(store, widget.NewGenerator("test"), nil, nil)
	ctx := context.Background()

	var ids []string
	for _, line := range []string{"@one", "@two", "@three"} {
		c, err := store.Create(ctx, "m@example.com", button.Config{
			Platforms: button.Platforms{LINE: line},
		}, i18n.English)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, c.ID)
	}

	dir := t.TempDir()
	var log bytes.Buffer
	n, err := exportAll(ctx, svc, dir, &progress.CIReporter{Task: "Exporting", Out: &log})
	if err != nil {
		t.Fatalf("exportAll: %v", err)
	}
	if n != 3 {
		t.Errorf("exported %d, want 3", n)
	}

	for _, id := range ids {
		b, err := os.ReadFile(filepath.Join(dir, id+".html"))
		if err != nil {
			t.Errorf("missing export for %s: %v", id, err)
			continue
		}
		if !strings.HasPrefix(string(b), "<script>") {
			t.Errorf("export for %s is not a script: %.40s", id, b)
		}
	}
	if !strings.Contains(log.String(), "[3/3]") {
		t.Errorf("progress output = %q", log.String())
	}
}

func TestExportAllEmpty(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	svc := configs.NewService(configs.NewStore(database), widget.NewGenerator(""), nil, nil)
	var log bytes.Buffer
	n, err := exportAll(context.Background(), svc, t.TempDir(), &progress.CIReporter{Task: "Exporting", Out: &log})
	if err != nil || n != 0 {
		t.Errorf("exportAll on empty store = %d, %v", n, err)
	}
}

func TestPrintAudit(t *testing.T) {
	var buf bytes.Buffer
	if err := printAudit(&buf, nil); err != nil || !strings.Contains(buf.String(), "No audit entries") {
		t.Errorf("empty output = %q, %v", buf.String(), err)
	}

	buf.Reset()
	err := printAudit(&buf, []audit.Entry{{
		Action:  audit.ActionConfigCreated,
		ActorID: "a@b.com",
		Subject: "cfg-1",
	}})
	if err != nil {
		t.Fatalf("printAudit: %v", err)
	}
	for _, want := range []string{"ACTION", "config_created", "a@b.com", "cfg-1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q: %s", want, buf.String())
		}
	}
}
