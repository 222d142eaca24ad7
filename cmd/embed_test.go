package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/ziadkadry99/toldyou-button/internal/button"
	"github.com/ziadkadry99/toldyou-button/internal/configs"
	"github.com/ziadkadry99/toldyou-button/internal/db"
	"github.com/ziadkadry99/toldyou-button/internal/i18n"
)

func TestFindConfig(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	store := configs.NewStore(database)
	ctx := context.Background()
	first, err := store.Create(ctx, "shop@example.com", button.Config{Platforms: button.Platforms{LINE: "@old"}}, i18n.English)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	latest, err := store.Create(ctx, "shop@example.com", button.Config{Platforms: button.Platforms{LINE: "@new"}}, i18n.English)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := findConfig(ctx, store, first.ID, "")
	if err != nil || got.ID != first.ID {
		t.Errorf("by id = %+v, %v", got, err)
	}
	got, err = findConfig(ctx, store, "", "SHOP@example.com")
	if err != nil || got.ID != latest.ID {
		t.Errorf("by email = %+v, %v", got, err)
	}

	if _, err := findConfig(ctx, store, "missing", ""); err == nil || !strings.Contains(err.Error(), `"missing"`) {
		t.Errorf("unknown id error = %v", err)
	}
	if _, err := findConfig(ctx, store, "", "nobody@example.com"); err == nil || !strings.Contains(err.Error(), "nobody@example.com") {
		t.Errorf("unknown email error = %v", err)
	}
}
