package infrastructure_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/survey/internal/config"
	"github.com/JaimeStill/survey/internal/infrastructure"
	"github.com/JaimeStill/survey/internal/oracle"
	"github.com/JaimeStill/survey/pkg/database"
	"github.com/JaimeStill/survey/pkg/storage"
)

const azurite = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;" +
	"AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;" +
	"BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func testConfig() *config.Config {
	return &config.Config{
		Database: database.Config{
			Host:     "localhost",
			Port:     5432,
			Name:     "survey",
			User:     "survey",
			Password: "survey",
			SSLMode:  "disable",
		},
		Storage: storage.Config{ContainerName: "survey", ConnectionString: azurite},
		Oracle:  config.OracleConfig{Provider: config.ProviderAnthropic, Model: "claude-test", Token: "key"},
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewBuildsSystems(t *testing.T) {
	infra, err := infrastructure.NewWithLogger(testConfig(), discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if infra.Database == nil || infra.Storage == nil || infra.Oracle == nil {
		t.Fatalf("missing system: %+v", infra)
	}
	if infra.Lifecycle.Ready() {
		t.Error("lifecycle ready before Start")
	}
}

func TestNewUnknownOracleProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Oracle.Provider = "mainframe"

	_, err := infrastructure.NewWithLogger(cfg, discard())
	if !errors.Is(err, oracle.ErrUnknownProvider) {
		t.Errorf("err = %v, want %v", err, oracle.ErrUnknownProvider)
	}
}

func TestScopedSharesSystems(t *testing.T) {
	infra, err := infrastructure.NewWithLogger(testConfig(), discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	scoped := infra.Scoped("module", "api")
	if scoped == infra {
		t.Fatal("Scoped returned the receiver")
	}
	if scoped.Logger == infra.Logger {
		t.Error("Scoped logger was not derived")
	}
	if scoped.Lifecycle != infra.Lifecycle || scoped.Database != infra.Database || scoped.Storage != infra.Storage {
		t.Error("Scoped must share lifecycle, database, and storage")
	}
}
