package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seolab/kwscout/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.MaxResults, ShouldEqual, 100)
			So(cfg.FetchWorkers, ShouldEqual, 4)
			So(cfg.FetchRetries, ShouldEqual, 2)
			So(cfg.FetchTimeout(), ShouldEqual, 30*time.Second)
			So(cfg.ResearchDeadline(), ShouldEqual, 2*time.Minute)
			So(cfg.FetchBackoff(), ShouldEqual, 500*time.Millisecond)
		})

		Convey("Provider delays default to one second", func() {
			So(cfg.ProviderDelay("DataForSEO"), ShouldEqual, time.Second)
			So(cfg.ProviderDelay("SerpApi"), ShouldEqual, time.Second)
			So(cfg.ProviderDelay("unknown"), ShouldEqual, time.Second)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("KWSCOUT_ADDR", ":8123")
	t.Setenv("KWSCOUT_LOG_LEVEL", "debug")
	t.Setenv("KWSCOUT_SERPAPI_KEY", "env-key")
	t.Setenv("KWSCOUT_MAX_RESULTS", "25")

	Convey("Given environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Env values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8123")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.SerpAPIKey, ShouldEqual, "env-key")
			So(cfg.MaxResults, ShouldEqual, 25)
		})
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("addr: \":7001\"\nsemrush_key: file-key\nrate_limit_ms:\n  SEMrush: 2500\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KWSCOUT_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("File values layer over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7001")
			So(cfg.SEMrushKey, ShouldEqual, "file-key")
			So(cfg.ProviderDelay("SEMrush"), ShouldEqual, 2500*time.Millisecond)
		})
	})
}

func TestLoadFileEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7001\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KWSCOUT_CONFIG", path)
	t.Setenv("KWSCOUT_ADDR", ":7002")

	Convey("Given both a file and an env override", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Env wins over the file", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7002")
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("KWSCOUT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	Convey("Given a missing config file path", t, func() {
		_, err := config.Load(context.Background())

		Convey("Loading fails with the load sentinel", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]struct {
		key   string
		value string
	}{
		"zero research deadline": {"KWSCOUT_RESEARCH_DEADLINE_MS", "0"},
		"zero max results":       {"KWSCOUT_MAX_RESULTS", "0"},
		"zero fetch workers":     {"KWSCOUT_FETCH_WORKERS", "0"},
		"zero fetch timeout":     {"KWSCOUT_FETCH_TIMEOUT_MS", "0"},
		"negative retries":       {"KWSCOUT_FETCH_RETRIES", "-1"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			Convey("Given "+name, t, func() {
				_, err := config.Load(context.Background())
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	}
}
