package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/bootyhunt/server/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		t.Setenv("BOOTY_CONFIG", "")

		cfg, err := config.Load(context.Background())

		Convey("Then defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.DBPath, ShouldBeEmpty)
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
			So(cfg.DefaultLeaderboardLimit, ShouldEqual, 20)
			So(cfg.RegattaTopN, ShouldEqual, 10)
			So(cfg.StoreBusyTimeoutMS, ShouldEqual, 5000)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given env overrides", t, func() {
		t.Setenv("BOOTY_CONFIG", "")
		t.Setenv("BOOTY_ADDR", ":7070")
		t.Setenv("BOOTY_DB_PATH", "/tmp/booty.db")
		t.Setenv("BOOTY_LOG_LEVEL", "debug")

		cfg, err := config.Load(context.Background())

		Convey("Then they win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.DBPath, ShouldEqual, "/tmp/booty.db")
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		yaml := "addr: \":6060\"\nregatta_top_n: 5\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		t.Setenv("BOOTY_CONFIG", path)

		Convey("When loaded without env overrides", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.RegattaTopN, ShouldEqual, 5)
				So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
			})
		})

		Convey("When env overrides the file", func() {
			t.Setenv("BOOTY_ADDR", ":5050")
			cfg, err := config.Load(context.Background())

			Convey("Then env wins", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":5050")
			})
		})
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("BOOTY_CONFIG", "/does/not/exist.yaml")

		_, err := config.Load(context.Background())

		Convey("Then loading fails with the load sentinel", func() {
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given an invalid limit configuration", t, func() {
		t.Setenv("BOOTY_CONFIG", "")
		t.Setenv("BOOTY_DEFAULT_LEADERBOARD_LIMIT", "500")

		_, err := config.Load(context.Background())

		Convey("Then loading fails with the invalid sentinel", func() {
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
