package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/slen516-afk/fraudboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8001")
				convey.So(cfg.DBHost, convey.ShouldEqual, "db")
				convey.So(cfg.DBTable, convey.ShouldEqual, "temp_raw_data")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 20_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("FRAUDBOARD_ADDR", ":8080")
			_ = os.Setenv("FRAUDBOARD_DB_HOST", "mysql.internal")
			_ = os.Setenv("FRAUDBOARD_DB_PORT", "3307")
			_ = os.Setenv("FRAUDBOARD_DB_PASSWORD", "s3cret")
			_ = os.Setenv("FRAUDBOARD_FETCH_TIMEOUT_MS", "5000")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DBHost, convey.ShouldEqual, "mysql.internal")
				convey.So(cfg.DBPort, convey.ShouldEqual, 3307)
				convey.So(cfg.DBPassword, convey.ShouldEqual, "s3cret")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 5000)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
db_driver: pgx
db_dsn: "postgres://admin:password@db:5432/project_db"
db_table: postings
max_scatter_points: 10
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FRAUDBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DBDriver, convey.ShouldEqual, config.DriverPostgres)
				convey.So(cfg.DBDSN, convey.ShouldStartWith, "postgres://")
				convey.So(cfg.DBTable, convey.ShouldEqual, "postings")
				convey.So(cfg.MaxScatterPoints, convey.ShouldEqual, 10)
				convey.So(cfg.DBReadTimeoutMS, convey.ShouldEqual, 30_000) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
db_host: filehost
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FRAUDBOARD_CONFIG", tmpFile)
			_ = os.Setenv("FRAUDBOARD_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")    // Overridden by env
				convey.So(cfg.DBHost, convey.ShouldEqual, "filehost") // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FRAUDBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("FRAUDBOARD_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("FRAUDBOARD_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("FRAUDBOARD_DB_PORT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"FRAUDBOARD_CONFIG",
		"FRAUDBOARD_ADDR",
		"FRAUDBOARD_DB_HOST",
		"FRAUDBOARD_DB_PORT",
		"FRAUDBOARD_DB_PASSWORD",
		"FRAUDBOARD_FETCH_TIMEOUT_MS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "fraudboard-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
