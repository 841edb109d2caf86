package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func testApp() *cli.App {
	return &cli.App{
		Name: "medallion",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "source", Value: "/app/source_data"},
					&cli.StringFlag{Name: "output", Value: "/app/data_zone"},
					&cli.StringFlag{Name: "rules"},
					&cli.IntFlag{Name: "max-attempts", Value: 3},
					&cli.DurationFlag{Name: "retry-delay"},
					&cli.Int64Flag{Name: "min-file-size", Value: 10},
					&cli.IntFlag{Name: "workers", Value: 1},
					&cli.StringFlag{Name: "ledger"},
				},
			},
		},
	}
}

func TestIngestCommandValidation(t *testing.T) {
	t.Run("zero max-attempts fails", func(t *testing.T) {
		err := testApp().Run([]string{"medallion", "ingest", "--max-attempts", "0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max-attempts")
	})

	t.Run("zero workers fails", func(t *testing.T) {
		err := testApp().Run([]string{"medallion", "ingest", "--workers", "0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "workers")
	})

	t.Run("missing rules file fails", func(t *testing.T) {
		err := testApp().Run([]string{"medallion", "ingest", "--rules", "/nonexistent/rules.toml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delimiter rules")
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func(action cli.ActionFunc) *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info"},
			},
			Before: setupLogger,
			Action: action,
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				err := newApp(func(c *cli.Context) error { return nil }).
					Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp(func(c *cli.Context) error { return nil }).
			Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("default log level is info", func(t *testing.T) {
		err := newApp(func(c *cli.Context) error {
			assert.Equal(t, "info", c.String("log-level"))
			return nil
		}).Run([]string{"test"})
		require.NoError(t, err)
	})

	t.Run("alias -l sets the level", func(t *testing.T) {
		err := newApp(func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		}).Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}
