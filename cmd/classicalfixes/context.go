package main

import (
	"errors"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/dpetit12345/classical-fixes/internal/config"
	"github.com/dpetit12345/classical-fixes/internal/errmsg"
	"github.com/dpetit12345/classical-fixes/internal/fixes"
	"github.com/dpetit12345/classical-fixes/internal/lookup"
	"github.com/dpetit12345/classical-fixes/internal/lookup/csvstore"
	"github.com/dpetit12345/classical-fixes/internal/lookup/sqlitestore"
	"github.com/dpetit12345/classical-fixes/internal/logging"
	"github.com/dpetit12345/classical-fixes/internal/record"
	"github.com/dpetit12345/classical-fixes/internal/titles"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	dryRunFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	fs     afero.Fs
	access record.Accessor
}

func newCommandContext(configFlag, logLevelFlag *string, dryRunFlag *bool, fs afero.Fs, access record.Accessor) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		dryRunFlag:   dryRunFlag,
		fs:           fs,
		access:       access,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var cfg *config.Config
		var err error
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			cfg, err = config.LoadFrom(path)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			c.configErr = errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
			return
		}
		level := cfg.Log.Level
		if l := strings.TrimSpace(*c.logLevelFlag); l != "" {
			level = l
		}
		if err := logging.Setup(level, cfg.PrettyLog()); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withService opens the lookup store and runs fn with a Service and a
// Runner over the record accessor.
func (c *commandContext) withService(fn func(*fixes.Service, *fixes.Runner) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	path, err := cfg.LookupPath()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLookupOpen, err))
	}

	var persister lookup.Persister
	switch cfg.Lookup.Backend {
	case config.BackendSQLite:
		db, err := sqlitestore.Open(path)
		if err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpLookupOpen, path, err))
		}
		defer db.Close()
		persister = db
	default:
		persister = csvstore.NewOS(path)
	}

	rules := cfg.GetRulesConfig()
	store, err := lookup.Open(persister, lookup.WithSimilarityThreshold(rules.SimilarityThreshold))
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpLookupOpen, path, err))
	}

	svc := fixes.New(store,
		fixes.WithNormalizer(titles.New(titles.Rules{
			NumberTokens: rules.NumberTokens,
			OpusTokens:   rules.OpusTokens,
		})),
		fixes.WithOrchestraTokens(rules.OrchestraTokens),
		fixes.WithSimilarityThreshold(rules.SimilarityThreshold),
		fixes.WithGenre(cfg.Fixes.Genre),
		fixes.WithStamp(cfg.StampEnabled()),
		fixes.WithDiscMarkerStripping(cfg.Fixes.StripDiscMarkers),
	)
	runner := fixes.NewRunner(svc, c.access)
	runner.DryRun = *c.dryRunFlag
	return fn(svc, runner)
}
