package root

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/prodowl/internal/credential"
	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/logging"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/store"
	"github.com/nhle/prodowl/internal/web3"
)

// env is everything a command needs once config and storage are open.
type env struct {
	cfg     *model.AppConfig
	cfgPath string
	logger  zerolog.Logger
	db      *store.SQLiteStore
	stores  *state.Stores
	opener  deeplink.Opener
}

func (g *globals) path() string {
	if g.configPath != "" {
		return g.configPath
	}
	return model.DefaultConfigPath()
}

// open loads the config, starts logging and opens the stores. The returned
// cleanup closes the database and the log file.
func (g *globals) open(ctx context.Context) (*env, func(), error) {
	path := g.path()
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	if g.dbPath != "" {
		cfg.Storage.Path = g.dbPath
	}
	if g.verbose {
		cfg.Log.Console = true
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	db, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("closing database")
		}
		_ = logCloser.Close()
	}

	opener := deeplink.BrowserOpener{}
	stores, err := state.Open(ctx, db, state.Options{Logger: logger}, state.Deps{
		Provider:        walletProvider(cfg, logger),
		Opener:          opener,
		TimerTarget:     cfg.Timer.TargetMinutes,
		FallbackTimeout: time.Duration(cfg.DeepLink.FallbackTimeoutMS) * time.Millisecond,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("opening stores: %w", err)
	}

	logger.Debug().Str("config", path).Str("db", cfg.Storage.Path).Msg("environment ready")
	return &env{
		cfg:     cfg,
		cfgPath: path,
		logger:  logger,
		db:      db,
		stores:  stores,
		opener:  opener,
	}, cleanup, nil
}

// walletProvider returns the JSON-RPC wallet bridge, or nil when none is
// configured. The bearer token comes from the system keyring.
func walletProvider(cfg *model.AppConfig, logger zerolog.Logger) web3.Provider {
	if cfg.Wallet.RPCURL == "" {
		return nil
	}
	token, err := credential.New().Lookup(credential.WalletTokenKey)
	if err != nil {
		logger.Warn().Err(err).Msg("reading wallet token, continuing without it")
	}
	return web3.NewRPCProvider(cfg.Wallet.RPCURL, token)
}

func minutes(n int) time.Duration { return time.Duration(n) * time.Minute }
