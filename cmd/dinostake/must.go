// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/dinostake/builtin"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/genesis"
	"github.com/vechain/dinostake/log"
	"github.com/vechain/dinostake/lvldb"
	"github.com/vechain/dinostake/runtime"
	"github.com/vechain/dinostake/state"
)

func fatal(args ...any) {
	var w io.Writer
	outf, _ := os.Stdout.Stat()
	errf, _ := os.Stderr.Stat()
	if outf != nil && errf != nil && os.SameFile(outf, errf) {
		w = os.Stderr
	} else {
		w = io.MultiWriter(os.Stdout, os.Stderr)
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	level, ok := log.ParseLevel(ctx.String(verbosityFlag.Name))
	if !ok {
		return nil, fmt.Errorf("invalid verbosity %q", ctx.String(verbosityFlag.Name))
	}
	lvl := &slog.LevelVar{}
	lvl.Set(level)

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, lvl)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return lvl, nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	cfg, err := genesis.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return genesis.NewGenesis(filepath.Base(path), cfg)
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, "instance-"+gene.Name())
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func openMainDB(ctx *cli.Context, gene *genesis.Genesis) (*lvldb.LevelDB, string, error) {
	if !ctx.Bool(persistFlag.Name) {
		db, err := lvldb.NewMem()
		return db, "Memory", err
	}
	instanceDir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return nil, "", err
	}
	dir := filepath.Join(instanceDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB(ctx) / 2,
		OpenFilesCacheCapacity: 500,
	})
	if err != nil {
		return nil, "", errors.Wrapf(err, "open ledger database [%v]", dir)
	}
	return db, instanceDir, nil
}

func cacheMB(ctx *cli.Context) int {
	if mb := ctx.Int(cacheFlag.Name); mb > 16 {
		return mb
	}
	return 16
}

// slotCacheSize converts the cache flag to a count of cached storage slots.
func slotCacheSize(ctx *cli.Context) int {
	return cacheMB(ctx) / 2 * 1024 * 1024 / 128
}

// initRuntime deploys the genesis contracts unless the database already
// holds them, and floors the runtime clock at the last state change.
func initRuntime(gene *genesis.Genesis, stater *state.Stater, clock clockwork.Clock) (*runtime.Runtime, error) {
	deployed, err := genesis.Deployed(builtin.New(stater.NewState()))
	if err != nil {
		return nil, err
	}
	if !deployed {
		st, err := gene.Build(stater)
		if err != nil {
			return nil, err
		}
		if err := st.Stage().Commit(); err != nil {
			return nil, errors.Wrap(err, "commit genesis")
		}
		logger.Info("contracts deployed", "network", gene.Name(), "launchTime", gene.LaunchTime())
	}

	rt := runtime.New(stater, clock)
	rt.SetBlockTime(gene.LaunchTime())
	var last uint64
	err = rt.View(func(c *builtin.Contracts) (err error) {
		last, err = c.Mining().LastDistribution()
		return err
	})
	if err != nil {
		return nil, err
	}
	rt.SetBlockTime(last)
	return rt, nil
}

func distributorAccount(ctx *cli.Context, gene *genesis.Genesis) (dino.Address, error) {
	if s := ctx.String(distributorFlag.Name); s != "" {
		addr, err := dino.ParseAddress(s)
		if err != nil {
			return dino.Address{}, errors.Wrap(err, "parse distributor")
		}
		return *addr, nil
	}
	if ds := gene.Config().Distributors; len(ds) > 0 {
		return ds[0], nil
	}
	return dino.Address{}, errors.New("no distributor configured")
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStartupMessage(gene *genesis.Genesis, rt *runtime.Runtime, dataDir, adminURL string, distributor dino.Address) {
	fmt.Printf(`Starting %v
    Network      [ %v ]
    Launch time  [ %v ]
    Ledger time  [ %v ]
    Distributor  [ %v ]
    Instance dir [ %v ]
    Admin portal [ %v ]
`,
		fullVersion(),
		gene.Name(),
		gene.LaunchTime(),
		rt.BlockTime(),
		distributor,
		dataDir,
		adminURL)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".org.vechain.dinostake")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
