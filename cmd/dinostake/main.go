// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/dinostake/admin"
	"github.com/vechain/dinostake/co"
	"github.com/vechain/dinostake/health"
	"github.com/vechain/dinostake/log"
	"github.com/vechain/dinostake/metrics"
	"github.com/vechain/dinostake/state"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Dinostake",
		Usage:     "Collateral staking and reward distribution ledger",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			persistFlag,
			cacheFlag,
			verbosityFlag,
			jsonLogsFlag,
			adminAddrFlag,
			enableMetricsFlag,
			distributeIntervalFlag,
			maxIdleFlag,
			distributorFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "inspect",
				Usage:  "print ledgers, emission and supply figures as JSON",
				Flags:  []cli.Flag{dataDirFlag, configFlag, persistFlag, cacheFlag, verbosityFlag, jsonLogsFlag},
				Action: inspectAction,
			},
			{
				Name:   "simulate",
				Usage:  "deposit, distribute and claim against an in-memory deployment",
				Flags:  []cli.Flag{configFlag, secondsFlag, verbosityFlag, jsonLogsFlag},
				Action: simulateAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	mainDB, instanceDir, err := openMainDB(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	healthStatus := health.New(nil, ctx.Duration(maxIdleFlag.Name))
	rt, err := initRuntime(gene, state.NewStater(mainDB, slotCacheSize(ctx)), nil)
	if err != nil {
		return err
	}
	healthStatus.BootstrapStatus(true)

	caller, err := distributorAccount(ctx, gene)
	if err != nil {
		return err
	}

	adminURL, closeAdmin, err := admin.StartServer(ctx.String(adminAddrFlag.Name), logLevel, healthStatus)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping admin server..."); closeAdmin() }()

	printStartupMessage(gene, rt, instanceDir, adminURL, caller)

	d := &distributor{
		rt:       rt,
		caller:   caller,
		health:   healthStatus,
		interval: ctx.Duration(distributeIntervalFlag.Name),
	}
	var goes co.Goes
	goes.GoContext(exitSignal, d.run)

	<-exitSignal.Done()
	goes.Wait()
	return nil
}
