// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger database",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a deployment YAML file (dev deployment if not set)",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "store the ledger in data-dir instead of memory",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 256,
		Usage: "megabytes of ram allocated to the storage slot cache",
	}
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Value: "info",
		Usage: "log verbosity (trace|debug|info|warn|error|crit)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection, served on admin-addr under /metrics",
	}
	distributeIntervalFlag = cli.DurationFlag{
		Name:  "distribute-interval",
		Value: time.Minute,
		Usage: "how often the distributor pushes emissions to the ledgers",
	}
	maxIdleFlag = cli.DurationFlag{
		Name:  "max-idle",
		Value: 5 * time.Minute,
		Usage: "report unhealthy when no distribution happened for this long",
	}
	distributorFlag = cli.StringFlag{
		Name:  "distributor",
		Usage: "account holding the distributor role (first configured distributor if not set)",
	}
	secondsFlag = cli.Uint64Flag{
		Name:  "seconds",
		Value: 86400,
		Usage: "simulated seconds between deposit and claim",
	}
)
