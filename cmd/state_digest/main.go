package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/urfave/cli.v1"
)

var (
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "JSON configuration file, overridden by STATE_DIGEST_* variables and flags",
	}
	DBFlag = cli.StringFlag{
		Name:  "db",
		Usage: "database directory",
	}
	OtherDBFlag = cli.StringFlag{
		Name:  "other",
		Usage: "database directory of the replica to compare against",
	}
	BackendFlag = cli.StringFlag{
		Name:  "backend",
		Usage: "database backend: leveldb or rocksdb",
	}
	AlgorithmFlag = cli.StringFlag{
		Name:  "algorithm",
		Usage: "digest algorithm: sha256, keccak256 or blake3",
	}
	EncodingFlag = cli.StringFlag{
		Name:  "encoding",
		Usage: "entry encoding: length-prefixed or raw",
	}
	MarkersFlag = cli.StringFlag{
		Name:  "markers",
		Usage: "comma separated, strictly increasing segment markers",
	}
	WorkersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of goroutines reading segments",
	}
	SharedSnapshotFlag = cli.BoolFlag{
		Name:  "shared-snapshot",
		Usage: "open every segment on one database snapshot",
	}
	VerbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
	}
	MetricsFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "collect metrics and print them to stderr when done",
	}
)

var output io.Writer = os.Stdout

func new_app() *cli.App {
	app := cli.NewApp()
	app.Name = "state_digest"
	app.Usage = "deterministic digest of a node's key-value state"
	app.Flags = []cli.Flag{
		ConfigFlag,
		DBFlag,
		BackendFlag,
		AlgorithmFlag,
		EncodingFlag,
		MarkersFlag,
		WorkersFlag,
		SharedSnapshotFlag,
		VerbosityFlag,
		MetricsFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:   "full",
			Usage:  "digest the whole database in one pass",
			Action: fullCmd,
		},
		{
			Name:   "partitioned",
			Usage:  "digest the database segment by segment",
			Action: partitionedCmd,
		},
		{
			Name:   "compare",
			Usage:  "digest two replicas and report whether they hold the same state",
			Action: compareCmd,
			Flags:  []cli.Flag{OtherDBFlag},
		},
	}
	return app
}

func main() {
	if err := new_app().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
