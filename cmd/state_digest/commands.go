package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"gopkg.in/urfave/cli.v1"

	"github.com/Taraxa-project/taraxa-state-digest/taraxa/state_digest"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/state_digest/digest_config"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util/jsonutil"
)

// load_config layers flags over the file and environment configuration.
func load_config(ctx *cli.Context) (cfg *digest_config.Config, err error) {
	if cfg, err = digest_config.Load(ctx.GlobalString(ConfigFlag.Name)); err != nil {
		return
	}
	if ctx.GlobalIsSet(DBFlag.Name) {
		cfg.File = ctx.GlobalString(DBFlag.Name)
	}
	if ctx.GlobalIsSet(BackendFlag.Name) {
		cfg.Backend = ctx.GlobalString(BackendFlag.Name)
	}
	if ctx.GlobalIsSet(AlgorithmFlag.Name) {
		if cfg.Algorithm, err = state_digest.ParseAlgorithm(ctx.GlobalString(AlgorithmFlag.Name)); err != nil {
			return
		}
	}
	if ctx.GlobalIsSet(EncodingFlag.Name) {
		if cfg.Encoding, err = state_digest.ParseEncoding(ctx.GlobalString(EncodingFlag.Name)); err != nil {
			return
		}
	}
	if ctx.GlobalIsSet(MarkersFlag.Name) {
		cfg.Markers = state_digest.ParseMarkers(ctx.GlobalString(MarkersFlag.Name))
	}
	if ctx.GlobalIsSet(WorkersFlag.Name) {
		cfg.Workers = ctx.GlobalInt(WorkersFlag.Name)
	}
	if ctx.GlobalIsSet(SharedSnapshotFlag.Name) {
		cfg.SharedSnapshot = ctx.GlobalBool(SharedSnapshotFlag.Name)
	}
	if ctx.GlobalIsSet(VerbosityFlag.Name) {
		cfg.Verbosity = ctx.GlobalInt(VerbosityFlag.Name)
	}
	if ctx.GlobalIsSet(MetricsFlag.Name) {
		cfg.Metrics = ctx.GlobalBool(MetricsFlag.Name)
	}
	if cfg.File == "" {
		return nil, fmt.Errorf("no database given, use --%s", DBFlag.Name)
	}
	return cfg, cfg.Validate()
}

func setup(ctx *cli.Context) (*digest_config.Config, error) {
	cfg, err := load_config(ctx)
	if err != nil {
		return nil, err
	}
	glogger := log.NewGlogHandler(log.StreamHandler(os.Stderr, log.TerminalFormat(false)))
	glogger.Verbosity(log.Lvl(cfg.Verbosity))
	log.Root().SetHandler(glogger)
	if cfg.Metrics {
		metrics.Enabled = true
	}
	return cfg, nil
}

func with_signals() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func digest(ctx context.Context, cfg *digest_config.Config, file string, plan *state_digest.SegmentPlan) (ret state_digest.Report, err error) {
	db, err := open_db(cfg, file)
	if err != nil {
		return
	}
	defer db.Close()
	hasher := state_digest.NewHasher(cfg.HasherOpts())
	res, err := hasher.Compute(ctx, db, plan)
	if err != nil {
		return
	}
	return hasher.Report(res, plan), nil
}

func print_json(obj interface{}) {
	output.Write(jsonutil.MustEncodePretty(obj))
	fmt.Fprintln(output)
}

func finish(cfg *digest_config.Config) {
	if cfg.Metrics {
		metrics.WriteOnce(metrics.DefaultRegistry, os.Stderr)
	}
}

func fullCmd(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer finish(cfg)
	sig_ctx, cancel := with_signals()
	defer cancel()
	report, err := digest(sig_ctx, cfg, cfg.File, nil)
	if err != nil {
		return err
	}
	print_json(report)
	return nil
}

func partitionedCmd(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer finish(cfg)
	plan, err := cfg.Plan()
	if err != nil {
		return err
	}
	sig_ctx, cancel := with_signals()
	defer cancel()
	report, err := digest(sig_ctx, cfg, cfg.File, plan)
	if err != nil {
		return err
	}
	print_json(report)
	return nil
}

type comparison struct {
	Local  state_digest.Report `json:"local"`
	Remote state_digest.Report `json:"remote"`
	Equal  bool                `json:"equal"`
}

// compareCmd prints both reports and fails when the replicas differ.
func compareCmd(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer finish(cfg)
	other := ctx.String(OtherDBFlag.Name)
	if other == "" {
		return fmt.Errorf("no replica to compare against, use --%s", OtherDBFlag.Name)
	}
	plan, err := cfg.Plan()
	if err != nil {
		return err
	}
	sig_ctx, cancel := with_signals()
	defer cancel()
	var ret comparison
	if ret.Local, err = digest(sig_ctx, cfg, cfg.File, plan); err != nil {
		return err
	}
	if ret.Remote, err = digest(sig_ctx, cfg, other, plan); err != nil {
		return err
	}
	cmp_err := state_digest.Compare(ret.Local, ret.Remote)
	ret.Equal = cmp_err == nil
	print_json(ret)
	return cmp_err
}
