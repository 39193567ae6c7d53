// fingerprintd-probe drives the sensor directly, without the HTTP server.
// Useful on a kiosk to check wiring before starting fingerprintd-api
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"fingerprintd/internal/core/sensor/drivers"
	"fingerprintd/internal/core/version"
	"fingerprintd/internal/platform/config"
	"fingerprintd/internal/platform/logger"
	pnet "fingerprintd/internal/platform/net"
	ptime "fingerprintd/internal/platform/time"

	"fingerprintd/internal/services/api/biometrics/domain"
	biomod "fingerprintd/internal/services/api/biometrics/module"
	bsvc "fingerprintd/internal/services/api/biometrics/service"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string, out io.Writer) error {
	fs := pflag.NewFlagSet("fingerprintd-probe", pflag.ContinueOnError)
	driver := fs.String("driver", "", "sensor driver: sim or zkfp (default FP_SENSOR_DRIVER or sim)")
	profile := fs.String("sim-profile", "", "TOML profile for the sim driver")
	threshold := fs.Int("threshold", 0, "match threshold, 0 keeps FP_BIOMETRICS_MATCH_THRESHOLD")
	timeout := fs.Duration("timeout", 0, "capture timeout, 0 keeps FP_BIOMETRICS_CAPTURE_TIMEOUT")
	showVersion := fs.Bool("version", false, "print build info and exit")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *showVersion {
		return emit(out, version.Info("fingerprintd-probe"))
	}

	args := fs.Args()
	if len(args) == 0 {
		usage(fs)
		return errors.New("missing command")
	}

	sensorCfg := config.New().Prefix("FP_SENSOR_")
	name := *driver
	if name == "" {
		name = sensorCfg.MayString("DRIVER", drivers.Sim)
	}
	if *profile == "" {
		*profile = sensorCfg.MayString("SIM_PROFILE", "")
	}
	drv, err := drivers.Open(drivers.Config{Name: name, SimProfile: *profile})
	if err != nil {
		return err
	}

	o := biomod.FromConfig(config.New())
	cfg := bsvc.Config{
		Threshold:            o.Threshold,
		CaptureTimeout:       o.CaptureTimeout,
		EnrollCaptureTimeout: o.EnrollCaptureTimeout,
		PollInterval:         o.PollInterval,
		SettleDelay:          o.SettleDelay,
		EnrollMaxAttempts:    o.EnrollMaxAttempts,
	}
	if *threshold > 0 {
		cfg.Threshold = *threshold
	}
	if *timeout > 0 {
		cfg.CaptureTimeout = *timeout
	}
	svc := bsvc.New(drv, cfg, nil, ptime.System)

	ctx := logger.WithRequest(context.Background(), fmt.Sprintf("probe-%d", time.Now().Unix()))
	if err := svc.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(ctx); err != nil {
			logger.Get().Warn().Err(err).Msg("sensor close")
		}
	}()

	return dispatch(ctx, svc, args, out)
}

func dispatch(ctx context.Context, svc domain.ServicePort, args []string, out io.Writer) error {
	switch args[0] {
	case "info":
		in := svc.Info(ctx)
		return emit(out, domain.InfoResponse{Ack: pnet.Done, Ready: in.Ready, Width: in.Width, Height: in.Height})
	case "selftest":
		st, err := svc.SelfTest(ctx)
		if err != nil {
			return err
		}
		return emit(out, domain.SelfTestResponse{Ack: pnet.Done, ABytes: st.ABytes, BBytes: st.BBytes, Score: st.Score})
	case "enroll":
		tpl, err := svc.Enroll(ctx)
		if err != nil {
			return err
		}
		return emit(out, domain.EnrollResponse{Ack: pnet.Done, Template: domain.EncodeTemplate(tpl)})
	case "verify":
		if len(args) < 2 {
			return errors.New("verify needs a base64 template argument")
		}
		res, err := svc.Verify(ctx, args[1])
		if err != nil {
			return err
		}
		return emit(out, domain.MatchResponse{Ack: pnet.Done, Match: res.Matched, Score: res.Score})
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func emit(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: fingerprintd-probe [flags] <command> [args]

Commands:
  info               open the sensor and print image geometry
  selftest           capture twice and print the pair score
  enroll             capture three samples and print the fused template
  verify <template>  capture once and compare against a base64 template

Flags:
%s`, fs.FlagUsages())
}
