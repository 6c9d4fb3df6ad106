package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/executor"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/logging"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/sinks"
	"gitlab.com/fcv-2025.net/codejudge/internal/config"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/judge"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
	"gitlab.com/fcv-2025.net/codejudge/internal/scenario"
)

func main() {
	cmd := &cli.Command{
		Name:  "judgectl",
		Usage: "judge code against an execution backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Value:   config.BackendPiston,
				Usage:   "execution backend (judge0 or piston)",
				Sources: cli.EnvVars("JUDGE_BACKEND"),
			},
			&cli.StringFlag{
				Name:    "url",
				Usage:   "backend base URL",
				Sources: cli.EnvVars("JUDGE_URL"),
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "judge0 API key",
				Sources: cli.EnvVars("JUDGE0_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "api-key-header",
				Value:   "X-Auth-Token",
				Usage:   "header carrying the judge0 API key",
				Sources: cli.EnvVars("JUDGE0_API_KEY_HEADER"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "per-request backend timeout, rounded up to whole seconds",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log backend traffic",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "judge",
				Usage: "judge a TOML scenario and compare with its expectations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "scenario file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "parallelism",
						Value: 1,
						Usage: "cases judged concurrently",
					},
				},
				Action: judgeAction,
			},
			{
				Name:   "languages",
				Usage:  "print the resolved language catalog",
				Action: languagesAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

// timeoutSeconds rounds a positive timeout up to whole seconds so a
// sub-second value still bounds backend requests.
func timeoutSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

func newService(cmd *cli.Command, parallelism int) (*judge.JudgeService, func(), error) {
	timeout := timeoutSeconds(cmd.Duration("timeout"))
	cfg := &config.AppConfig{
		JudgeConfig: &config.JudgeConfig{
			Backend:                cmd.String("backend"),
			Parallelism:            parallelism,
			RuntimeCacheTTLSeconds: 600,
		},
		Judge0Config: &config.Judge0Config{
			Url:            cmd.String("url"),
			ApiKey:         cmd.String("api-key"),
			ApiKeyHeader:   cmd.String("api-key-header"),
			TimeoutSeconds: timeout,
		},
		PistonConfig: &config.PistonConfig{
			Url:            cmd.String("url"),
			TimeoutSeconds: timeout,
		},
	}
	if cfg.PistonConfig.Url == "" {
		cfg.PistonConfig.Url = "http://localhost:2000/api/v2"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logging.NewNopLogger()
	if cmd.Bool("debug") {
		logger = logging.NewZapLogger(true)
	}
	backend, err := executor.NewBackend(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	svc := judge.NewJudgeService(backend, nil, sinks.Nop{}, logger, judge.RunnerOptions{
		Parallelism: cfg.JudgeConfig.Parallelism,
	})
	return svc, func() { _ = logger.Sync() }, nil
}

func judgeAction(ctx context.Context, cmd *cli.Command) error {
	sc, err := scenario.Load(cmd.String("file"))
	if err != nil {
		return err
	}
	svc, closeFn, err := newService(cmd, int(cmd.Int("parallelism")))
	if err != nil {
		return err
	}
	defer closeFn()

	summary, err := svc.Evaluate(ctx, sc.Mode, sc.Language, sc.Code, sc.Cases)
	if err != nil {
		return err
	}
	printSummary(sc, summary)

	if problems := sc.Check(summary); len(problems) > 0 {
		for _, p := range problems {
			fmt.Println(color.RedString("  mismatch: %s", p))
		}
		return cli.Exit("scenario expectations not met", 2)
	}
	return nil
}

func languagesAction(ctx context.Context, cmd *cli.Command) error {
	svc, closeFn, err := newService(cmd, 1)
	if err != nil {
		return err
	}
	defer closeFn()

	langs, err := svc.Languages(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-12s %s\n", color.CyanString(name), langs[name])
	}
	return nil
}

func printSummary(sc *scenario.Scenario, summary *domain.SubmissionSummary) {
	title := sc.Description
	if title == "" {
		title = sc.Language
	}
	fmt.Printf("%s  %s  %d/%d\n", color.New(color.Bold).Sprint(title), verdictColor(summary.Verdict), summary.Passed, summary.Total)
	for i, c := range summary.Cases {
		mark := color.GreenString("ok")
		if !c.Passed {
			mark = color.RedString("fail")
		}
		fmt.Printf("  #%d %-4s %s\n", i+1, mark, c.Status)
	}
	if summary.Hidden != nil {
		fmt.Printf("  hidden %d/%d\n", summary.Hidden.Passed, summary.Hidden.Total)
	}
}

func verdictColor(v domain.Verdict) string {
	switch v {
	case domain.VerdictAccepted:
		return color.GreenString(string(v))
	case domain.VerdictWrongAnswer, domain.VerdictRuntimeError, domain.VerdictCompileError:
		return color.RedString(string(v))
	case domain.VerdictTimeLimitExceeded:
		return color.YellowString(string(v))
	default:
		return color.MagentaString(string(v))
	}
}
