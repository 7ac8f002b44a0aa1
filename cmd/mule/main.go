package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/cenkalti/log"
	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli"

	"github.com/mule-dl/mule"
	"github.com/mule-dl/mule/internal/console"
	"github.com/mule-dl/mule/internal/downloaddir"
	"github.com/mule-dl/mule/internal/filename"
	"github.com/mule-dl/mule/internal/logger"
)

const defaultConfigPath = "~/.mule.yaml"

func main() {
	app := cli.NewApp()
	app.Name = "mule"
	app.Usage = "download a file over http/https, retrying until it is complete"
	app.ArgsUsage = "<url>"
	app.Version = mule.Version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: defaultConfigPath,
			Usage: "read defaults from `FILE`",
		},
		cli.StringFlag{
			Name:  "output, o",
			Usage: "save the file into `DIR` (default: user downloads folder)",
		},
		cli.StringFlag{
			Name:  "proxy, p",
			Usage: "proxy `ADDRESS` for http and https requests, scheme optional",
		},
		cli.DurationFlag{
			Name:  "interval, r",
			Usage: "wait `DURATION` between attempts",
			Value: mule.DefaultConfig.RetryInterval,
		},
		cli.IntFlag{
			Name:  "max-attempts, m",
			Usage: "give up after `N` attempts, 0 means never",
		},
		cli.StringFlag{
			Name:  "limit-rate",
			Usage: "cap download speed, e.g. 500KB or 2MB per second",
		},
		cli.BoolFlag{
			Name:  "insecure, k",
			Usage: "skip TLS certificate verification",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "enable debug log",
		},
		cli.BoolFlag{
			Name:  "quiet, q",
			Usage: "do not print progress",
		},
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	link := c.Args().First()
	if link == "" {
		return cli.NewExitError("give a download link as first argument", 1)
	}
	if c.Bool("debug") {
		logger.SetLevel(log.DEBUG)
	}

	cfg := mule.NewConfig()
	cp, err := homedir.Expand(c.String("config"))
	if err != nil {
		return err
	}
	if err := cfg.LoadFile(cp); err != nil {
		// The default config file is optional; one named explicitly is not.
		if c.IsSet("config") || !os.IsNotExist(err) {
			return err
		}
	}

	task, err := buildTask(c, cfg, link)
	if err != nil {
		return err
	}
	d, err := mule.New(task)
	if err != nil {
		return err
	}

	var printer *console.Printer
	if !c.Bool("quiet") {
		printer = console.New(os.Stdout)
		d.SetNotifier(mule.NotifierFunc(func(p mule.Progress) {
			printer.Print(p.Offset, p.Total, p.Rate)
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res := d.Run(ctx)
	if printer != nil {
		printer.Finish()
	}
	switch res.Outcome {
	case mule.Succeeded:
		fmt.Println("saved to", task.Dest)
		return nil
	case mule.Cancelled:
		fmt.Printf("interrupted; %s saved, run the same command to resume from byte %d\n",
			humanize.IBytes(uint64(res.Bytes)), res.Bytes)
		return nil
	default:
		return cli.NewExitError(fmt.Sprintf("download failed after %d attempts: %s", res.Attempts, res.Err), 1)
	}
}

// buildTask merges config file values and command line flags.
// Flags win when both are set.
func buildTask(c *cli.Context, cfg *mule.Config, link string) (mule.Task, error) {
	dir := cfg.DownloadDir
	if c.IsSet("output") {
		dir = c.String("output")
	}
	var err error
	if dir == "" {
		dir, err = downloaddir.Default()
	} else {
		dir, err = homedir.Expand(dir)
	}
	if err != nil {
		return mule.Task{}, err
	}

	task := mule.Task{
		URL:                link,
		Dest:               filepath.Join(dir, filename.FromURL(link)),
		Proxy:              cfg.Proxy,
		RetryInterval:      cfg.RetryInterval,
		Timeout:            cfg.Timeout,
		MaxAttempts:        cfg.MaxAttempts,
		InsecureSkipVerify: cfg.InsecureSkipVerify || c.Bool("insecure"),
		RateLimit:          cfg.RateLimit,
	}
	if c.IsSet("proxy") {
		task.Proxy = c.String("proxy")
	}
	if c.IsSet("interval") {
		task.RetryInterval = c.Duration("interval")
	}
	if c.IsSet("max-attempts") {
		task.MaxAttempts = c.Int("max-attempts")
	}
	if s := c.String("limit-rate"); s != "" {
		rate, err := humanize.ParseBytes(s)
		if err != nil {
			return mule.Task{}, fmt.Errorf("invalid limit-rate %q: %w", s, err)
		}
		task.RateLimit = int64(rate)
	}
	return task, nil
}
