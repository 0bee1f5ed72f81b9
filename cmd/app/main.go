package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"signal_go/internal/app"
	"signal_go/internal/domain"
	"signal_go/internal/infra/chatfeed"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] [msg_id ...]\n\n"+
				"Without message ids, listens for new group messages.\n"+
				"With message ids, fetches and processes them in order (test mode).\n\n",
			os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	msgIDs, err := parseMsgIDs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(msgIDs) > 0 {
		client := chatfeed.NewClient(bootstrap.Config)
		bootstrap.Processor.RunBatch(ctx, client, msgIDs, bootstrap.BatchSinks)
		return
	}

	inbox := make(chan domain.Message, 64)
	worker := chatfeed.NewWorker(bootstrap.Config, inbox)
	if err := worker.Connect(ctx); err != nil {
		slog.Error("feed connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer worker.Disconnect()

	bootstrap.Processor.RunLive(ctx, inbox)
}

func parseMsgIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid message id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
