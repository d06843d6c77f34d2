// SPDX-License-Identifier: GPL-3.0-or-later

// Command iocdemo wires an EVT producer/consumer pair over an in-process
// FIFO link and posts a handful of keepalive events between them.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bassosimone/ioc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg := ioc.NewConfig()
	cfg.Logger = slog.Default()
	rt := ioc.NewRuntime(cfg)

	svcID, result := rt.OnlineService(ctx, ioc.ServiceArgs{
		URI:   "fifo://LocalProcess/iocdemo",
		Roles: []ioc.Role{ioc.RoleEvtConsumer},
	})
	if result != ioc.ResultSuccess {
		return fmt.Errorf("online service: %w", result)
	}
	defer rt.OfflineService(svcID)

	accepted := make(chan *ioc.Link, 1)
	go func() {
		link, result := rt.AcceptClient(ctx, svcID, ioc.DefaultOptions().WithTimeout(5*time.Second))
		if result != ioc.ResultSuccess {
			slog.Error("acceptClient failed", "result", result)
			return
		}
		accepted <- link
	}()

	producer, result := rt.ConnectService(ctx, "fifo://LocalProcess/iocdemo",
		[]ioc.Role{ioc.RoleEvtProducer}, ioc.DefaultOptions().WithTimeout(5*time.Second))
	if result != ioc.ResultSuccess {
		return fmt.Errorf("connect service: %w", result)
	}
	defer rt.CloseLink(producer.ID)

	consumer := <-accepted
	defer rt.CloseLink(consumer.ID)

	done := make(chan struct{})
	count := 0
	_, result = rt.SubEVT(consumer.ID, func(linkID ioc.LinkID, evt ioc.EvtDesc, privateData any) ioc.Result {
		count++
		slog.Info("received keepalive", "value", evt.Value, "seq", evt.SeqID)
		if count == 3 {
			close(done)
		}
		return ioc.ResultSuccess
	}, nil, []ioc.EvtID{ioc.EvtIDTestKeepalive})
	if result != ioc.ResultSuccess {
		return fmt.Errorf("subscribe: %w", result)
	}

	for i := uint64(0); i < 3; i++ {
		evt := ioc.NewEvtDesc(ioc.EvtIDTestKeepalive, i, 0, time.Time{})
		if result := rt.PostEVT(producer.ID, evt, ioc.DefaultOptions()); result != ioc.ResultSuccess && result != ioc.ResultNoEventConsumer {
			return fmt.Errorf("post event %d: %w", i, result)
		}
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timed out waiting for all keepalives to arrive")
	}
	return nil
}
