package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jcd386/WSM-File-System/pkg/wsmfs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := wsmfs.Main(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
