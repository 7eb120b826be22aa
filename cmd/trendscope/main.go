package main

import (
	"context"
	"log"

	"TrendScope/internal/cli"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}
