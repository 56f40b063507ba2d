package main

import (
	"context"

	"github.com/ukaji/kintai/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
