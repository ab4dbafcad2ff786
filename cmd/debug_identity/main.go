package main

import (
	"context"
	"fmt"
	"log"

	"rinksync/core/config"
	"rinksync/core/feed"
	"rinksync/core/reconcile"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	fmt.Println("Loading feed...")
	sources, _, err := feed.NewClient(cfg.Feed, zap.NewNop()).Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Loaded %d feed events\n", len(sources))

	prefix := cfg.Sync.TitlePrefix

	fmt.Println("\n=== Derived identities per scheme ===")

	seen := map[string]string{}
	collisions := 0
	for _, src := range sources {
		fnv := reconcile.Derive(reconcile.SchemeFNV64, src.Title, src.Start, src.Location)
		legacy := reconcile.Derive(reconcile.SchemeLegacy31, src.Title, src.Start, src.Location)
		key := reconcile.ContentKey(prefix, src.Title, src.Start, src.Location)

		fmt.Printf("Event: %q @ %s\n  -> fnv64:    %s\n  -> legacy31: %s\n  -> content:  %s\n",
			src.Title, src.Start.Format("2006-01-02 15:04"), fnv, legacy, key)

		if prev, ok := seen[fnv]; ok {
			collisions++
			fmt.Printf("  ⚠️  Identity collision with %q\n", prev)
		} else {
			seen[fnv] = src.Title
		}
	}

	fmt.Printf("\nTotal fnv64 collisions: %d\n", collisions)
}
