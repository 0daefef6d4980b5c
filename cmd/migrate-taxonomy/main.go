package main

import (
	"context"
	"flag"
	"log"
	"time"

	"futureagent/internal/taxonomy"
	"futureagent/pkg/database"
	"futureagent/pkg/logger"
)

func main() {
	var (
		mappingPath = flag.String("mapping", "", "optional YAML file with extra legacy→pillar entries")
		schemaPath  = flag.String("schema", "docs/schema.sql", "schema file to apply before migrating")
		dryRun      = flag.Bool("dry-run", false, "resolve mappings without writing")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.MigrateFrom(db, *schemaPath); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	mapping := taxonomy.NewMapping()
	if *mappingPath != "" {
		if err := mapping.LoadOverrides(*mappingPath); err != nil {
			log.Fatalf("load mapping overrides: %v", err)
		}
	}

	if *dryRun {
		log.Println("dry run: mappings loaded, no writes performed")
		return
	}

	m := taxonomy.NewMigrator(db, dbCfg.Builder(), mapping, logger.New("taxonomy"))

	if err := m.InstallPillars(ctx); err != nil {
		log.Fatalf("install pillars failed: %v", err)
	}

	toolCount, err := m.MigrateTools(ctx)
	if err != nil {
		log.Fatalf("migrate tools failed after %d rows: %v", toolCount, err)
	}

	postCount, err := m.MigratePosts(ctx)
	if err != nil {
		log.Fatalf("migrate posts failed after %d rows: %v", postCount, err)
	}

	log.Printf("✅ migrated %d tools and %d posts onto %d pillars", toolCount, postCount, len(taxonomy.Pillars))
}
