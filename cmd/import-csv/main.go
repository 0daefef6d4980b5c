package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"futureagent/internal/affiliate"
	"futureagent/internal/tools"
	"futureagent/pkg/database"
	"futureagent/pkg/models"
)

func main() {
	var (
		toolsIn = flag.String("tools", "data/tools.csv", "input CSV path for tools")
		linksIn = flag.String("links", "data/affiliate_links.csv", "input CSV path for affiliate links")
		schema  = flag.String("schema", "docs/schema.sql", "schema file to apply before importing")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.MigrateFrom(db, *schema); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	sb := dbCfg.Builder()
	toolsRepo := tools.NewRepo(db, sb)
	linksRepo := affiliate.NewRepo(db, sb)

	toolCount, err := importTools(ctx, toolsRepo, *toolsIn)
	if err != nil {
		log.Fatalf("import tools failed: %v", err)
	}

	linkCount, err := importLinks(ctx, linksRepo, *linksIn)
	if err != nil {
		log.Fatalf("import affiliate links failed: %v", err)
	}

	log.Printf("✅ imported %d tools and %d affiliate links", toolCount, linkCount)
}

func importTools(ctx context.Context, repo *tools.Repo, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(row) == 0 {
			continue
		}

		name := valueAt(header, row, "name")
		slug := valueAt(header, row, "slug")
		if name == "" || slug == "" {
			continue
		}

		t := models.Tool{
			ID:          valueAt(header, row, "id"),
			Name:        name,
			Slug:        slug,
			Category:    valueAt(header, row, "category"),
			WebsiteURL:  valueAt(header, row, "website_url"),
			LogoURL:     valueAt(header, row, "logo_url"),
			Tagline:     valueAt(header, row, "tagline"),
			Description: valueAt(header, row, "description"),
			Published:   parseBool(valueAt(header, row, "published")),
			Featured:    parseBool(valueAt(header, row, "featured")),
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}

		if raw := valueAt(header, row, "rating"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return count, fmt.Errorf("parse rating for %s: %w", slug, err)
			}
			t.Rating = &v
		}
		if raw := valueAt(header, row, "tags"); raw != "" {
			t.Tags = strings.Split(raw, "|")
		}

		if err := repo.Upsert(ctx, t); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func importLinks(ctx context.Context, repo *affiliate.Repo, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// links file is optional
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}

		slug := valueAt(header, row, "slug")
		toolID := valueAt(header, row, "tool_id")
		target := valueAt(header, row, "target_url")
		if slug == "" || toolID == "" || target == "" {
			continue
		}

		if err := repo.UpsertLink(ctx, models.AffiliateLink{
			Slug:      slug,
			ToolID:    toolID,
			TargetURL: target,
		}); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := make(map[string]int, len(row))
	for i, col := range row {
		header[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, col string) string {
	i, ok := header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
