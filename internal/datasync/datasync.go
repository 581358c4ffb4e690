// Package datasync provides import/export orchestration between YAML files and the item store.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/retention/internal/item"
	"github.com/at-ishikawa/retention/internal/retention"
	"github.com/at-ishikawa/retention/internal/srs"
)

// Seed is one item to create on import.
type Seed struct {
	OwnerID    string `yaml:"owner_id"`
	ContentRef string `yaml:"content_ref"`
	ItemID     string `yaml:"item_id,omitempty"`
}

// ImportResult tracks counts for an import.
type ImportResult struct {
	ItemsNew     int
	ItemsSkipped int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

// ItemSeeder creates and looks up items. *retention.Manager implements it.
type ItemSeeder interface {
	AddItem(ctx context.Context, req retention.SeedRequest) (*srs.Item, error)
	GetItem(ctx context.Context, itemID string) (*srs.Item, error)
}

// Importer seeds items read from YAML.
type Importer struct {
	seeder ItemSeeder
	writer io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(seeder ItemSeeder, writer io.Writer) *Importer {
	return &Importer{
		seeder: seeder,
		writer: writer,
	}
}

// ImportSeeds creates every seed whose item does not exist yet.
// Seeds with an existing item id are skipped, not updated.
func (imp *Importer) ImportSeeds(ctx context.Context, seeds []Seed, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult
	for _, seed := range seeds {
		if seed.ItemID != "" {
			exists, err := imp.exists(ctx, seed.ItemID)
			if err != nil {
				return nil, err
			}
			if exists {
				fmt.Fprintf(imp.writer, "  [SKIP]  %s (%s)\n", seed.ItemID, seed.OwnerID)
				result.ItemsSkipped++
				continue
			}
		}

		itemID := seed.ItemID
		if !opts.DryRun {
			created, err := imp.seeder.AddItem(ctx, retention.SeedRequest{
				OwnerID:    seed.OwnerID,
				ContentRef: seed.ContentRef,
				ItemID:     seed.ItemID,
			})
			if errors.Is(err, srs.ErrItemExists) {
				// Created by someone else since the lookup
				fmt.Fprintf(imp.writer, "  [SKIP]  %s (%s)\n", seed.ItemID, seed.OwnerID)
				result.ItemsSkipped++
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("AddItem(%s) > %w", seed.ItemID, err)
			}
			itemID = created.ID
		}
		fmt.Fprintf(imp.writer, "  [NEW]  %s (%s) %q\n", itemID, seed.OwnerID, seed.ContentRef)
		result.ItemsNew++
	}
	return &result, nil
}

func (imp *Importer) exists(ctx context.Context, itemID string) (bool, error) {
	_, err := imp.seeder.GetItem(ctx, itemID)
	if errors.Is(err, srs.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("GetItem(%s) > %w", itemID, err)
	}
	return true, nil
}

// Exporter reads an owner's items from the store.
type Exporter struct {
	repo item.ItemRepository
}

// NewExporter creates a new Exporter.
func NewExporter(repo item.ItemRepository) *Exporter {
	return &Exporter{repo: repo}
}

// Export returns every item of ownerID, ordered by item id.
func (e *Exporter) Export(ctx context.Context, ownerID string) ([]srs.Item, error) {
	items, err := e.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListByOwner(%s) > %w", ownerID, err)
	}
	return items, nil
}
