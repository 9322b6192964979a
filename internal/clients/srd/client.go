// Package srd is the client for the D&D 5e SRD API, used to browse
// published monsters when building an encounter roster.
package srd

//go:generate mockgen -destination=mock/mock_client.go -package=srdmock github.com/wyrmforge/combat-tracker/internal/clients/srd Client

import (
	"context"
	"net/http"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/wyrmforge/combat-tracker/internal/errors"
)

// MonsterRef is a reference to a published SRD monster.
type MonsterRef struct {
	ID   string
	Name string
}

// Client defines the interface for SRD catalog interactions
type Client interface {
	// ListMonsters returns references to every monster in the SRD catalog
	ListMonsters(ctx context.Context) ([]*MonsterRef, error)
}

// monsterLister is the slice of the upstream API the client actually uses.
type monsterLister interface {
	ListMonsters() ([]*entities.ReferenceItem, error)
}

// Config contains configuration options for the SRD client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

type client struct {
	dnd5eClient monsterLister
}

// New creates a new SRD client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create D&D 5e API client")
	}

	// Monster references rarely change; cache them aggressively.
	cachedClient := dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

	return &client{
		dnd5eClient: cachedClient,
	}, nil
}

func (c *client) ListMonsters(_ context.Context) ([]*MonsterRef, error) {
	refs, err := c.dnd5eClient.ListMonsters()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list monsters")
	}

	monsters := make([]*MonsterRef, 0, len(refs))
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		monsters = append(monsters, &MonsterRef{
			ID:   ref.Key,
			Name: ref.Name,
		})
	}

	return monsters, nil
}
