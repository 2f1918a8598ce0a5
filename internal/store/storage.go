// Package store persists game sessions. Two backends implement the same
// contract: a local JSON file and PostgreSQL.
package store

import (
	"context"
	"errors"

	"github.com/rovenko/dungeoncrawl/internal/model"
)

// ErrNoSave is returned by Load when no saved session exists.
var ErrNoSave = errors.New("no saved game")

// Storage persists and restores a full session state, including the
// level-start snapshot. Round trips must be lossless for every entity.
type Storage interface {
	Save(ctx context.Context, state *model.SaveState) error
	Load(ctx context.Context) (*model.SaveState, error)
	Close() error
}
