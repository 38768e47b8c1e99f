package command

import (
	"github.com/rlacksdl104/dsmm-chat/internal/core"
	"github.com/rlacksdl104/dsmm-chat/internal/session"
	"github.com/rlacksdl104/dsmm-chat/internal/store"
)

// commandContext bundles what every subcommand needs: the client
// config, an open store, and the session manager over it.
type commandContext struct {
	Config   core.Config
	Store    *store.Store
	Sessions *session.Manager
}

func openContext() (*commandContext, error) {
	config, err := core.ReadConfig()
	if err != nil {
		return nil, err
	}
	dir, err := core.ConfigDir()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(config.DBPath)
	if err != nil {
		return nil, err
	}
	return &commandContext{
		Config:   config,
		Store:    st,
		Sessions: session.NewManager(st, dir),
	}, nil
}

func (c *commandContext) Close() {
	_ = c.Store.Close()
}
