package main

import (
	"fmt"

	"github.com/yurifrl/residentledger/pkg/config"
	"github.com/yurifrl/residentledger/pkg/store"
	"github.com/yurifrl/residentledger/pkg/store/memory"
	"github.com/yurifrl/residentledger/pkg/store/postgres"
)

func openStore(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "memory":
		return memory.New(), nil
	case "file":
		return memory.Open(cfg.Path)
	case "postgres":
		return postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
