package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/classroom-seating-api/internal/repository"
	"github.com/noah-isme/classroom-seating-api/pkg/config"
	"github.com/noah-isme/classroom-seating-api/pkg/logger"
)

// env holds what commands need from the outside world so tests can swap it.
type env struct {
	openStore func(ctx context.Context) (*repository.OpenedStore, error)
}

func defaultEnv() env {
	return env{
		openStore: func(ctx context.Context) (*repository.OpenedStore, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, fmt.Errorf("loading config: %w", err)
			}
			logr, err := logger.New(cfg)
			if err != nil {
				return nil, fmt.Errorf("init logger: %w", err)
			}
			return repository.OpenClassroomStore(ctx, cfg, logr)
		},
	}
}

func newRootCmd(e env) *cobra.Command {
	root := &cobra.Command{
		Use:           "seatctl",
		Short:         "Classroom seating operator tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMatrixCmd(),
		newParseCmd(),
		newDictateCmd(),
		newClassroomsCmd(e),
	)
	return root
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
