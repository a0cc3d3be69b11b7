package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/classroom-seating-api/internal/service"
)

func newClassroomsCmd(e env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classrooms",
		Short: "Export or import saved classrooms in the configured store",
	}

	cmd.AddCommand(
		newClassroomsExportCmd(e),
		newClassroomsImportCmd(e),
	)
	return cmd
}

func newClassroomsExportCmd(e env) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every saved classroom as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			classrooms, closeStore, err := openClassrooms(cmd, e)
			if err != nil {
				return err
			}
			defer closeStore() //nolint:errcheck

			payload, err := classrooms.Export(cmd.Context())
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(append(payload, '\n'))
				return err
			}
			if err := os.WriteFile(outPath, payload, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newClassroomsImportCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace saved classrooms with an exported JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			classrooms, closeStore, err := openClassrooms(cmd, e)
			if err != nil {
				return err
			}
			defer closeStore() //nolint:errcheck

			count, err := classrooms.Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d classrooms\n", count)
			return nil
		},
	}
}

func openClassrooms(cmd *cobra.Command, e env) (*service.ClassroomService, func() error, error) {
	opened, err := e.openStore(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewClassroomService(opened.Store, nil, nil, nil, service.ClassroomServiceConfig{Backend: opened.Backend})
	return svc, opened.Close, nil
}
