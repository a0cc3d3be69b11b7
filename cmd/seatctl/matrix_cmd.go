package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/noah-isme/classroom-seating-api/internal/layout"
	"github.com/noah-isme/classroom-seating-api/internal/models"
)

func newMatrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix <layout.json|layout.yaml>",
		Short: "Print the matrix, numbered matrix and position map of a desk layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			desks, err := decodeLayout(args[0], data)
			if err != nil {
				return err
			}
			writeProjection(cmd.OutOrStdout(), layout.NewBoard(desks).Project())
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <matrix.txt>",
		Short: "Build desks from matrix text and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(layout.Parse(string(data)))
		},
	}
}

// decodeLayout accepts a desk array or an object carrying "desks" or "layout".
// YAML files are converted to JSON first so the desk json tags apply.
func decodeLayout(path string, data []byte) ([]models.Desk, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parsing yaml layout: %w", err)
		}
		data = converted
	}

	var desks []models.Desk
	if err := json.Unmarshal(data, &desks); err == nil {
		return desks, nil
	}

	var wrapped struct {
		Desks  []models.Desk `json:"desks"`
		Layout []models.Desk `json:"layout"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("layout must be a desk array or an object with desks: %w", err)
	}
	if wrapped.Desks != nil {
		return wrapped.Desks, nil
	}
	return wrapped.Layout, nil
}

func writeProjection(w io.Writer, p layout.Projection) {
	fmt.Fprintln(w, "Matrix:")
	fmt.Fprintln(w, p.Text)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Numbered:")
	fmt.Fprintln(w, p.NumberedText)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Positions:")
	ids := make([]string, 0, len(p.Numbers))
	for id := range p.Numbers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return p.Numbers[ids[i]] < p.Numbers[ids[j]] })
	for _, id := range ids {
		cell, _ := p.Positions.Cell(id)
		fmt.Fprintf(w, "L%d %s %s\n", p.Numbers[id], cell.Key(), id)
	}
}
