package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-seating-api/internal/models"
	"github.com/noah-isme/classroom-seating-api/internal/repository"
	"github.com/noah-isme/classroom-seating-api/pkg/config"
)

func execute(t *testing.T, e env, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(e)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fileStoreEnv(t *testing.T) env {
	dir := t.TempDir()
	return env{openStore: func(ctx context.Context) (*repository.OpenedStore, error) {
		cfg := &config.Config{Store: config.StoreConfig{Backend: config.StoreBackendFile, StorageDir: dir}}
		return repository.OpenClassroomStore(ctx, cfg, nil)
	}}
}

func TestMatrixCommandReadsJSONAndYAML(t *testing.T) {
	jsonLayout := writeFile(t, "layout.json", `{"desks":[
		{"id":"a","typeCode":"11","x":0,"y":0},
		{"id":"b","typeCode":"1","x":0,"y":6},
		{"id":"c","typeCode":"11","x":10,"y":6}
	]}`)
	yamlLayout := writeFile(t, "layout.yaml", `
- id: a
  typeCode: "11"
  x: 0
  y: 0
- id: b
  typeCode: "1"
  x: 0
  y: 6
- id: c
  typeCode: "11"
  x: 10
  y: 6
`)

	for _, path := range []string{jsonLayout, yamlLayout} {
		out, err := execute(t, env{}, "", "matrix", path)
		require.NoError(t, err, path)
		assert.Contains(t, out, "Matrix:\n11,--\n1,11\n")
		assert.Contains(t, out, "Numbered:\n L3, --\n L1, L2\n")
		assert.Contains(t, out, "L1 1-0 b\nL2 1-1 c\nL3 0-0 a\n")
	}
}

func TestMatrixCommandRejectsGarbage(t *testing.T) {
	path := writeFile(t, "layout.json", `"nope"`)

	_, err := execute(t, env{}, "", "matrix", path)

	require.Error(t, err)
}

func TestParseCommandPrintsDesks(t *testing.T) {
	path := writeFile(t, "matrix.txt", "11,--\n1,11\n")

	out, err := execute(t, env{}, "", "parse", path)
	require.NoError(t, err)

	var desks []models.Desk
	require.NoError(t, json.Unmarshal([]byte(out), &desks))
	require.Len(t, desks, 3)
	assert.Equal(t, "11", desks[0].TypeCode)
	assert.Equal(t, 4, desks[2].Y)
}

func TestDictateCommandUsesLatestTranscript(t *testing.T) {
	base := writeFile(t, "base.txt", "Petr\n")

	out, err := execute(t, env{}, "Anna\nAnna Nová\n", "dictate", "--base", base)
	require.NoError(t, err)
	assert.Equal(t, "Petr\nAnna Nová\n", out)

	out, err = execute(t, env{}, "Jana\nJana Malá\n", "dictate", "--follow")
	require.NoError(t, err)
	assert.Equal(t, "Jana\nJana Malá\n", out)
}

func TestClassroomsExportImport(t *testing.T) {
	e := fileStoreEnv(t)
	doc := writeFile(t, "tridy.json", `[{"name":"7.A","layout":[{"id":"d1","typeCode":"1","x":0,"y":0,"width":2,"height":2}]}]`)

	out, err := execute(t, e, "", "classrooms", "import", doc)
	require.NoError(t, err)
	assert.Equal(t, "imported 1 classrooms\n", out)

	out, err = execute(t, e, "", "classrooms", "export")
	require.NoError(t, err)
	var exported []models.SavedClassroom
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "7.A", exported[0].Name)

	target := filepath.Join(t.TempDir(), "out.json")
	_, err = execute(t, e, "", "classrooms", "export", "--out", target)
	require.NoError(t, err)
	assert.FileExists(t, target)

	bad := writeFile(t, "bad.json", `[{"name":"x"}]`)
	_, err = execute(t, e, "", "classrooms", "import", bad)
	require.Error(t, err)
}
