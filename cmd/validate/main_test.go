package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSet = `{"id":"s1","instruction":"Pick one","example":{"type":"mc","text":["1+1=?"],"options":[{"label":"2","value":"2"},{"label":"3","value":"3"}],"correct":"2","explanation":"basic addition"},"questions":[]}`

const brokenSet = `
id: ""
instruction: Pick one
example:
  type: mc
  text: ["1+1=?"]
  options: [{label: "2", value: "2"}]
  correct: "5"
  explanation: ""
questions: []
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_Valid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "s1.json", validSet)
	var out bytes.Buffer

	code := run(context.Background(), []string{path}, &out)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), "ok   "+path+" (s1, 0 questions)")
}

func TestRun_FailFastReportsFirstViolation(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.yaml", brokenSet)
	var out bytes.Buffer

	code := run(context.Background(), []string{path}, &out)

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out.String(), "set id is empty")
	assert.NotContains(t, out.String(), "correct answer")
}

func TestRun_AllReportsEveryViolation(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.yaml", brokenSet)
	var out bytes.Buffer

	code := run(context.Background(), []string{"--all", path}, &out)

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out.String(), "set id is empty")
	assert.Contains(t, out.String(), `correct "5"`)
}

func TestRun_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", validSet)
	writeFile(t, dir, "b.yaml", brokenSet)
	writeFile(t, dir, "notes.txt", "ignored")
	var out bytes.Buffer

	code := run(context.Background(), []string{dir}, &out)

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out.String(), "ok   "+filepath.Join(dir, "a.json"))
	assert.Contains(t, out.String(), "FAIL "+filepath.Join(dir, "b.yaml"))
}

func TestRun_ShapeError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "partial.json", `{"id":"s1"}`)
	var out bytes.Buffer

	code := run(context.Background(), []string{path}, &out)

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out.String(), "FAIL "+path)
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, exitUsage, run(context.Background(), nil, &out))
	assert.Contains(t, out.String(), "usage: validate")

	out.Reset()
	assert.Equal(t, exitUsage, run(context.Background(), []string{"--bogus"}, &out))
}

func TestRun_ReportsEveryBrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"id":"s1"}`)
	writeFile(t, dir, "b.yaml", "id: [\n")
	writeFile(t, dir, "c.json", validSet)
	writeFile(t, dir, "d.yaml", brokenSet)
	named := writeFile(t, t.TempDir(), "notes.txt", "not a set")
	var out bytes.Buffer

	code := run(context.Background(), []string{"--all", dir, named}, &out)

	assert.Equal(t, exitInvalid, code)
	got := out.String()
	assert.Contains(t, got, "FAIL "+filepath.Join(dir, "a.json"))
	assert.Contains(t, got, "FAIL "+filepath.Join(dir, "b.yaml"))
	assert.Contains(t, got, "invalid YAML")
	assert.Contains(t, got, "ok   "+filepath.Join(dir, "c.json"))
	assert.Contains(t, got, "FAIL "+filepath.Join(dir, "d.yaml"))
	assert.Contains(t, got, "FAIL "+named)
	assert.Contains(t, got, "unsupported question set file extension")
}
