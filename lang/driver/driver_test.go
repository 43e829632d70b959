package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hdlc/hdlc/lang/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestCompileSingleFile(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.hdl", `block m { in a; in b; out q; q = a & b; }`)

	d := driver.New()
	irv, err := d.Compile(main)
	require.NoError(t, err)
	require.Len(t, irv.Blocks, 1)
	assert.Equal(t, "m", irv.Blocks[0].Name)
}

func TestCompileWithInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "and2.hdl", `block and2 { in a; in b; out q; q = a & b; }`)
	main := writeFile(t, dir, "main.hdl", `include "and2.hdl";
block top {
	block and2 u;
	in a, b;
	out q;

	u.a = a;
	u.b = b;
	q = u.q;
}`)

	d := driver.New()
	irv, err := d.Compile(main)
	require.NoError(t, err)
	require.Len(t, irv.Blocks, 2)
	assert.Equal(t, "and2", irv.Blocks[0].Name)
	assert.Equal(t, "top", irv.Blocks[1].Name)
}

func TestCompileDetectsIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.hdl", `include "b.hdl";
block a { in x; out y; y = x; }`)
	bPath := writeFile(t, dir, "b.hdl", `include "a.hdl";
block b { in x; out y; y = x; }`)

	d := driver.New()
	_, err := d.Compile(bPath)
	require.Error(t, err)
	var derr *driver.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, driver.CyclicInclude, derr.Kind)
}

func TestCompileReportsFileOpenError(t *testing.T) {
	d := driver.New()
	_, err := d.Compile("/no/such/file.hdl")
	require.Error(t, err)
	var derr *driver.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, driver.FileOpen, derr.Kind)
}
