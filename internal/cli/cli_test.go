package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/util"
)

const eventsCSV = `id,vehicle_id,vehicle,type,title,date,mileage,cost,vendor,notes,completion_score
e1,v1,Civic,oil,Oil change,2024-03-01,42000,49.99,Jiffy Lube,"synthetic, 5w-30",100
e2,v1,Civic,repair,Brake pads,2024-05-12,43100,320,Midas,,80
e3,v2,Tacoma,inspection,Annual inspection,2024-01-20,88000,35,State DMV,,100
e4,v2,Tacoma,repair,"Replace ""check engine"" sensor",2024-06-02,88900,210.5,Jiffy Lube,O2 sensor,50
`

type cliEnv struct {
	t      *testing.T
	dir    string
	config string
}

func newEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv("MOTOMIND_DB_URL", "")
	dir := t.TempDir()
	return &cliEnv{t: t, dir: dir, config: filepath.Join(dir, "config.toml")}
}

// file writes content under the env dir and returns its path.
func (e *cliEnv) file(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes a fresh command tree and returns stdout and stderr combined.
func (e *cliEnv) run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color", "--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := newEnv(t).run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "motomind version dev")
}

func TestEventsJSON(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)

	out, err := env.run("events", "--file", path, "--json", "--all", "--sort", "cost:desc")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 4)
	assert.Equal(t, "Brake pads", got[0]["title"])
	assert.Equal(t, 320.0, got[0]["cost"])
	assert.Equal(t, "Annual inspection", got[3]["title"])
	// id is not among the default columns
	assert.NotContains(t, got[0], "id")
}

func TestEventsFilterRaw(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)

	out, err := env.run("events", "--file", path, "--raw", "--filter", "vendor=jiffy", "--show", "id,title")
	require.NoError(t, err)
	assert.Equal(t, "e1\tOil change\ne4\tReplace \"check engine\" sensor\n", out)
}

func TestEventsVehicle(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)

	out, err := env.run("events", "--file", path, "--raw", "--vehicle", "tacoma", "--show", "id")
	require.NoError(t, err)
	assert.Equal(t, "e3\ne4\n", out)
}

func TestEventsNoSource(t *testing.T) {
	_, err := newEnv(t).run("events", "--json")
	require.ErrorIs(t, err, util.ErrNoDataSource)
}

func TestEventsUnknownSortColumn(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)

	_, err := env.run("events", "--file", path, "--json", "--sort", "odometer")
	require.ErrorIs(t, err, datatable.ErrUnknownColumn)

	var motoErr *util.MotoError
	require.ErrorAs(t, err, &motoErr)
	assert.Contains(t, strings.Join(motoErr.Causes, " "), "mileage")
}

func TestEventsBadFlags(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)

	tests := []struct {
		name string
		args []string
	}{
		{"filter without query", []string{"--filter", "vendor"}},
		{"sort direction", []string{"--sort", "cost:sideways"}},
		{"page", []string{"--page", "0"}},
		{"mobile view", []string{"--mobile-view", "tablet"}},
		{"json and raw", []string{"--json", "--raw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(append([]string{"events", "--file", path}, tt.args...)...)
			require.ErrorIs(t, err, util.ErrInvalidFlag)
		})
	}
}

func TestViewPaged(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)

	out, err := env.run("view", path, "--no-pager", "--page-size", "2", "--page", "2", "--show", "id,vehicle")
	require.NoError(t, err)
	assert.Contains(t, out, "e3")
	assert.Contains(t, out, "e4")
	assert.NotContains(t, out, "e1")
	assert.Contains(t, out, "rows 3-4 of 4 (page 2/2)")
}

func TestViewPageClamped(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)

	out, err := env.run("view", path, "--raw", "--page-size", "2", "--page", "9", "--show", "id")
	require.NoError(t, err)
	assert.Equal(t, "e3\ne4\n", out)
}

func TestViewDuplicateKey(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)

	_, err := env.run("view", path, "--key", "vehicle_id", "--raw")
	require.ErrorIs(t, err, datatable.ErrDuplicateRowKey)
}

func TestViewColumnSpec(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)
	spec := env.file("columns.yaml", `key_column: id
columns:
  - key: id
  - key: spent
    header: Spent
    field: cost
    format: currency
    align: right
`)

	out, err := env.run("view", path, "--columns", spec, "--no-pager", "--sort", "spent:desc", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Spent")
	assert.Contains(t, out, "$320.00")
	assert.Less(t, strings.Index(out, "$320.00"), strings.Index(out, "$35.00"))
}

func TestExportFile(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)
	outPath := filepath.Join(env.dir, "out", "repairs.csv")

	msg, err := env.run("export", path, "-o", outPath, "--filter", "type=repair", "--sort", "cost", "--show", "id,title,cost")
	require.NoError(t, err)
	assert.Contains(t, msg, "Exported 2 rows")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, `"id","title","cost"
"e4","Replace ""check engine"" sensor","210.5"
"e2","Brake pads","320"
`, string(data))
}

func TestExportStdout(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)

	out, err := env.run("export", path, "--filter", "vendor=dmv", "--show", "id,vendor")
	require.NoError(t, err)
	assert.Equal(t, "\"id\",\"vendor\"\n\"e3\",\"State DMV\"\n", out)
}

func TestExportIgnoresPaging(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)
	require.NoError(t, os.WriteFile(env.config, []byte("[table]\npage_size = 1\n"), 0o644))

	out, err := env.run("export", path, "--show", "id")
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestDiff(t *testing.T) {
	env := newEnv(t)
	a := env.file("a.csv", "\"id\",\"cost\"\n\"e1\",\"10\"\n\"e2\",\"20\"\n")
	b := env.file("b.csv", "\"id\",\"cost\"\n\"e1\",\"10\"\n\"e2\",\"25\"\n\"e3\",\"5\"\n")

	out, err := env.run("diff", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "-\"e2\",\"20\"")
	assert.Contains(t, out, "+\"e2\",\"25\"")
	assert.Contains(t, out, "+\"e3\",\"5\"")
	assert.Contains(t, out, "2 rows added, 1 rows removed")

	out, err = env.run("diff", a, a, "--exit-code")
	require.NoError(t, err)
	assert.Contains(t, out, "identical")

	_, err = env.run("diff", a, b, "--stat", "--exit-code")
	require.Error(t, err)
}

func TestConfigSetGet(t *testing.T) {
	env := newEnv(t)

	_, err := env.run("config", "table.page_size", "50")
	require.NoError(t, err)

	out, err := env.run("config", "table.page_size")
	require.NoError(t, err)
	assert.Equal(t, "50\n", out)

	out, err = env.run("config", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "table.page_size=50\n")
	assert.Contains(t, out, "log.level=warn\n")

	_, err = env.run("config", "table.mobile_view", "sideways")
	require.Error(t, err)

	_, err = env.run("config", "nope.key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown config key")
}

func TestConfigPageSizeDefault(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)
	_, err := env.run("config", "table.page_size", "3")
	require.NoError(t, err)

	out, err := env.run("view", path, "--raw", "--show", "id")
	require.NoError(t, err)
	assert.Equal(t, "e1\ne2\ne3\n", out)
}

func TestInvalidConfigFile(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, os.WriteFile(env.config, []byte("[table]\npage_size = 0\n"), 0o644))

	_, err := env.run("version")
	var motoErr *util.MotoError
	require.ErrorAs(t, err, &motoErr)
	assert.Equal(t, "Invalid config file", motoErr.Title)
}

func TestInit(t *testing.T) {
	env := newEnv(t)

	out, err := env.run("init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default config")
	assert.FileExists(t, env.config)

	out, err = env.run("init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestImportDryRun(t *testing.T) {
	env := newEnv(t)
	path := env.file("events.csv", eventsCSV)

	out, err := env.run("import", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would import 4 events, $615.49 total")

	_, err = env.run("import", path)
	require.ErrorIs(t, err, util.ErrNoDataSource)
}

func TestParseSort(t *testing.T) {
	s, err := parseSort("cost:DESC")
	require.NoError(t, err)
	assert.Equal(t, datatable.SortState{Key: "cost", Direction: datatable.SortDescending}, s)

	s, err = parseSort("date")
	require.NoError(t, err)
	assert.Equal(t, datatable.SortAscending, s.Direction)

	_, err = parseSort(":desc")
	require.Error(t, err)
}

func TestParseFilters(t *testing.T) {
	f, err := parseFilters([]string{"vendor=jiffy", "title=a=b", "vendor=midas"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"vendor": "midas", "title": "a=b"}, f)
}
