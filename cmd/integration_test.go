package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/uniqcols/internal/uniq"
)

const animalsCSV = "ID,Name,Animal,Veg,Secret,Same\n" +
	"1,Alice,Cat,Kale,s1,x\n" +
	"2,Alice,Dog,Leek,s2,x\n" +
	"3,Bob,Cat,Leek,s3,x\n"

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	for _, name := range []string{"group", "separator", "delimiter", "output", "save", "progress-every", "lazy-quotes"} {
		if fl := scanCmd.Flags().Lookup(name); fl != nil {
			fl.Changed = false
		}
	}
	if fl := columnsCmd.Flags().Lookup("delimiter"); fl != nil {
		fl.Changed = false
	}
	// Reset bound variables; the group array appends to whatever the variable holds.
	scanGroups = nil
	scanSeparator = ""
	scanDelimiter = ""
	scanOutputPath = ""
	scanSave = false
	scanLazyQuotes = false
	scanProgressEvery = 0
	colDelimiter = ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper that fails the test when the command fails.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestCLI_ScanAnimals(t *testing.T) {
	home := isolateHome(t)
	p := writeCSV(t, home, "animals.csv", animalsCSV)

	out := runCmd(t, "scan", p, "--group", "2,3", "-g", "2,6", "--separator=-")
	want := "" +
		"1  1  ID\n" +
		"5  2  Secret\n" +
		"\n" +
		"Unique combination: 2-3\n" +
		"\n" +
		"2  5  Name\n" +
		"3  3  Animal\n"
	if out != want {
		t.Fatalf("scan output mismatch\n got:\n%s\nwant:\n%s", out, want)
	}

	// Same file, no groups: no combination notice at all.
	out = runCmd(t, "scan", p)
	if strings.Contains(out, "combination") {
		t.Fatalf("unexpected combination text without groups:\n%s", out)
	}
}

func TestCLI_ConfigErrorsBeforeInputIsRead(t *testing.T) {
	home := isolateHome(t)
	missing := filepath.Join(home, "does-not-exist.csv")

	cases := []struct {
		name string
		args []string
		want error
	}{
		{"group without separator", []string{"scan", missing, "--group", "2,3"}, uniq.ErrGroupsWithoutSeparator},
		{"separator without group", []string{"scan", missing, "--separator", "-"}, uniq.ErrSeparatorWithoutGroups},
		{"single column group", []string{"scan", missing, "--group", "2", "--separator", "-"}, uniq.ErrGroupTooSmall},
		{"numeral in separator", []string{"scan", missing, "--group", "2,3", "--separator", "x9"}, uniq.ErrSeparatorHasDigit},
		{"unparsable group", []string{"scan", missing, "--group", "two,three", "--separator", "-"}, uniq.ErrGroupSyntax},
		{"groups joining to one key", []string{"scan", missing, "-g", "1,23", "-g", "12,3", "--separator="}, uniq.ErrAmbiguousGroupKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if errors.Is(err, os.ErrNotExist) {
				t.Fatalf("input was opened before configuration was validated")
			}
		})
	}

	if _, err := execute(t, "scan"); err == nil {
		t.Fatalf("expected error without input file argument")
	}
	if _, err := execute(t, "scan", missing); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestCLI_EmptySeparatorCollision(t *testing.T) {
	home := isolateHome(t)
	p := writeCSV(t, home, "pairs.csv", "A,B\nab,c\na,bc\n")

	out := runCmd(t, "scan", p, "--group", "1,2", "--separator=")
	want := "1  2  A\n2  2  B\n\nNo combination of columns is unique.\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestCLI_ShortRowFails(t *testing.T) {
	home := isolateHome(t)
	p := writeCSV(t, home, "short.csv", "a,b,c\n1,2,3\n4,5\n")
	_, err := execute(t, "scan", p)
	var ie *uniq.IndexError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *uniq.IndexError", err)
	}
}

func TestCLI_OutputSaveAndHistory(t *testing.T) {
	home := isolateHome(t)
	p := writeCSV(t, home, "animals.csv", animalsCSV)
	reportPath := filepath.Join(home, "report.txt")

	out := runCmd(t, "scan", p, "-g", "2,3", "-s", "/", "--output", reportPath, "--save")
	if out != "" {
		t.Fatalf("stdout should be empty with --output, got %q", out)
	}
	body, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(body), "Unique combination: 2/3") {
		t.Fatalf("report missing group:\n%s", body)
	}

	list := runCmd(t, "history", "list")
	if !strings.Contains(list, "animals.csv") || !strings.Contains(list, "groups=2/3") {
		t.Fatalf("history list:\n%s", list)
	}
	id := strings.Fields(strings.TrimPrefix(list, "- "))[0]
	shown := runCmd(t, "history", "show", id[:8])
	if shown != string(body) {
		t.Fatalf("history show differs from written report:\n%s", shown)
	}
}

func TestCLI_ColumnsAndConfig(t *testing.T) {
	home := isolateHome(t)
	p := writeCSV(t, home, "semi.txt", "ID;Name;Animal\n1;a;b\n")

	out := runCmd(t, "columns", p, "--delimiter", ";")
	if out != "1) ID\n2) Name\n3) Animal\n" {
		t.Fatalf("columns output = %q", out)
	}

	runCmd(t, "config", "set", "delimiter", ";")
	shown := runCmd(t, "config", "show")
	if !strings.Contains(shown, "delimiter: ;") {
		t.Fatalf("config show:\n%s", shown)
	}
	// The configured delimiter now applies without the flag.
	out = runCmd(t, "scan", p)
	if !strings.HasPrefix(out, "1  1  ID\n") {
		t.Fatalf("scan with configured delimiter:\n%s", out)
	}

	if _, err := execute(t, "config", "set", "log_level", "loud"); err == nil {
		t.Fatalf("expected invalid log_level error")
	}
}
