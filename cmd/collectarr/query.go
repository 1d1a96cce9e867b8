package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/collectarr/internal/library"
	"github.com/vmunix/collectarr/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query [flags] <filter>",
	Short: "Check a filter query (local, no server needed)",
	Long: `Parse a filter query and show how it will be evaluated.

The scope decides which fields apply: movie filters cannot use
SeriesName, for example. The optional WHERE prefix is accepted.

Examples:
  collectarr query 'Played = false AND ProductionYear > 1989'
  collectarr query --scope series 'SeriesName LIKE "planet"'
  collectarr query --file filters.txt --json`,
	RunE: runQueryCmd,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().String("scope", "movies", "Catalog scope to check against (movies, episodes, series)")
	queryCmd.Flags().StringP("file", "f", "", "Read filters from file (one per line)")
}

func runQueryCmd(cmd *cobra.Command, args []string) error {
	scopeName, _ := cmd.Flags().GetString("scope")
	inputFile, _ := cmd.Flags().GetString("file")

	scope := library.ParseScope(scopeName)
	if scope == library.ScopeUnknown {
		return fmt.Errorf("unknown scope %q (use movies, episodes, or series)", scopeName)
	}

	var filters []string
	if inputFile != "" {
		lines, err := readFilterFile(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		filters = lines
	} else if len(args) > 0 {
		filters = []string{args[0]}
	} else {
		return fmt.Errorf("usage: collectarr query <filter> or collectarr query --file <filename>")
	}

	results := make([]QueryResult, 0, len(filters))
	bad := 0
	for _, raw := range filters {
		q, err := query.Compile(raw)
		if err != nil {
			bad++
		}
		results = append(results, QueryResult{Input: raw, Query: q, Err: err})
	}

	if jsonOutput {
		out := make([]QueryJSON, 0, len(results))
		for _, r := range results {
			out = append(out, r.toJSON(scope))
		}
		printJSON(out)
	} else {
		for i, r := range results {
			if i > 0 {
				fmt.Println()
			}
			fmt.Print(explainQuery(r, scope))
		}
	}

	if bad > 0 {
		return fmt.Errorf("%d of %d filters invalid", bad, len(filters))
	}
	return nil
}

// readFilterFile reads filters from a file, one per line. Blank lines and
// # comments are skipped.
func readFilterFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// QueryResult pairs a raw filter with its compiled form.
type QueryResult struct {
	Input string
	Query *query.Query
	Err   error
}

// QueryJSON is the JSON-friendly representation of a checked filter.
type QueryJSON struct {
	Input      string          `json:"input"`
	Valid      bool            `json:"valid"`
	Canonical  string          `json:"canonical,omitempty"`
	Conditions []ConditionJSON `json:"conditions,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// ConditionJSON is one clause of a checked filter.
type ConditionJSON struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Type     string `json:"type"`
	Value    string `json:"value"`
	InScope  bool   `json:"in_scope"`
}

func (r QueryResult) toJSON(scope library.Scope) QueryJSON {
	if r.Err != nil {
		return QueryJSON{Input: r.Input, Error: r.Err.Error()}
	}
	out := QueryJSON{
		Input:     r.Input,
		Valid:     true,
		Canonical: r.Query.String(),
	}
	for _, c := range r.Query.Conditions {
		out.Conditions = append(out.Conditions, ConditionJSON{
			Field:    c.Field.Name,
			Operator: c.Op.String(),
			Type:     c.Field.Type.String(),
			Value:    c.Value.String(),
			InScope:  fieldInScope(c.Field, scope),
		})
	}
	return out
}

// explainQuery renders a checked filter for humans.
func explainQuery(r QueryResult, scope library.Scope) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Filter: %s\n", r.Input)
	fmt.Fprintf(&b, "Scope:  %s\n", scope)

	if r.Err != nil {
		b.WriteString(renderQueryError(r.Input, r.Err))
		return b.String()
	}

	b.WriteString("\n")
	for _, c := range r.Query.Conditions {
		note := c.Field.Type.String()
		if !fieldInScope(c.Field, scope) {
			note += fmt.Sprintf(", not available for %s", scope)
		}
		fmt.Fprintf(&b, "  %-15s %-4s %-20s (%s)\n", c.Field.Name, c.Op, c.Value, note)
	}
	return b.String()
}

// renderQueryError formats a compile error, pointing at the offending
// position for syntax errors.
func renderQueryError(raw string, err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error:  %v\n", err)

	var syntaxErr *query.SyntaxError
	if errors.As(err, &syntaxErr) && syntaxErr.Pos >= 0 && syntaxErr.Pos <= len(raw) {
		b.WriteString("\n  " + raw + "\n")
		b.WriteString("  " + strings.Repeat(" ", syntaxErr.Pos) + "^\n")
	}
	return b.String()
}

func fieldInScope(f query.Field, scope library.Scope) bool {
	for _, s := range f.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
