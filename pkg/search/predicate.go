package search

import (
	"fmt"
	"strings"

	"github.com/dash-inc/dash-engine/pkg/adapters/datasource"
)

// Tokenize splits a search phrase on whitespace into ordered search terms.
// Terms are kept verbatim: case, punctuation, and accents are preserved,
// and duplicate terms are not removed. An all-whitespace phrase yields nil.
func Tokenize(phrase string) []string {
	return strings.Fields(phrase)
}

// likeEscaper escapes the LIKE wildcard characters so a term matches
// literally. Backslash doubles first so it cannot re-arm a wildcard.
// '[' is a wildcard under SQL Server's LIKE and harmless elsewhere.
var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
	`[`, `\[`,
)

// BuildPredicate builds a parameterized filter over the given string
// columns: each term must appear as a substring in at least one column
// (OR across columns), and all terms must be satisfied (AND across terms).
// Terms need not land in the same column.
//
// The clause uses $1..$n positional placeholders, one per term; adapters
// translate them to their native parameter syntax. Term values are bound
// as parameters wrapped in %...% with wildcards escaped, so user input is
// never spliced into the statement text.
func BuildPredicate(columns []datasource.ColumnDescriptor, terms []string, dialect datasource.Dialect) datasource.Predicate {
	groups := make([]string, 0, len(terms))
	params := make([]any, 0, len(terms))

	for i, term := range terms {
		placeholder := fmt.Sprintf("$%d", i+1)
		alternatives := make([]string, 0, len(columns))
		for _, col := range columns {
			alternatives = append(alternatives, fmt.Sprintf(`%s %s %s ESCAPE '\'`,
				dialect.QuoteIdentifier(col.Name), dialect.MatchOperator, placeholder))
		}
		groups = append(groups, "("+strings.Join(alternatives, " OR ")+")")
		params = append(params, "%"+likeEscaper.Replace(term)+"%")
	}

	return datasource.Predicate{
		Clause: strings.Join(groups, " AND "),
		Params: params,
	}
}
