package postgres

import (
	"fmt"
	"strings"

	"github.com/denbilyk22/Orders/internal/domain"
)

const clientColumns = "c.id, c.name, c.email, c.address, c.active, c.deactivation_date, c.created_at"

// searchTokens expands a free-text search into the candidate token set: the
// input itself plus every contiguous substring of 3 characters when the input
// is longer than 3. Windows are character-based, not byte-based, so multi-byte
// input never yields broken UTF-8. Duplicates are dropped, order is kept
// deterministic.
func searchTokens(search string) []string {
	tokens := []string{search}
	runes := []rune(search)
	if len(runes) <= 3 {
		return tokens
	}

	seen := map[string]struct{}{search: {}}
	for i := 0; i+3 <= len(runes); i++ {
		part := string(runes[i : i+3])
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		tokens = append(tokens, part)
	}
	return tokens
}

// buildClientListQuery translates a client filter into the listing and count
// statements. Each search token is substring-matched case-insensitively
// against name, email and address, all matches OR-combined. Profit bounds
// turn the query into a grouped aggregate over the ledger join, filtered
// with HAVING so a client with no entries is evaluated with sum 0; grouping
// also deduplicates the joined rows.
func buildClientListQuery(filter domain.ClientFilter, page domain.PageRequest) (listSQL, countSQL string, listArgs, countArgs []any) {
	var args []any
	var b strings.Builder
	b.WriteString("SELECT " + clientColumns + "\nFROM clients c")

	profitFiltered := filter.ProfitFrom != nil || filter.ProfitTo != nil
	if profitFiltered {
		b.WriteString("\nLEFT JOIN client_balance_changes b ON b.client_id = c.id")
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		var clauses []string
		for _, token := range searchTokens(search) {
			args = append(args, "%"+strings.ToLower(token)+"%")
			n := len(args)
			clauses = append(clauses, fmt.Sprintf(
				"LOWER(c.name) LIKE $%d OR LOWER(c.email) LIKE $%d OR LOWER(c.address) LIKE $%d", n, n, n))
		}
		b.WriteString("\nWHERE " + strings.Join(clauses, " OR "))
	}

	if profitFiltered {
		b.WriteString("\nGROUP BY c.id")
		var bounds []string
		if filter.ProfitFrom != nil {
			args = append(args, *filter.ProfitFrom)
			bounds = append(bounds, fmt.Sprintf("COALESCE(SUM(b.amount), 0) >= $%d", len(args)))
		}
		if filter.ProfitTo != nil {
			args = append(args, *filter.ProfitTo)
			bounds = append(bounds, fmt.Sprintf("COALESCE(SUM(b.amount), 0) <= $%d", len(args)))
		}
		b.WriteString("\nHAVING " + strings.Join(bounds, " AND "))
	}

	countSQL = "SELECT COUNT(*) FROM (\n" + b.String() + "\n) AS filtered"
	countArgs = args

	b.WriteString("\nORDER BY c.created_at DESC")
	b.WriteString(fmt.Sprintf("\nLIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	listArgs = append(append([]any{}, args...), page.Size, page.Offset())

	return b.String(), countSQL, listArgs, countArgs
}
