package postgres

import (
	"fmt"
	"strings"

	"github.com/denbilyk22/Orders/internal/domain"
)

// buildOrderListQuery translates an order filter into the listing and count
// statements. Present ids are matched exactly and AND-combined; the listing
// joins both clients so each row materializes fully.
func buildOrderListQuery(filter domain.OrderFilter, page domain.PageRequest) (listSQL, countSQL string, listArgs, countArgs []any) {
	var args []any
	var clauses []string

	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		clauses = append(clauses, fmt.Sprintf("o.supplier_id = $%d", len(args)))
	}
	if filter.ConsumerID != nil {
		args = append(args, *filter.ConsumerID)
		clauses = append(clauses, fmt.Sprintf("o.consumer_id = $%d", len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = "\nWHERE " + strings.Join(clauses, " AND ")
	}

	listSQL = "SELECT " + orderDetailColumns + `
FROM orders o
JOIN clients s ON s.id = o.supplier_id
JOIN clients cn ON cn.id = o.consumer_id` + where +
		"\nORDER BY o.created_at DESC" +
		fmt.Sprintf("\nLIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	countSQL = "SELECT COUNT(*) FROM orders o" + where
	countArgs = args
	listArgs = append(append([]any{}, args...), page.Size, page.Offset())

	return listSQL, countSQL, listArgs, countArgs
}
