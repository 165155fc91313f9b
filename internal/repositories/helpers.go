package repositories

import "fmt"

// sqlLimitOffset renders " LIMIT $n OFFSET $n+1" so pagination always
// travels as bound parameters, numbered after the filter's arguments.
func sqlLimitOffset(n int) string {
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n, n+1)
}
