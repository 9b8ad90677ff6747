package columns

import (
	"fmt"
	"strings"
)

// InvalidColumnError reports every undeclared column name in a request.
type InvalidColumnError struct {
	Columns []string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("invalid columns: [%s]", strings.Join(e.Columns, ", "))
}
