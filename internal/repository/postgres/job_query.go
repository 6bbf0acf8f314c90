package postgres

import (
	"fmt"
	"strings"

	"job-catalog-api/internal/domain"
)

const jobColumns = `id, titulo, empresa, ubicacion, modalidad, tipo, salario_min, salario_max, descripcion, publicada_en`

// likeEscaper makes every character of a filter match itself under
// LIKE ... ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// listQuery holds the page query and the matching count query. Both share the
// same WHERE clause and placeholder numbering for the filter arguments.
// PastEnd is set when the page starts beyond any addressable row; Select is
// empty then and only the count runs.
type listQuery struct {
	Select     string
	SelectArgs []any
	Count      string
	CountArgs  []any
	PastEnd    bool
}

// buildListQuery ANDs the supplied predicates. The free-text filter is itself
// an OR of substring matches over titulo and empresa; case follows the column
// collation.
func buildListQuery(f domain.JobFilter) listQuery {
	var (
		conds []string
		args  []any
	)

	if f.Query != "" {
		args = append(args, "%"+likeEscaper.Replace(f.Query)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(titulo LIKE $%d ESCAPE '\' OR empresa LIKE $%d ESCAPE '\')`, n, n))
	}
	if f.WorkMode != "" {
		args = append(args, string(f.WorkMode))
		conds = append(conds, fmt.Sprintf("modalidad = $%d", len(args)))
	}
	if f.ContractType != "" {
		args = append(args, string(f.ContractType))
		conds = append(conds, fmt.Sprintf("tipo = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	count := "SELECT COUNT(*) FROM jobs" + where

	offset, ok := f.Offset()
	if !ok {
		return listQuery{Count: count, CountArgs: args, PastEnd: true}
	}

	selectArgs := make([]any, len(args), len(args)+2)
	copy(selectArgs, args)
	selectArgs = append(selectArgs, f.PageSize, offset)

	return listQuery{
		Select: fmt.Sprintf("SELECT %s FROM jobs%s ORDER BY id DESC LIMIT $%d OFFSET $%d",
			jobColumns, where, len(args)+1, len(args)+2),
		SelectArgs: selectArgs,
		Count:      count,
		CountArgs:  args,
	}
}
