package sqlbind

import (
	"fmt"
	"strings"
)

// renderCondition walks one node of the condition tree, asking the shared
// Binder for placeholders as it goes. The switch is the single exhaustive
// dispatch point over the closed variant set; adding a variant means adding
// a case here.
func renderCondition(c Condition, b *Binder, sb *strings.Builder) error {
	switch n := c.(type) {
	case comparison:
		sb.WriteString(n.col.Qualified())
		sb.WriteString(" ")
		sb.WriteString(string(n.op))
		sb.WriteString(" ")
		sb.WriteString(b.Bind(n.value, n.col.ColumnName()))

	case rangeCond:
		sb.WriteString(n.col.Qualified())
		if n.not {
			sb.WriteString(" NOT BETWEEN ")
		} else {
			sb.WriteString(" BETWEEN ")
		}
		sb.WriteString(b.Bind(n.lo, n.col.ColumnName()))
		sb.WriteString(" AND ")
		sb.WriteString(b.Bind(n.hi, n.col.ColumnName()))

	case patternCond:
		sb.WriteString(n.col.Qualified())
		if n.not {
			sb.WriteString(" NOT LIKE ")
		} else {
			sb.WriteString(" LIKE ")
		}
		sb.WriteString(b.Bind(n.value, n.col.ColumnName()))

	case membership:
		sb.WriteString(n.col.Qualified())
		if n.not {
			sb.WriteString(" NOT IN (")
		} else {
			sb.WriteString(" IN (")
		}
		for i, v := range n.values {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(b.Bind(v, n.col.ColumnName()))
		}
		sb.WriteString(")")

	case nullCheck:
		sb.WriteString(n.col.Qualified())
		if n.not {
			sb.WriteString(" IS NOT NULL")
		} else {
			sb.WriteString(" IS NULL")
		}

	case columnCompare:
		sb.WriteString(n.left.Qualified())
		sb.WriteString(" ")
		sb.WriteString(string(n.op))
		sb.WriteString(" ")
		sb.WriteString(n.right.Qualified())

	case subqueryCond:
		if n.col != nil {
			sb.WriteString(n.col.Qualified())
			sb.WriteString(" ")
		}
		sb.WriteString(n.verb)
		sb.WriteString(" (")
		if err := n.stmt.renderInto(b, sb); err != nil {
			return err
		}
		sb.WriteString(")")

	case rawCond:
		text := n.text
		for _, v := range n.values {
			text = strings.Replace(text, "?", b.Bind(v, "p"), 1)
		}
		sb.WriteString(text)

	case group:
		sb.WriteString("(")
		for i, item := range n.items {
			if i > 0 {
				sb.WriteString(" ")
				sb.WriteString(string(n.logic))
				sb.WriteString(" ")
			}
			if err := renderCondition(item, b, sb); err != nil {
				return err
			}
		}
		sb.WriteString(")")

	case *CaseExpr:
		return renderCase(n, b, sb)

	case *WindowExpr:
		return renderWindow(n, b, sb)

	default:
		return fmt.Errorf("sqlbind: unknown condition type %T", c)
	}
	return nil
}

// renderConditions joins a pre-filtered condition list with AND, without the
// extra parentheses a composite would add. WHERE and HAVING accumulation use
// this so that the common case reads flat.
func renderConditions(cs []Condition, b *Binder, sb *strings.Builder) error {
	for i, c := range cs {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		if err := renderCondition(c, b, sb); err != nil {
			return err
		}
	}
	return nil
}

func renderCase(ce *CaseExpr, b *Binder, sb *strings.Builder) error {
	if len(ce.whens) == 0 {
		return fmt.Errorf("sqlbind: CASE requires at least one WHEN branch")
	}
	sb.WriteString("CASE")
	hint := "case"
	if ce.operand != nil {
		sb.WriteString(" ")
		sb.WriteString(ce.operand.Qualified())
		hint = ce.operand.ColumnName()
	}
	for _, w := range ce.whens {
		sb.WriteString(" WHEN ")
		if ce.operand != nil {
			sb.WriteString(b.Bind(w.operand, hint))
		} else if err := renderCondition(w.cond, b, sb); err != nil {
			return err
		}
		sb.WriteString(" THEN ")
		if err := renderCaseResult(w.result, hint, b, sb); err != nil {
			return err
		}
	}
	if ce.elseRes != nil {
		sb.WriteString(" ELSE ")
		if err := renderCaseResult(*ce.elseRes, hint, b, sb); err != nil {
			return err
		}
	}
	sb.WriteString(" END")
	return nil
}

func renderCaseResult(res caseResult, hint string, b *Binder, sb *strings.Builder) error {
	if res.isCol {
		sb.WriteString(res.col.Qualified())
		return nil
	}
	sb.WriteString(b.Bind(res.value, hint))
	return nil
}

func renderWindow(w *WindowExpr, b *Binder, sb *strings.Builder) error {
	sb.WriteString(w.fn)
	sb.WriteString("(")
	for i, arg := range w.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if col, ok := arg.(ColumnRef); ok {
			sb.WriteString(col.Qualified())
		} else {
			sb.WriteString(b.Bind(arg, strings.ToLower(w.fn)))
		}
	}
	sb.WriteString(") OVER (")
	var parts []string
	if len(w.partition) > 0 {
		cols := make([]string, len(w.partition))
		for i, c := range w.partition {
			cols[i] = c.Qualified()
		}
		parts = append(parts, "PARTITION BY "+strings.Join(cols, ", "))
	}
	if len(w.ordering) > 0 {
		terms := make([]string, len(w.ordering))
		for i, o := range w.ordering {
			terms[i] = o.col.Qualified() + " " + string(o.dir)
		}
		parts = append(parts, "ORDER BY "+strings.Join(terms, ", "))
	}
	if w.frame != "" {
		parts = append(parts, w.frame)
	}
	sb.WriteString(strings.Join(parts, " "))
	sb.WriteString(")")
	return nil
}
