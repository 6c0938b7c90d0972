package filter

import (
	"fmt"
	"strings"
)

// Field names a card attribute a predicate tests. Linked targets the same
// attribute on the card's other face.
type Field struct {
	Name   string
	Linked bool
}

// Ref returns the dotted-path form used by the textual predicate grammar.
func (f Field) Ref() string {
	if f.Linked {
		return "linked_card." + f.Name
	}
	return f.Name
}

func linked(f Field) Field {
	return Field{Name: f.Name, Linked: true}
}

// Expr is one node of the compiled query. A compiled filter is a list of
// Exprs the caller combines with AND; each serializer renders the same tree
// for its own backend.
type Expr interface {
	isExpr()
}

// Equals tests an attribute for exact equality. Value is a string, int or
// bool.
type Equals struct {
	Field Field
	Value any
}

// Cmp is a one-sided numeric comparison. Op is one of ">", ">=", "<", "<=".
type Cmp struct {
	Field Field
	Op    string
	Value int
}

// Range is an inclusive numeric range test.
type Range struct {
	Field Field
	Min   int
	Max   int
}

// Contains is a substring containment test over a text attribute.
type Contains struct {
	Field           Field
	Value           string
	CaseInsensitive bool
}

// Not negates its operand.
type Not struct {
	Expr Expr
}

// And is the conjunction of its operands.
type And struct {
	Exprs []Expr
}

// Or is the disjunction of its operands.
type Or struct {
	Exprs []Expr
}

func (Equals) isExpr()   {}
func (Cmp) isExpr()      {}
func (Range) isExpr()    {}
func (Contains) isExpr() {}
func (Not) isExpr()      {}
func (And) isExpr()      {}
func (Or) isExpr()       {}

// Serialize renders compiled clauses in the textual predicate grammar:
// equality, inclusive ranges, CONTAINS / CONTAINS[c], !(...) negation and
// parenthesized and/or composition. One string per clause; the caller joins
// clauses with AND.
func Serialize(exprs []Expr) []string {
	clauses := make([]string, 0, len(exprs))
	for _, e := range exprs {
		clause := serialize(e)
		if !strings.HasPrefix(clause, "(") && !strings.HasPrefix(clause, "!") {
			clause = "(" + clause + ")"
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

func serialize(e Expr) string {
	switch v := e.(type) {
	case Equals:
		return fmt.Sprintf("%s == %s", v.Field.Ref(), literal(v.Value))
	case Cmp:
		return fmt.Sprintf("%s %s %d", v.Field.Ref(), v.Op, v.Value)
	case Range:
		return fmt.Sprintf("(%s >= %d and %s <= %d)", v.Field.Ref(), v.Min, v.Field.Ref(), v.Max)
	case Contains:
		op := "CONTAINS"
		if v.CaseInsensitive {
			op = "CONTAINS[c]"
		}
		return fmt.Sprintf("%s %s '%s'", v.Field.Ref(), op, v.Value)
	case Not:
		return "!(" + serialize(v.Expr) + ")"
	case And:
		return "(" + joinExprs(v.Exprs, " and ") + ")"
	case Or:
		return "(" + joinExprs(v.Exprs, " or ") + ")"
	default:
		panic(fmt.Sprintf("filter: unknown expr %T", e))
	}
}

func joinExprs(exprs []Expr, sep string) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, serialize(e))
	}
	return strings.Join(parts, sep)
}

func literal(v any) string {
	switch value := v.(type) {
	case string:
		return "'" + value + "'"
	case bool:
		return fmt.Sprintf("%t", value)
	case int:
		return fmt.Sprintf("%d", value)
	default:
		panic(fmt.Sprintf("filter: unknown literal %T", v))
	}
}
