package ast

import (
	"fmt"
	"strings"
)

// PrettyPrint renders n and its descendants as an indented tree, one node
// per line. Used for debugging and by this package's tests.
func PrettyPrint(n Node) string {
	var sb strings.Builder
	printNode(&sb, n, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, n Node, indent int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(describe(n))
	sb.WriteString("\n")

	switch node := n.(type) {
	case *TranslationUnit:
		for _, f := range node.Funcs {
			printNode(sb, f, indent+1)
		}
	case *DefFn:
		for _, p := range node.Params {
			sb.WriteString(strings.Repeat("  ", indent+1))
			sb.WriteString(fmt.Sprintf("Param(%s)\n", p.Name))
		}
		printNode(sb, node.Ret, indent+1)
		printNode(sb, node.Body, indent+1)
	case *DeclStmt:
		printNode(sb, node.Type, indent+1)
	case *BinaryExpr:
		printNode(sb, node.Lhs, indent+1)
		printNode(sb, node.Rhs, indent+1)
	case *BlockExpr:
		for _, s := range node.Stmts {
			printNode(sb, s, indent+1)
		}
	case *CallExpr:
		printNode(sb, node.Callee, indent+1)
		for _, arg := range node.Args {
			printNode(sb, arg, indent+1)
		}
	case *IfExpr:
		printNode(sb, node.Cond, indent+1)
		printNode(sb, node.Then, indent+1)
		printNode(sb, node.Else, indent+1)
	case *LetStmt:
		printNode(sb, node.Init, indent+1)
	case *FunctionTypeExpr:
		for _, p := range node.Params {
			printNode(sb, p, indent+1)
		}
		printNode(sb, node.Ret, indent+1)
	}
}

func describe(n Node) string {
	switch node := n.(type) {
	case *TranslationUnit:
		return "TranslationUnit"
	case *DefFn:
		return fmt.Sprintf("DefFn(%s)", node.Name)
	case *DeclStmt:
		return fmt.Sprintf("DeclStmt(%s)", node.Name)
	case *BinaryExpr:
		return fmt.Sprintf("BinaryExpr(%s)", node.Op)
	case *BlockExpr:
		return "BlockExpr"
	case *BoolLiteral:
		return fmt.Sprintf("BoolLiteral(%v)", node.Value)
	case *CallExpr:
		return "CallExpr"
	case *IfExpr:
		return "IfExpr"
	case *IntegerLiteral:
		return fmt.Sprintf("IntegerLiteral(%d)", node.Value)
	case *OctetSeqLiteral:
		return fmt.Sprintf("OctetSeqLiteral(%d bytes)", len(node.Bytes))
	case *LetStmt:
		return fmt.Sprintf("LetStmt(%s)", node.Name)
	case *VarRefExpr:
		return fmt.Sprintf("VarRefExpr(%s)", node.Name)
	case *NamedTypeExpr:
		return fmt.Sprintf("Type(%s)", node.Name)
	case *FunctionTypeExpr:
		return "Type(Fr)"
	default:
		return fmt.Sprintf("%T", n)
	}
}
