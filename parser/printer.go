package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"snexpr/ast"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// describe converts n into a JSON-friendly representation built from maps
// and slices. It walks the AST with a plain type switch rather than
// through ast.Visitor, since printing never fails and Visitor's methods
// all return an error alongside their result.
func describe(n ast.Node) any {
	switch node := n.(type) {
	case *ast.ConstNum:
		return map[string]any{"type": "ConstNum", "value": node.Value}
	case *ast.ConstStr:
		return map[string]any{"type": "ConstStr", "value": node.Value}
	case *ast.Var:
		return map[string]any{"type": "Var", "name": node.Ref.Name}
	case *ast.UnaryOp:
		return map[string]any{
			"type":     "UnaryOp",
			"operator": string(node.Kind),
			"operand":  describe(node.Operand),
		}
	case *ast.BinaryOp:
		return map[string]any{
			"type":     "BinaryOp",
			"operator": string(node.Kind),
			"left":     describe(node.Left),
			"right":    describe(node.Right),
		}
	case *ast.Call:
		args := make([]any, 0, len(node.Args))
		for _, a := range node.Args {
			args = append(args, describe(a))
		}
		name := ""
		if node.Entry != nil {
			name = node.Entry.Name
		}
		return map[string]any{"type": "Call", "name": name, "args": args}
	default:
		return nil
	}
}

// PrintASTJSON converts n into a prettified JSON string, printing it to
// stdout in yellow along the way.
func PrintASTJSON(n ast.Node) (string, error) {
	bytes, err := json.MarshalIndent(describe(n), "", "  ")
	if err != nil {
		return "", err
	}

	jsonStr := string(bytes)
	fmt.Println(colorYellow + "----- AST JSON -----")
	fmt.Println(colorYellow + jsonStr)
	fmt.Println(colorYellow + "-----" + colorReset)
	fmt.Println("")
	return jsonStr, nil
}

// WriteASTJSONToFile writes the prettified AST JSON for n to the given
// file path.
func WriteASTJSONToFile(n ast.Node, path string) error {
	s, err := PrintASTJSON(n)
	if err != nil {
		return err
	}
	fDescriptor, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating AST file: %s", err.Error())
	}
	defer fDescriptor.Close()

	if _, err := fDescriptor.Write([]byte(s)); err != nil {
		return fmt.Errorf("error writing AST to file: %s", err.Error())
	}
	return nil
}
