package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// DecodeError reports a malformed tree node together with its path from the
// document root (for example `body[2].value.left`).
type DecodeError struct {
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "ast: " + e.Message
	}
	return fmt.Sprintf("ast: %s: %s", e.Path, e.Message)
}

// DecodeProgram converts a generic document (as produced by encoding/json or
// yaml.v3 unmarshalling into `any`) into a typed Program.
func DecodeProgram(doc any) (*Program, error) {
	node, ok := doc.(map[string]any)
	if !ok {
		return nil, &DecodeError{Message: fmt.Sprintf("expected Program object, got %T", doc)}
	}
	if typ, _ := node["type"].(string); typ != string(NodeProgram) {
		return nil, &DecodeError{Message: fmt.Sprintf("expected Program root, got %q", typ)}
	}
	body, err := decodeStatements(node["body"], "body")
	if err != nil {
		return nil, err
	}
	return NewProgram(body), nil
}

func fail(path string, format string, args ...any) error {
	return &DecodeError{Path: path, Message: fmt.Sprintf(format, args...)}
}

func child(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func decodeStatements(raw any, path string) ([]Statement, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fail(path, "expected statement list, got %T", raw)
	}
	stmts := make([]Statement, 0, len(items))
	for idx, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, idx)
		node, err := decodeNode(item, itemPath)
		if err != nil {
			return nil, err
		}
		stmt, ok := node.(Statement)
		if !ok {
			return nil, fail(itemPath, "%s is not a statement", node.NodeType())
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeBlock(raw any, path string, optional bool) (*Block, error) {
	if raw == nil {
		if optional {
			return nil, nil
		}
		return nil, fail(path, "missing block")
	}
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fail(path, "expected Block object, got %T", raw)
	}
	if typ, _ := node["type"].(string); typ != "" && typ != string(NodeBlock) {
		return nil, fail(path, "expected Block, got %q", typ)
	}
	body, err := decodeStatements(node["body"], child(path, "body"))
	if err != nil {
		return nil, err
	}
	return NewBlock(body), nil
}

func decodeExpression(raw any, path string, optional bool) (Expression, error) {
	if raw == nil {
		if optional {
			return nil, nil
		}
		return nil, fail(path, "missing expression")
	}
	node, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(Expression)
	if !ok {
		return nil, fail(path, "%s is not an expression", node.NodeType())
	}
	return expr, nil
}

func requireString(node map[string]any, field, path string) (string, error) {
	val, ok := node[field].(string)
	if !ok || val == "" {
		return "", fail(child(path, field), "expected non-empty string")
	}
	return val, nil
}

func decodeNumber(raw any, path string) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fail(path, "invalid number %q", v)
		}
		return f, nil
	default:
		return 0, fail(path, "expected number, got %T", raw)
	}
}

func decodeNode(raw any, path string) (Node, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fail(path, "expected node object, got %T", raw)
	}
	typ, _ := node["type"].(string)
	switch NodeType(typ) {
	case NodeVariableDeclaration:
		name, err := requireString(node, "name", path)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(node["value"], child(path, "value"), true)
		if err != nil {
			return nil, err
		}
		return NewVariableDeclaration(name, value), nil
	case NodeAssignment:
		name, err := requireString(node, "name", path)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(node["value"], child(path, "value"), false)
		if err != nil {
			return nil, err
		}
		return NewAssignment(name, value), nil
	case NodeFunctionDefinition:
		name, err := requireString(node, "name", path)
		if err != nil {
			return nil, err
		}
		var params []string
		if rawParams, ok := node["params"].([]any); ok {
			params = make([]string, 0, len(rawParams))
			for idx, p := range rawParams {
				s, ok := p.(string)
				if !ok || s == "" {
					return nil, fail(fmt.Sprintf("%s[%d]", child(path, "params"), idx), "expected parameter name")
				}
				params = append(params, s)
			}
		}
		body, err := decodeBlock(node["body"], child(path, "body"), false)
		if err != nil {
			return nil, err
		}
		return NewFunctionDefinition(name, params, body), nil
	case NodeFunctionCall:
		callee, err := requireString(node, "callee", path)
		if err != nil {
			return nil, err
		}
		var args []Expression
		if rawArgs, ok := node["arguments"].([]any); ok {
			args = make([]Expression, 0, len(rawArgs))
			for idx, a := range rawArgs {
				expr, err := decodeExpression(a, fmt.Sprintf("%s[%d]", child(path, "arguments"), idx), false)
				if err != nil {
					return nil, err
				}
				args = append(args, expr)
			}
		}
		return NewFunctionCall(callee, args), nil
	case NodeIfStatement:
		cond, err := decodeExpression(node["condition"], child(path, "condition"), false)
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(node["then"], child(path, "then"), false)
		if err != nil {
			return nil, err
		}
		elseBlock, err := decodeBlock(node["else"], child(path, "else"), true)
		if err != nil {
			return nil, err
		}
		return NewIfStatement(cond, then, elseBlock), nil
	case NodeRepeatStatement:
		count, err := decodeExpression(node["count"], child(path, "count"), false)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(node["body"], child(path, "body"), false)
		if err != nil {
			return nil, err
		}
		return NewRepeatStatement(count, body), nil
	case NodePrintStatement:
		value, err := decodeExpression(node["value"], child(path, "value"), false)
		if err != nil {
			return nil, err
		}
		return NewPrintStatement(value), nil
	case NodeGraphicsCommand:
		action, _ := node["action"].(string)
		switch GraphicsAction(action) {
		case GraphicsMove, GraphicsRotate, GraphicsColor, GraphicsPenUp, GraphicsPenDown:
		default:
			return nil, fail(child(path, "action"), "unknown graphics action %q", action)
		}
		direction, _ := node["direction"].(string)
		arg, err := decodeExpression(node["argument"], child(path, "argument"), true)
		if err != nil {
			return nil, err
		}
		return NewGraphicsCommand(GraphicsAction(action), direction, arg), nil
	case NodeAudioCommand:
		note, err := requireString(node, "note", path)
		if err != nil {
			return nil, err
		}
		duration, err := decodeExpression(node["duration"], child(path, "duration"), true)
		if err != nil {
			return nil, err
		}
		return NewAudioCommand(note, duration), nil
	case NodePolynomialDefinition:
		name, err := requireString(node, "name", path)
		if err != nil {
			return nil, err
		}
		source, _ := node["source"].(string)
		return NewPolynomialDefinition(name, source), nil
	case NodePolynomialShow:
		name, err := requireString(node, "name", path)
		if err != nil {
			return nil, err
		}
		return NewPolynomialShow(name), nil
	case NodePolynomialPlot:
		name, err := requireString(node, "name", path)
		if err != nil {
			return nil, err
		}
		return NewPolynomialPlot(name), nil
	case NodePolynomialOperation:
		op, err := requireString(node, "operator", path)
		if err != nil {
			return nil, err
		}
		left, err := requireString(node, "left", path)
		if err != nil {
			return nil, err
		}
		right, err := requireString(node, "right", path)
		if err != nil {
			return nil, err
		}
		return NewPolynomialOperation(PolynomialOperator(op), left, right), nil
	case NodeBinaryExpression:
		op, err := requireString(node, "operator", path)
		if err != nil {
			return nil, err
		}
		left, err := decodeExpression(node["left"], child(path, "left"), false)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"], child(path, "right"), false)
		if err != nil {
			return nil, err
		}
		return NewBinaryExpression(op, left, right), nil
	case NodeUnaryExpression:
		op, err := requireString(node, "operator", path)
		if err != nil {
			return nil, err
		}
		operand, err := decodeExpression(node["operand"], child(path, "operand"), false)
		if err != nil {
			return nil, err
		}
		return NewUnaryExpression(op, operand), nil
	case NodeParenthesizedExpression:
		inner, err := decodeExpression(node["expression"], child(path, "expression"), false)
		if err != nil {
			return nil, err
		}
		return NewParenthesizedExpression(inner), nil
	case NodeNumberLiteral:
		val, err := decodeNumber(node["value"], child(path, "value"))
		if err != nil {
			return nil, err
		}
		return NewNumberLiteral(val), nil
	case NodeTextLiteral:
		lexeme, ok := node["lexeme"].(string)
		if !ok {
			return nil, fail(child(path, "lexeme"), "expected string")
		}
		return NewTextLiteral(lexeme), nil
	case NodeBooleanLiteral:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, fail(child(path, "value"), "expected boolean")
		}
		return NewBooleanLiteral(val), nil
	case NodeIdentifier:
		name, err := requireString(node, "name", path)
		if err != nil {
			return nil, err
		}
		return NewIdentifier(name), nil
	case "":
		return nil, fail(path, "node is missing its type")
	default:
		return nil, fail(path, "unsupported node type %q", typ)
	}
}
