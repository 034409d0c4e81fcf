package ast

// Literal and identifier helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

// Txt wraps value in double quotes so the literal carries a lexeme the way
// the scanner produces it.
func Txt(value string) *TextLiteral {
	return NewTextLiteral(`"` + value + `"`)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

// Expression helpers.

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Un(op string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(op, operand)
}

func Paren(inner Expression) *ParenthesizedExpression {
	return NewParenthesizedExpression(inner)
}

func Call(callee string, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

// Statement helpers.

func Prog(body ...Statement) *Program {
	return NewProgram(body)
}

func Blk(body ...Statement) *Block {
	return NewBlock(body)
}

func Decl(name string, value Expression) *VariableDeclaration {
	return NewVariableDeclaration(name, value)
}

func Assign(name string, value Expression) *Assignment {
	return NewAssignment(name, value)
}

func Fn(name string, params []string, body ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(name, params, NewBlock(body))
}

func If(condition Expression, then *Block, elseBlock *Block) *IfStatement {
	return NewIfStatement(condition, then, elseBlock)
}

func Repeat(count Expression, body ...Statement) *RepeatStatement {
	return NewRepeatStatement(count, NewBlock(body))
}

func Print(value Expression) *PrintStatement {
	return NewPrintStatement(value)
}

func Move(direction string, distance Expression) *GraphicsCommand {
	return NewGraphicsCommand(GraphicsMove, direction, distance)
}

func Rotate(direction string, degrees Expression) *GraphicsCommand {
	return NewGraphicsCommand(GraphicsRotate, direction, degrees)
}

func Color(color Expression) *GraphicsCommand {
	return NewGraphicsCommand(GraphicsColor, "", color)
}

func PenUp() *GraphicsCommand {
	return NewGraphicsCommand(GraphicsPenUp, "", nil)
}

func PenDown() *GraphicsCommand {
	return NewGraphicsCommand(GraphicsPenDown, "", nil)
}

func Play(note string, duration Expression) *AudioCommand {
	return NewAudioCommand(note, duration)
}

func PolyDef(name, source string) *PolynomialDefinition {
	return NewPolynomialDefinition(name, source)
}

func PolyShow(name string) *PolynomialShow {
	return NewPolynomialShow(name)
}

func PolyPlot(name string) *PolynomialPlot {
	return NewPolynomialPlot(name)
}

func PolyOp(op PolynomialOperator, left, right string) *PolynomialOperation {
	return NewPolynomialOperation(op, left, right)
}
